package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/storage"
)

func newTestSSHServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "scores.db"),
		IdleTimeout: time.Minute,
		TickRate:    60,
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("server should have opened its scores database")
	}
	return srv
}

func TestSSHServerShutdownClosesStoreLast(t *testing.T) {
	srv := newTestSSHServer(t)
	store := srv.store

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}

	// Sessions still hold the store pointer while the server drains
	if srv.store != store {
		t.Error("Shutdown() must not swap the store out from under live sessions")
	}
	if _, err := store.SaveRun(storage.RunRecord{GameID: "stacker", Outcome: "lost"}); err == nil {
		t.Error("store should be closed once the server has stopped")
	}
}

func TestSSHServerStopsOnContextCancel(t *testing.T) {
	srv := newTestSSHServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, expected nil after cancel", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
