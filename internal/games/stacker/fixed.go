package stacker

// FPBits is the number of fractional bits in a Fixed value (12:4 format).
const FPBits = 4

// Fixed is a fixed-point pixel coordinate or speed with FPBits fractional bits.
type Fixed int32

// FromInt converts whole pixels to fixed point.
func FromInt(px int) Fixed {
	return Fixed(px) << FPBits
}

// Int truncates to whole pixels.
func (f Fixed) Int() int {
	return int(f >> FPBits)
}

// Frac returns the fractional part in 1/16 pixel units.
func (f Fixed) Frac() int {
	return int(f & (1<<FPBits - 1))
}

func clampFixed(v, lo, hi Fixed) Fixed {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
