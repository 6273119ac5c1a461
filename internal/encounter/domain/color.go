package domain

// Color is an RGB display color with channels in 0..255.
type Color struct {
	R int
	G int
	B int
}

// Scale multiplies each channel by its factor, truncates, and clamps to 255.
func (c Color) Scale(rf, gf, bf float64) Color {
	return Color{
		R: clampChannel(int(float64(c.R) * rf)),
		G: clampChannel(int(float64(c.G) * gf)),
		B: clampChannel(int(float64(c.B) * bf)),
	}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
