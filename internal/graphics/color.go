package graphics

// Model is the current color space.
type Model int

const (
	Gray Model = iota
	RGB
	CMYK
)

// Color holds the last-set color in whatever model set it; conversions to
// the other two models follow the standard formulas.
type Color struct {
	Model      Model
	G          float64
	R, Gr, B   float64
	C, M, Y, K float64
}

func GrayColor(g float64) Color { return Color{Model: Gray, G: g} }
func RGBColor(r, g, b float64) Color { return Color{Model: RGB, R: r, Gr: g, B: b} }
func CMYKColor(c, m, y, k float64) Color { return Color{Model: CMYK, C: c, M: m, Y: y, K: k} }

// ToRGB converts the current color to RGB regardless of its native model.
func (c Color) ToRGB() (r, g, b float64) {
	switch c.Model {
	case RGB:
		return c.R, c.Gr, c.B
	case CMYK:
		r = 1 - min1(c.C+c.K)
		g = 1 - min1(c.M+c.K)
		b = 1 - min1(c.Y+c.K)
		return
	default: // Gray
		return c.G, c.G, c.G
	}
}

// ToGray converts to a single gray value via the standard luminance
// weights.
func (c Color) ToGray() float64 {
	if c.Model == Gray {
		return c.G
	}
	r, g, b := c.ToRGB()
	return 0.3*r + 0.59*g + 0.11*b
}

// ToCMYK converts to CMYK via RGB when the color isn't already CMYK.
func (c Color) ToCMYK() (cc, mm, yy, kk float64) {
	if c.Model == CMYK {
		return c.C, c.M, c.Y, c.K
	}
	r, g, b := c.ToRGB()
	kk = 1 - max3(r, g, b)
	if kk >= 1 {
		return 0, 0, 0, 1
	}
	cc = (1 - r - kk) / (1 - kk)
	mm = (1 - g - kk) / (1 - kk)
	yy = (1 - b - kk) / (1 - kk)
	return
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
