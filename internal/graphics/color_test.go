package graphics

import "testing"

func TestGrayToRGB(t *testing.T) {
	r, g, b := GrayColor(0.5).ToRGB()
	if r != 0.5 || g != 0.5 || b != 0.5 {
		t.Fatalf("GrayColor(0.5).ToRGB() = %v,%v,%v, want 0.5,0.5,0.5", r, g, b)
	}
}

func TestRGBToGray(t *testing.T) {
	got := RGBColor(1, 1, 1).ToGray()
	if !almostEqual(got, 1) {
		t.Fatalf("white.ToGray() = %v, want 1", got)
	}
	black := RGBColor(0, 0, 0).ToGray()
	if !almostEqual(black, 0) {
		t.Fatalf("black.ToGray() = %v, want 0", black)
	}
}

func TestCMYKToRGBBlack(t *testing.T) {
	r, g, b := CMYKColor(0, 0, 0, 1).ToRGB()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("full black CMYK -> RGB = %v,%v,%v, want 0,0,0", r, g, b)
	}
}

func TestRGBToCMYKBlackAndRGBIdentity(t *testing.T) {
	c, m, y, k := RGBColor(0, 0, 0).ToCMYK()
	if c != 0 || m != 0 || y != 0 || k != 1 {
		t.Fatalf("black RGB -> CMYK = %v,%v,%v,%v, want 0,0,0,1", c, m, y, k)
	}
	r, g, b := RGBColor(0.2, 0.4, 0.6).ToRGB()
	if r != 0.2 || g != 0.4 || b != 0.6 {
		t.Fatalf("RGBColor.ToRGB should be the identity for an already-RGB color")
	}
}

func TestCMYKIsIdentityWhenAlreadyCMYK(t *testing.T) {
	c, m, y, k := CMYKColor(0.1, 0.2, 0.3, 0.4).ToCMYK()
	if c != 0.1 || m != 0.2 || y != 0.3 || k != 0.4 {
		t.Fatalf("ToCMYK on a CMYK color changed values: %v,%v,%v,%v", c, m, y, k)
	}
}
