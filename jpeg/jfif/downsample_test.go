package jfif

import (
	"math"
	"testing"
)

func solidRGB(width, height int, r, g, b byte) []byte {
	rgb := make([]byte, 3*width*height)
	for i := 0; i < width*height; i++ {
		rgb[3*i] = r
		rgb[3*i+1] = g
		rgb[3*i+2] = b
	}
	return rgb
}

func TestComponentAtBT601(t *testing.T) {
	rgb := []byte{255, 0, 0}

	y := componentAt(rgb, 1, 1, 0, 0, 0)
	cb := componentAt(rgb, 1, 1, 0, 0, 1)
	cr := componentAt(rgb, 1, 1, 0, 0, 2)

	if math.Abs(y-0.299*255) > 1e-9 {
		t.Errorf("Y = %g, want %g", y, 0.299*255)
	}
	if math.Abs(cb-(128-0.168736*255)) > 1e-9 {
		t.Errorf("Cb = %g, want %g", cb, 128-0.168736*255)
	}
	if math.Abs(cr-(128+0.5*255)) > 1e-9 {
		// Cr for pure red clamps at 255
		if cr != 255 {
			t.Errorf("Cr = %g, want 255 (clamped)", cr)
		}
	}
}

func TestComponentAtEdgeClamp(t *testing.T) {
	// 2x2 image; out-of-range coordinates read the last valid pixel
	rgb := []byte{
		10, 10, 10, 20, 20, 20,
		30, 30, 30, 40, 40, 40,
	}

	if got := componentAt(rgb, 2, 2, 5, 0, 0); got != componentAt(rgb, 2, 2, 1, 0, 0) {
		t.Errorf("x clamp: got %g", got)
	}
	if got := componentAt(rgb, 2, 2, 0, 9, 0); got != componentAt(rgb, 2, 2, 0, 1, 0) {
		t.Errorf("y clamp: got %g", got)
	}
	if got := componentAt(rgb, 2, 2, 7, 7, 0); got != 40 {
		t.Errorf("corner clamp: got %g, want 40", got)
	}
}

func TestAccumSolidColor(t *testing.T) {
	// Area averaging over a solid image returns the component value for
	// every sampling geometry
	rgb := solidRGB(16, 16, 120, 60, 200)
	want := componentAt(rgb, 16, 16, 0, 0, 0)

	cases := []struct {
		num, den int
	}{
		{1, 1}, {1, 2}, {2, 2}, {1, 3}, {2, 3}, {3, 4},
	}
	for _, c := range cases {
		for sx := 0; sx < 4; sx++ {
			for sy := 0; sy < 4; sy++ {
				got := accumBlock(rgb, 16, 16, 0, c.num, c.den, c.num, c.den, 0, 0, sx, sy)
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("sampling %d/%d sample (%d,%d): got %g, want %g",
						c.num, c.den, sx, sy, got, want)
				}
			}
		}
	}
}

func TestAccumIntegralMatchesFractional(t *testing.T) {
	// When the step is integral the fast path must agree with the
	// general path exactly
	width, height := 16, 16
	rgb := make([]byte, 3*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := 3 * (y*width + x)
			rgb[off] = byte(x * 16)
			rgb[off+1] = byte(y * 16)
			rgb[off+2] = byte((x + y) * 8)
		}
	}

	for comp := 0; comp < 3; comp++ {
		for sx := 0; sx < 8; sx++ {
			for sy := 0; sy < 8; sy++ {
				frac := accumBlock(rgb, width, height, comp, 1, 2, 1, 2, 0, 0, sx, sy)
				fast := accumBlockInt(rgb, width, height, comp, 1, 2, 1, 2, 0, 0, sx, sy)
				if math.Abs(frac-fast) > 1e-9 {
					t.Errorf("comp %d sample (%d,%d): fractional %g, integral %g",
						comp, sx, sy, frac, fast)
				}
			}
		}
	}
}

func TestAccumFractionalWeights(t *testing.T) {
	// 3:4 sampling: sample 0 covers [0, 4/3) so pixel 0 counts fully and
	// pixel 1 with weight 1/3, divided by the 4/3 step
	width := 8
	rgb := make([]byte, 3*width)
	vals := []float64{90, 30, 60, 120, 150, 30, 210, 240}
	for x := 0; x < width; x++ {
		v := byte(vals[x])
		rgb[3*x] = v
		rgb[3*x+1] = v
		rgb[3*x+2] = v
	}

	got := accumRow(rgb, width, 1, 0, 3, 4, 0, 0, 0)
	want := (vals[0] + vals[1]/3) / (4.0 / 3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("sample 0: got %g, want %g", got, want)
	}

	// Sample 1 covers [4/3, 8/3): 2/3 of pixel 1 plus 2/3 of pixel 2 is
	// the whole span
	got = accumRow(rgb, width, 1, 0, 3, 4, 0, 1, 0)
	want = (vals[1]*(2.0/3.0) + vals[2]*(2.0/3.0)) / (4.0 / 3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("sample 1: got %g, want %g", got, want)
	}
}
