package jfif

import "math"

// BT.601 full-range conversion, computed per input pixel. Each conversion
// clamps to [0, 255] before the area average so chroma excursions behave
// the same at every sampling factor.

func lumaY(r, g, b float64) float64 {
	return clampf(0.299*r+0.587*g+0.114*b, 0, 255)
}

func chromaCb(r, g, b float64) float64 {
	return clampf(128-0.168736*r-0.331264*g+0.5*b, 0, 255)
}

func chromaCr(r, g, b float64) float64 {
	return clampf(128+0.5*r-0.418688*g-0.081312*b, 0, 255)
}

func clampf(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// componentAt returns the requested component of the pixel at (x, y).
// Out-of-range coordinates clamp to the last valid pixel (edge extension).
func componentAt(rgb []byte, width, height, x, y, comp int) float64 {
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}
	off := 3 * (y*width + x)
	r := float64(rgb[off])
	g := float64(rgb[off+1])
	b := float64(rgb[off+2])
	switch comp {
	case 0:
		return lumaY(r, g, b)
	case 1:
		return chromaCb(r, g, b)
	default:
		return chromaCr(r, g, b)
	}
}

// accumRow averages the component over the source span of output sample
// sx on row y. The span is [originX + sx*step, originX + (sx+1)*step)
// with step = den/num; the first and last pixels contribute fractional
// weights when the span boundaries are not integral.
func accumRow(rgb []byte, width, height, comp, num, den, originX, sx, y int) float64 {
	step := float64(den) / float64(num)
	startX := float64(originX) + float64(sx)*step
	endX := startX + step
	var row float64
	if (sx*den)%num != 0 {
		row += componentAt(rgb, width, height, int(math.Floor(startX)), y, comp) *
			(math.Ceil(startX) - startX)
	}
	for ix := int(math.Ceil(startX)); ix < int(math.Floor(endX)); ix++ {
		row += componentAt(rgb, width, height, ix, y, comp)
	}
	if (sx*den+den)%num != 0 {
		row += componentAt(rgb, width, height, int(math.Floor(endX)), y, comp) *
			(endX - math.Floor(endX))
	}
	return row / step
}

// accumRowInt is the fast path for integral steps
func accumRowInt(rgb []byte, width, height, comp, num, den, originX, sx, y int) float64 {
	step := den / num
	startX := originX + sx*step
	var row float64
	for ix := startX; ix < startX+step; ix++ {
		row += componentAt(rgb, width, height, ix, y, comp)
	}
	return row / float64(step)
}

// accumBlock averages the component over the two-dimensional source
// rectangle of output sample (sx, sy), weighting the first and last rows
// fractionally like accumRow does for columns.
func accumBlock(rgb []byte, width, height, comp, numX, denX, numY, denY, originX, originY, sx, sy int) float64 {
	step := float64(denY) / float64(numY)
	startY := float64(originY) + float64(sy)*step
	endY := startY + step
	var block float64
	if (sy*denY)%numY != 0 {
		block += (math.Ceil(startY) - startY) *
			accumRow(rgb, width, height, comp, numX, denX, originX, sx, int(math.Floor(startY)))
	}
	for iy := int(math.Ceil(startY)); iy < int(math.Floor(endY)); iy++ {
		block += accumRow(rgb, width, height, comp, numX, denX, originX, sx, iy)
	}
	if (sy*denY+denY)%numY != 0 {
		block += (endY - math.Floor(endY)) *
			accumRow(rgb, width, height, comp, numX, denX, originX, sx, int(math.Floor(endY)))
	}
	return block / step
}

// accumBlockInt is the fast path for integral steps in both directions
func accumBlockInt(rgb []byte, width, height, comp, numX, denX, numY, denY, originX, originY, sx, sy int) float64 {
	step := denY / numY
	startY := originY + sy*step
	var block float64
	for iy := startY; iy < startY+step; iy++ {
		block += accumRowInt(rgb, width, height, comp, numX, denX, originX, sx, iy)
	}
	return block / float64(step)
}
