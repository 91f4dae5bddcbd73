package jfif

import (
	"math"

	"github.com/cocosip/go-jfif-codec/jpeg/common"
)

// Scaled 8-point DCT-II factorization (Arai-Agui-Nakajima). The output
// scales fold the orthonormal normalization into the last butterfly
// stage, including the 1/sqrt(2) on the DC term.

var dct8Scales = [8]float64{
	0.353553390593273762200422,
	0.254897789552079584470970,
	0.270598050073098492199862,
	0.300672443467522640271861,
	0.353553390593273762200422,
	0.449988111568207852319255,
	0.653281482438188263928322,
	1.281457723870753089398043,
}

var dct8Consts = [5]float64{
	0.707106781186547524400844,
	0.541196100146196984399723,
	0.707106781186547524400844,
	1.306562964876376527856643,
	0.382683432365089771728460,
}

// dct8 transforms one row or column of an 8x8 block in place
func dct8(d *[64]float64, off, stride int) {
	v0 := d[off+0*stride] + d[off+7*stride]
	v1 := d[off+1*stride] + d[off+6*stride]
	v2 := d[off+2*stride] + d[off+5*stride]
	v3 := d[off+3*stride] + d[off+4*stride]
	v4 := d[off+3*stride] - d[off+4*stride]
	v5 := d[off+2*stride] - d[off+5*stride]
	v6 := d[off+1*stride] - d[off+6*stride]
	v7 := d[off+0*stride] - d[off+7*stride]

	w0 := v0 + v3
	w1 := v1 + v2
	w2 := v1 - v2
	w3 := v0 - v3
	w4 := -(v4 + v5)
	w5 := v5 + v6
	w6 := v6 + v7
	w7 := v7

	v0 = w0 + w1
	v1 = w0 - w1
	v2 = w2 + w3
	v3 = w3
	v4 = w4
	v5 = w5
	v6 = w6
	v7 = w7

	y := (v4 + v6) * dct8Consts[4]

	w0 = v0
	w1 = v1
	w2 = v2 * dct8Consts[0]
	w3 = v3
	w4 = -y - v4*dct8Consts[1]
	w5 = v5 * dct8Consts[2]
	w6 = v6*dct8Consts[3] - y
	w7 = v7

	v0 = w0
	v1 = w1
	v2 = w2 + w3
	v3 = w3 - w2
	v4 = w4
	v5 = w5 + w7
	v6 = w6
	v7 = w7 - w5

	w4 = v4 + v7
	w5 = v5 + v6
	w6 = v5 - v6
	w7 = v7 - v4

	d[off+0*stride] = dct8Scales[0] * v0
	d[off+4*stride] = dct8Scales[4] * v1
	d[off+2*stride] = dct8Scales[2] * v2
	d[off+6*stride] = dct8Scales[6] * v3
	d[off+5*stride] = dct8Scales[5] * w4
	d[off+1*stride] = dct8Scales[1] * w5
	d[off+7*stride] = dct8Scales[7] * w6
	d[off+3*stride] = dct8Scales[3] * w7
}

// forwardDCT applies the separable 2-D DCT-II to a centered 8x8 block
func forwardDCT(block *[64]float64) {
	for i := 0; i < 8; i++ {
		dct8(block, i*8, 1)
	}
	for i := 0; i < 8; i++ {
		dct8(block, i, 8)
	}
}

// quantizeZigZag divides each coefficient by its quantization step,
// rounding half away from zero, and stores the result in zig-zag order
// (index 0 = DC).
func quantizeZigZag(block *[64]float64, qtable *[64]int32, out *[64]int32) {
	for i := 0; i < 64; i++ {
		k := common.ZigZag[i]
		out[i] = int32(math.Round(block[k] / float64(qtable[k])))
	}
}
