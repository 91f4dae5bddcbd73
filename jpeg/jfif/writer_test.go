package jfif

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cocosip/go-jfif-codec/jpeg/common"
)

type segment struct {
	marker uint16
	data   []byte
}

// parseSegments splits a JFIF file into its header segments, stopping at
// the SOS segment (the entropy-coded data follows it unframed)
func parseSegments(c *qt.C, data []byte) []segment {
	c.Assert(len(data) >= 4, qt.Equals, true)
	c.Assert(data[0], qt.Equals, byte(0xFF))
	c.Assert(data[1], qt.Equals, byte(0xD8))

	var segs []segment
	i := 2
	for i+4 <= len(data) {
		marker := uint16(data[i])<<8 | uint16(data[i+1])
		c.Assert(common.HasLength(marker), qt.Equals, true)
		length := int(data[i+2])<<8 | int(data[i+3])
		segs = append(segs, segment{marker, data[i+4 : i+2+length]})
		i += 2 + length
		if marker == common.MarkerSOS {
			break
		}
	}
	return segs
}

func segmentsByMarker(segs []segment, marker uint16) []segment {
	var out []segment
	for _, s := range segs {
		if s.marker == marker {
			out = append(out, s)
		}
	}
	return out
}

func encodeFile(c *qt.C, settings *Settings, width, height int) []byte {
	rgb := make([]byte, 3*width*height)
	for i := range rgb {
		rgb[i] = byte(i * 7)
	}
	data, err := Encode(rgb, settings)
	c.Assert(err, qt.IsNil)
	return data
}

func TestSegmentOrder(t *testing.T) {
	c := qt.New(t)

	data := encodeFile(c, NewSettings(16, 16), 16, 16)
	segs := parseSegments(c, data)

	var order []uint16
	for _, s := range segs {
		order = append(order, s.marker)
	}
	c.Assert(order, qt.DeepEquals, []uint16{
		common.MarkerAPP0,
		common.MarkerDQT, common.MarkerDQT,
		common.MarkerSOF0,
		common.MarkerDHT, common.MarkerDHT, common.MarkerDHT, common.MarkerDHT,
		common.MarkerSOS,
	})
}

func TestAPP0Segment(t *testing.T) {
	c := qt.New(t)

	settings := NewSettings(16, 16).WithDensity(DensityDPCM, 300, 150)
	data := encodeFile(c, settings, 16, 16)
	segs := parseSegments(c, data)

	app0 := segmentsByMarker(segs, common.MarkerAPP0)
	c.Assert(app0, qt.HasLen, 1)
	d := app0[0].data
	c.Assert(d, qt.HasLen, 14)
	c.Assert(string(d[:5]), qt.Equals, "JFIF\x00")
	c.Assert(d[5], qt.Equals, byte(1)) // Version major
	c.Assert(d[6], qt.Equals, byte(1)) // Version minor
	c.Assert(d[7], qt.Equals, byte(DensityDPCM))
	c.Assert(int(d[8])<<8|int(d[9]), qt.Equals, 300)
	c.Assert(int(d[10])<<8|int(d[11]), qt.Equals, 150)
	c.Assert(d[12], qt.Equals, byte(0)) // No thumbnail
	c.Assert(d[13], qt.Equals, byte(0))
}

func TestDQTZigZagOrder(t *testing.T) {
	c := qt.New(t)

	// Quality 50 leaves the tables unscaled, so the segment bytes must be
	// the raw tables permuted into zig-zag order
	data := encodeFile(c, NewSettings(16, 16).WithQuality(50), 16, 16)
	segs := parseSegments(c, data)

	dqt := segmentsByMarker(segs, common.MarkerDQT)
	c.Assert(dqt, qt.HasLen, 2)

	raw := [][64]int32{
		common.DefaultLuminanceQuantTable,
		common.DefaultChrominanceQuantTable,
	}
	for id, seg := range dqt {
		c.Assert(seg.data, qt.HasLen, 65)
		c.Assert(seg.data[0], qt.Equals, byte(id)) // Precision 0, table id
		for j := 0; j < 64; j++ {
			c.Assert(seg.data[1+j], qt.Equals, byte(raw[id][common.ZigZag[j]]),
				qt.Commentf("table %d position %d", id, j))
		}
	}
}

func TestSOF0Segment(t *testing.T) {
	c := qt.New(t)

	data := encodeFile(c, NewSettings(200, 100), 200, 100)
	segs := parseSegments(c, data)

	sof := segmentsByMarker(segs, common.MarkerSOF0)
	c.Assert(sof, qt.HasLen, 1)
	d := sof[0].data
	c.Assert(d, qt.HasLen, 6+3*3)
	c.Assert(d[0], qt.Equals, byte(8)) // Precision
	c.Assert(int(d[1])<<8|int(d[2]), qt.Equals, 100)
	c.Assert(int(d[3])<<8|int(d[4]), qt.Equals, 200)
	c.Assert(d[5], qt.Equals, byte(3))

	// Y: id 1, 2x2 sampling, qtable 0
	c.Assert(d[6], qt.Equals, byte(1))
	c.Assert(d[7], qt.Equals, byte(0x22))
	c.Assert(d[8], qt.Equals, byte(0))
	// Cb: id 2, 1x1 sampling, qtable 1
	c.Assert(d[9], qt.Equals, byte(2))
	c.Assert(d[10], qt.Equals, byte(0x11))
	c.Assert(d[11], qt.Equals, byte(1))
	// Cr: id 3, 1x1 sampling, qtable 1
	c.Assert(d[12], qt.Equals, byte(3))
	c.Assert(d[13], qt.Equals, byte(0x11))
	c.Assert(d[14], qt.Equals, byte(1))
}

func TestDHTSegments(t *testing.T) {
	c := qt.New(t)

	data := encodeFile(c, NewSettings(16, 16), 16, 16)
	segs := parseSegments(c, data)

	dht := segmentsByMarker(segs, common.MarkerDHT)
	c.Assert(dht, qt.HasLen, 4)

	// DC tables (class 0) first, then AC tables (class 1)
	wantClassID := []byte{0x00, 0x01, 0x10, 0x11}
	for i, seg := range dht {
		c.Assert(seg.data[0], qt.Equals, wantClassID[i])

		total := 0
		for _, n := range seg.data[1:17] {
			total += int(n)
		}
		c.Assert(len(seg.data), qt.Equals, 17+total,
			qt.Commentf("BITS sum must match HUFFVAL length in table %d", i))
	}
}

func TestSOSSegment(t *testing.T) {
	c := qt.New(t)

	data := encodeFile(c, NewSettings(16, 16), 16, 16)
	segs := parseSegments(c, data)

	sos := segmentsByMarker(segs, common.MarkerSOS)
	c.Assert(sos, qt.HasLen, 1)
	d := sos[0].data
	c.Assert(d, qt.HasLen, 1+2*3+3)
	c.Assert(d[0], qt.Equals, byte(3))
	c.Assert(d[1], qt.Equals, byte(1))    // Y
	c.Assert(d[2], qt.Equals, byte(0x00)) // DC 0, AC 0
	c.Assert(d[3], qt.Equals, byte(2))    // Cb
	c.Assert(d[4], qt.Equals, byte(0x11)) // DC 1, AC 1
	c.Assert(d[5], qt.Equals, byte(3))    // Cr
	c.Assert(d[6], qt.Equals, byte(0x11))
	c.Assert(d[7], qt.Equals, byte(0x00)) // Spectral start
	c.Assert(d[8], qt.Equals, byte(0x3F)) // Spectral end
	c.Assert(d[9], qt.Equals, byte(0x00)) // Successive approximation
}

func TestGrayscaleSegments(t *testing.T) {
	c := qt.New(t)

	data := encodeFile(c, NewGrayscaleSettings(8, 8), 8, 8)
	segs := parseSegments(c, data)

	c.Assert(segmentsByMarker(segs, common.MarkerDQT), qt.HasLen, 1)
	sof := segmentsByMarker(segs, common.MarkerSOF0)
	c.Assert(sof, qt.HasLen, 1)
	c.Assert(sof[0].data[5], qt.Equals, byte(1))
	c.Assert(sof[0].data[7], qt.Equals, byte(0x11))
}

func TestOptimalDHTStripsSentinel(t *testing.T) {
	c := qt.New(t)

	settings := NewSettings(32, 32).WithHuffmanMode(HuffmanOptimal)
	data := encodeFile(c, settings, 32, 32)
	segs := parseSegments(c, data)

	for _, seg := range segmentsByMarker(segs, common.MarkerDHT) {
		total := 0
		kraft := 0
		for l := 1; l <= 16; l++ {
			n := int(seg.data[l])
			total += n
			kraft += n << uint(16-l)
		}
		c.Assert(len(seg.data), qt.Equals, 17+total)
		// The stripped sentinel leaves the code incomplete: strictly
		// below the Kraft bound, never over it
		c.Assert(kraft < 1<<16, qt.Equals, true,
			qt.Commentf("table %#x emits a complete or overfull code", seg.data[0]))
	}
}
