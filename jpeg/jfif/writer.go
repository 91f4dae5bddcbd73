package jfif

import (
	"io"

	"github.com/cocosip/go-jfif-codec/jpeg/common"
)

// Write assembles the JFIF file: it runs the DC delta phase, resolves the
// entropy tables, and streams SOI, APP0, DQT, SOF0, DHT, SOS, the
// entropy-coded segment, and EOI to w. The encoder must have been
// populated with EncodeRGB first.
func (e *Encoder) Write(w io.Writer) error {
	if !e.populated {
		return common.ErrNoPixelData
	}

	e.encodeDeltas()

	dc, ac, err := e.entropyTables()
	if err != nil {
		return err
	}

	wr := common.NewWriter(w)

	if err := wr.WriteMarker(common.MarkerSOI); err != nil {
		return err
	}
	if err := e.writeAPP0(wr); err != nil {
		return err
	}
	if err := e.writeDQT(wr); err != nil {
		return err
	}
	if err := e.writeSOF0(wr); err != nil {
		return err
	}
	if err := e.writeDHT(wr, dc, ac); err != nil {
		return err
	}
	if err := e.writeSOS(wr); err != nil {
		return err
	}
	if err := e.writeScan(w, dc, ac); err != nil {
		return err
	}
	return wr.WriteMarker(common.MarkerEOI)
}

// writeAPP0 writes the JFIF application segment
func (e *Encoder) writeAPP0(wr *common.Writer) error {
	s := e.settings
	data := make([]byte, 14)
	copy(data, "JFIF\x00")
	data[5] = s.VersionMajor
	data[6] = s.VersionMinor
	data[7] = byte(s.DensityUnits)
	data[8] = byte(s.DensityX >> 8)
	data[9] = byte(s.DensityX)
	data[10] = byte(s.DensityY >> 8)
	data[11] = byte(s.DensityY)
	data[12] = 0 // Thumbnail width
	data[13] = 0 // Thumbnail height
	return wr.WriteSegment(common.MarkerAPP0, data)
}

// writeDQT writes one Define Quantization Table segment per table,
// with the quality-scaled entries in zig-zag order
func (e *Encoder) writeDQT(wr *common.Writer) error {
	for id, qtable := range e.settings.scaledQ {
		data := make([]byte, 1+64)
		data[0] = byte(id) // Precision=0 (8-bit), table ID

		for j := 0; j < 64; j++ {
			data[1+j] = byte(qtable[common.ZigZag[j]])
		}

		if err := wr.WriteSegment(common.MarkerDQT, data); err != nil {
			return err
		}
	}
	return nil
}

// writeSOF0 writes the baseline Start of Frame segment
func (e *Encoder) writeSOF0(wr *common.Writer) error {
	s := e.settings
	data := make([]byte, 6+3*len(s.Components))

	data[0] = 8 // Precision
	data[1] = byte(s.Height >> 8)
	data[2] = byte(s.Height)
	data[3] = byte(s.Width >> 8)
	data[4] = byte(s.Width)
	data[5] = byte(len(s.Components))

	for i, c := range s.Components {
		data[6+3*i] = byte(i + 1) // Component ID
		data[7+3*i] = byte(c.HSampling<<4 | c.VSampling)
		data[8+3*i] = byte(c.QTable)
	}

	return wr.WriteSegment(common.MarkerSOF0, data)
}

// writeDHT writes one Define Huffman Table segment per entropy table:
// class 0 for DC, class 1 for AC, IDs matching the slot indices the
// components reference
func (e *Encoder) writeDHT(wr *common.Writer, dc, ac []*common.Table) error {
	write := func(class, id int, table *common.Table) error {
		counts := table.LengthCounts()
		values := table.OrderedSymbols()

		data := make([]byte, 1+16+len(values))
		data[0] = byte(class<<4 | id)
		for i := 0; i < 16; i++ {
			data[1+i] = byte(counts[i])
		}
		copy(data[17:], values)

		return wr.WriteSegment(common.MarkerDHT, data)
	}

	for id, table := range dc {
		if err := write(0, id, table); err != nil {
			return err
		}
	}
	for id, table := range ac {
		if err := write(1, id, table); err != nil {
			return err
		}
	}
	return nil
}

// writeSOS writes the Start of Scan header. The spectral selection
// covers the full 0-63 range with no successive approximation, as
// baseline requires.
func (e *Encoder) writeSOS(wr *common.Writer) error {
	s := e.settings
	data := make([]byte, 1+2*len(s.Components)+3)
	data[0] = byte(len(s.Components))

	for i, c := range s.Components {
		data[1+2*i] = byte(i + 1) // Component ID
		data[2+2*i] = byte(c.DCTable<<4 | c.ACTable)
	}

	data[1+2*len(s.Components)] = 0x00 // Spectral start
	data[2+2*len(s.Components)] = 0x3F // Spectral end
	data[3+2*len(s.Components)] = 0x00 // Successive approximation

	return wr.WriteSegment(common.MarkerSOS, data)
}
