package jfif

import (
	"bytes"
	"io"
	"math"
	"math/bits"
	"runtime"
	"sync"

	"github.com/cocosip/go-jfif-codec/jpeg/common"
)

// Encoder turns one RGB raster into a baseline JFIF byte stream. It is
// single-use: construct, ingest pixels with EncodeRGB, then stream the
// file with Write. An error from any phase leaves the encoder in an
// indeterminate state; discard it.
type Encoder struct {
	settings *Settings

	// blocks is the coefficient store: one contiguous allocation holding
	// mcusX*mcusY*mcuSize blocks of 64 coefficients in zig-zag order.
	blocks [][64]int32

	populated bool
}

// NewEncoder validates the settings, computes the derived geometry, and
// allocates the block store.
func NewEncoder(settings *Settings) (*Encoder, error) {
	if err := settings.derive(); err != nil {
		return nil, err
	}
	return &Encoder{
		settings: settings,
		blocks:   make([][64]int32, settings.mcusX*settings.mcusY*settings.mcuSize),
	}, nil
}

// Encode is the one-shot entry point: it encodes an RGB raster (3 bytes
// per pixel, row-major, no padding) to a complete JFIF file.
func Encode(rgb []byte, settings *Settings) ([]byte, error) {
	enc, err := NewEncoder(settings)
	if err != nil {
		return nil, err
	}
	if err := enc.EncodeRGB(rgb); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := enc.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeRGB populates the block store from the raster: per-MCU
// downsampling, forward DCT, and quantization. The MCU loop fans out
// across workers; every block index is a pure function of its MCU
// coordinates, so writers never overlap.
func (e *Encoder) EncodeRGB(rgb []byte) error {
	s := e.settings
	if len(rgb) < 3*s.Width*s.Height {
		return common.ErrBufferTooSmall
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > s.mcusY {
		workers = s.mcusY
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	rowsPer := common.DivCeil(s.mcusY, workers)
	for w := 0; w < workers; w++ {
		y0 := w * rowsPer
		y1 := y0 + rowsPer
		if y1 > s.mcusY {
			y1 = s.mcusY
		}
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for yMcu := y0; yMcu < y1; yMcu++ {
				for xMcu := 0; xMcu < s.mcusX; xMcu++ {
					e.ingestMCU(rgb, xMcu, yMcu)
				}
			}
		}(y0, y1)
	}
	wg.Wait()

	e.populated = true
	return nil
}

// ingestMCU fills the blocks of one MCU
func (e *Encoder) ingestMCU(rgb []byte, xMcu, yMcu int) {
	s := e.settings
	denX, denY := s.hMax, s.vMax
	mcuStartX := xMcu * denX * 8
	mcuStartY := yMcu * denY * 8
	mcuOut := s.mcuSize * (yMcu*s.mcusX + xMcu)

	var t [64]float64
	for i, comp := range s.Components {
		numX := comp.HSampling
		numY := comp.VSampling
		integral := denX%numX == 0 && denY%numY == 0
		qtable := &s.scaledQ[comp.QTable]
		compOut := s.offsets[i] + mcuOut

		for yBlock := 0; yBlock < numY; yBlock++ {
			for xBlock := 0; xBlock < numX; xBlock++ {
				blockNum := yBlock*numX + xBlock + compOut
				for oy := 0; oy < 8; oy++ {
					for ox := 0; ox < 8; ox++ {
						sx := xBlock*8 + ox
						sy := yBlock*8 + oy
						var mean float64
						if integral {
							mean = accumBlockInt(rgb, s.Width, s.Height, i,
								numX, denX, numY, denY, mcuStartX, mcuStartY, sx, sy)
						} else {
							mean = accumBlock(rgb, s.Width, s.Height, i,
								numX, denX, numY, denY, mcuStartX, mcuStartY, sx, sy)
						}
						sample := common.Clamp(int(math.Round(mean)), 0, 255) - 128
						t[oy*8+ox] = float64(sample)
					}
				}
				forwardDCT(&t)
				quantizeZigZag(&t, qtable, &e.blocks[blockNum])
			}
		}
	}
}

// encodeDeltas replaces every DC coefficient with its difference from the
// previous DC of the same component, in MCU scan order. The predictor
// starts at zero and, with the reset interval fixed at zero, is never
// reset.
func (e *Encoder) encodeDeltas() {
	s := e.settings
	numMcus := s.mcusX * s.mcusY
	for i, comp := range s.Components {
		predictor := int32(0)
		numBlocks := comp.HSampling * comp.VSampling
		for iMcu := 0; iMcu < numMcus; iMcu++ {
			if s.ResetInterval != 0 && iMcu%s.ResetInterval == 0 {
				predictor = 0
			}
			base := s.offsets[i] + iMcu*s.mcuSize
			for iBlock := 0; iBlock < numBlocks; iBlock++ {
				block := &e.blocks[base+iBlock]
				delta := block[0] - predictor
				predictor = block[0]
				block[0] = delta
			}
		}
	}
}

// splitNumber maps a signed coefficient to its category (number of
// significant magnitude bits) and value bits: n itself when positive,
// the low category bits of n-1 when negative. Zero is category 0 with no
// value bits.
func splitNumber(n int32) (category byte, value uint16) {
	if n == 0 {
		return 0, 0
	}
	a := n
	if n < 0 {
		a = -a
		n--
	}
	cat := byte(bits.Len32(uint32(a)))
	return cat, uint16(n) & (1<<cat - 1)
}

// packBlock walks one block's coefficients and emits its record stream:
// one DC record, then AC records with zero runs folded into the symbol
// high nibble, ZRL records for runs past 15, and a trailing EOB whenever
// the block does not end on a nonzero coefficient.
func packBlock(block *[64]int32, emitDC, emitAC func(symbol byte, value uint16) error) error {
	cat, value := splitNumber(block[0])
	if err := emitDC(cat, value); err != nil {
		return err
	}

	run := 0
	for k := 1; k < 64; k++ {
		v := block[k]
		if v == 0 {
			run++
			continue
		}
		for run > 15 {
			if err := emitAC(0xF0, 0); err != nil {
				return err
			}
			run -= 16
		}
		cat, value := splitNumber(v)
		if err := emitAC(byte(run)<<4|cat, value); err != nil {
			return err
		}
		run = 0
	}
	if block[63] == 0 {
		if err := emitAC(0x00, 0); err != nil {
			return err
		}
	}
	return nil
}

// scanBlocks walks the block store in entropy order (MCU raster order,
// components in settings order, row-major blocks within a component) and
// hands each block to packBlock with the component's table indices.
func (e *Encoder) scanBlocks(visit func(comp *Component, block *[64]int32) error) error {
	s := e.settings
	numMcus := s.mcusX * s.mcusY
	for iMcu := 0; iMcu < numMcus; iMcu++ {
		for i := range s.Components {
			comp := &s.Components[i]
			numBlocks := comp.HSampling * comp.VSampling
			base := s.offsets[i] + iMcu*s.mcuSize
			for iBlock := 0; iBlock < numBlocks; iBlock++ {
				if err := visit(comp, &e.blocks[base+iBlock]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// entropyTables resolves the DC and AC table sets for the configured
// Huffman mode. For HuffmanOptimal it tallies the record stream and
// builds one length-limited table per referenced slot.
func (e *Encoder) entropyTables() (dc, ac []*common.Table, err error) {
	s := e.settings

	maxDC, maxAC := 0, 0
	for _, c := range s.Components {
		if c.DCTable > maxDC {
			maxDC = c.DCTable
		}
		if c.ACTable > maxAC {
			maxAC = c.ACTable
		}
	}

	switch s.HuffmanMode {
	case HuffmanProvided:
		dc, ac = s.DCTables, s.ACTables
	case HuffmanOptimal:
		dcFreq := make([][common.NumSymbols]int, maxDC+1)
		acFreq := make([][common.NumSymbols]int, maxAC+1)
		err = e.scanBlocks(func(comp *Component, block *[64]int32) error {
			return packBlock(block,
				func(symbol byte, _ uint16) error {
					dcFreq[comp.DCTable][symbol]++
					return nil
				},
				func(symbol byte, _ uint16) error {
					acFreq[comp.ACTable][symbol]++
					return nil
				})
		})
		if err != nil {
			return nil, nil, err
		}
		dc = make([]*common.Table, maxDC+1)
		for i := range dcFreq {
			dc[i] = common.BuildOptimal(&dcFreq[i])
		}
		ac = make([]*common.Table, maxAC+1)
		for i := range acFreq {
			ac[i] = common.BuildOptimal(&acFreq[i])
		}
	default:
		dc = common.DefaultDCTables()
		ac = common.DefaultACTables()
	}

	if maxDC >= len(dc) || maxAC >= len(ac) {
		return nil, nil, common.ErrHuffmanTableMissing
	}
	return dc, ac, nil
}

// writeScan emits the entropy-coded segment through a stuffing bit
// writer and flushes with 1-bit padding.
func (e *Encoder) writeScan(w io.Writer, dc, ac []*common.Table) error {
	bw := common.NewBitWriter(w)
	err := e.scanBlocks(func(comp *Component, block *[64]int32) error {
		dcTable := dc[comp.DCTable]
		acTable := ac[comp.ACTable]
		return packBlock(block,
			func(symbol byte, value uint16) error {
				if err := dcTable.Encode(symbol, bw); err != nil {
					return err
				}
				if symbol != 0 {
					return bw.WriteBits(uint32(value), int(symbol))
				}
				return nil
			},
			func(symbol byte, value uint16) error {
				if err := acTable.Encode(symbol, bw); err != nil {
					return err
				}
				if nbits := int(symbol & 0x0F); nbits != 0 {
					return bw.WriteBits(uint32(value), nbits)
				}
				return nil
			})
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
