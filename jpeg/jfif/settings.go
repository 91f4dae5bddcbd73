package jfif

import (
	"github.com/cocosip/go-jfif-codec/jpeg/common"
)

// DensityUnits selects the interpretation of the APP0 density pair
type DensityUnits byte

const (
	// DensityAspectRatio means the density pair is a pixel aspect ratio
	DensityAspectRatio DensityUnits = 0
	// DensityDPI means pixels per inch
	DensityDPI DensityUnits = 1
	// DensityDPCM means pixels per centimeter
	DensityDPCM DensityUnits = 2
)

// HuffmanMode selects how entropy-coding tables are obtained
type HuffmanMode int

const (
	// HuffmanDefault uses the Annex K default tables
	HuffmanDefault HuffmanMode = 0
	// HuffmanProvided uses caller-supplied tables
	HuffmanProvided HuffmanMode = 1
	// HuffmanOptimal builds data-adaptive tables from symbol frequencies
	HuffmanOptimal HuffmanMode = 2
)

// MaxQuantTables is the number of quantization table slots JPEG allows
const MaxQuantTables = 4

// Component describes one image component: its sampling factors and the
// quantization and entropy-coding table slots it references.
type Component struct {
	HSampling int // horizontal sampling factor, 1-4
	VSampling int // vertical sampling factor, 1-4
	QTable    int // quantization table index
	DCTable   int // DC Huffman table index
	ACTable   int // AC Huffman table index
}

// DefaultComponents returns the standard 4:2:0 YCbCr component set
func DefaultComponents() []Component {
	return []Component{
		{HSampling: 2, VSampling: 2, QTable: 0, DCTable: 0, ACTable: 0},
		{HSampling: 1, VSampling: 1, QTable: 1, DCTable: 1, ACTable: 1},
		{HSampling: 1, VSampling: 1, QTable: 1, DCTable: 1, ACTable: 1},
	}
}

// GrayscaleComponents returns a single-component (luminance only) set
func GrayscaleComponents() []Component {
	return []Component{
		{HSampling: 1, VSampling: 1, QTable: 0, DCTable: 0, ACTable: 0},
	}
}

// Settings holds everything the encoder needs to know about the output
// file: geometry, component layout, density metadata, quality, and table
// sources. Derived geometry is computed once when an Encoder is created;
// after that the settings must not be mutated.
type Settings struct {
	Width  int
	Height int

	Components []Component

	DensityUnits DensityUnits
	DensityX     uint16
	DensityY     uint16

	// Quality scales the quantization tables, 1-100
	Quality int

	HuffmanMode HuffmanMode

	// QTables holds the raw (unscaled) quantization tables, 1-4 of them,
	// in natural order
	QTables [][64]int32

	VersionMajor byte
	VersionMinor byte

	// DCTables and ACTables supply the entropy tables for HuffmanProvided
	// mode; ignored otherwise
	DCTables []*common.Table
	ACTables []*common.Table

	// BitDepth is fixed at 8
	BitDepth int
	// ResetInterval is fixed at 0 (no restart markers)
	ResetInterval int

	// Derived geometry, computed by derive()
	scaledQ [][64]int32
	hMax    int
	vMax    int
	mcusX   int
	mcusY   int
	mcuSize int
	offsets []int
}

// NewSettings creates settings with the customary defaults of the format:
// 4:2:0 YCbCr, Annex K quantization tables, quality 50, default Huffman
// tables, JFIF 1.1, density 1x1 dots per inch.
func NewSettings(width, height int) *Settings {
	return &Settings{
		Width:        width,
		Height:       height,
		Components:   DefaultComponents(),
		DensityUnits: DensityDPI,
		DensityX:     1,
		DensityY:     1,
		Quality:      50,
		HuffmanMode:  HuffmanDefault,
		QTables: [][64]int32{
			common.DefaultLuminanceQuantTable,
			common.DefaultChrominanceQuantTable,
		},
		VersionMajor:  1,
		VersionMinor:  1,
		BitDepth:      8,
		ResetInterval: 0,
	}
}

// NewGrayscaleSettings creates single-component settings
func NewGrayscaleSettings(width, height int) *Settings {
	s := NewSettings(width, height)
	s.Components = GrayscaleComponents()
	s.QTables = [][64]int32{common.DefaultLuminanceQuantTable}
	return s
}

// WithQuality sets the quality factor and returns s for chaining
func (s *Settings) WithQuality(quality int) *Settings {
	s.Quality = quality
	return s
}

// WithHuffmanMode sets the Huffman table source and returns s for chaining
func (s *Settings) WithHuffmanMode(mode HuffmanMode) *Settings {
	s.HuffmanMode = mode
	return s
}

// WithComponents replaces the component set and returns s for chaining
func (s *Settings) WithComponents(components []Component) *Settings {
	s.Components = components
	return s
}

// WithDensity sets the density metadata and returns s for chaining
func (s *Settings) WithDensity(units DensityUnits, x, y uint16) *Settings {
	s.DensityUnits = units
	s.DensityX = x
	s.DensityY = y
	return s
}

// WithHuffmanTables supplies entropy tables for HuffmanProvided mode
func (s *Settings) WithHuffmanTables(dc, ac []*common.Table) *Settings {
	s.HuffmanMode = HuffmanProvided
	s.DCTables = dc
	s.ACTables = ac
	return s
}

// Validate checks the settings surface
func (s *Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return common.ErrInvalidDimensions
	}
	if len(s.Components) != 1 && len(s.Components) != 3 {
		return common.ErrInvalidComponents
	}
	if s.Quality < 1 || s.Quality > 100 {
		return common.ErrInvalidQuality
	}
	if len(s.QTables) < 1 || len(s.QTables) > MaxQuantTables {
		return common.ErrInvalidQuantTable
	}
	if s.BitDepth != 0 && s.BitDepth != 8 {
		return common.ErrInvalidBitDepth
	}
	if s.ResetInterval != 0 {
		return common.ErrInvalidResetInterval
	}
	for _, c := range s.Components {
		if c.HSampling < 1 || c.HSampling > 4 || c.VSampling < 1 || c.VSampling > 4 {
			return common.ErrInvalidSampling
		}
		if c.QTable < 0 || c.QTable >= len(s.QTables) {
			return common.ErrInvalidQuantTable
		}
	}
	if s.HuffmanMode == HuffmanProvided && (len(s.DCTables) == 0 || len(s.ACTables) == 0) {
		return common.ErrMissingHuffmanTables
	}
	return nil
}

// derive computes the MCU geometry and quality-scaled quantization
// tables. Called once by NewEncoder; the settings are immutable after.
func (s *Settings) derive() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.BitDepth == 0 {
		s.BitDepth = 8
	}

	s.hMax, s.vMax = 0, 0
	s.mcuSize = 0
	s.offsets = make([]int, len(s.Components))
	for i, c := range s.Components {
		s.offsets[i] = s.mcuSize
		s.mcuSize += c.HSampling * c.VSampling
		if c.HSampling > s.hMax {
			s.hMax = c.HSampling
		}
		if c.VSampling > s.vMax {
			s.vMax = c.VSampling
		}
	}

	s.mcusX = common.DivCeil(s.Width, s.hMax*8)
	s.mcusY = common.DivCeil(s.Height, s.vMax*8)

	s.scaledQ = make([][64]int32, len(s.QTables))
	for i, raw := range s.QTables {
		s.scaledQ[i] = common.ScaleQuantTable(raw, s.Quality)
	}

	return nil
}

// NumMCUs returns the MCU grid dimensions (available after encoder
// construction)
func (s *Settings) NumMCUs() (int, int) {
	return s.mcusX, s.mcusY
}

// MCUSize returns the number of 8x8 blocks one MCU contributes
func (s *Settings) MCUSize() int {
	return s.mcuSize
}
