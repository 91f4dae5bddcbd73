package common

import "errors"

// Common errors
var (
	ErrInvalidDimensions    = errors.New("invalid image dimensions")
	ErrInvalidComponents    = errors.New("invalid number of components")
	ErrInvalidSampling      = errors.New("invalid sampling factors")
	ErrInvalidQuality       = errors.New("invalid quality factor")
	ErrInvalidQuantTable    = errors.New("invalid quantization table")
	ErrInvalidBitDepth      = errors.New("invalid bit depth")
	ErrInvalidResetInterval = errors.New("invalid reset interval")
	ErrMissingHuffmanTables = errors.New("missing caller-supplied Huffman tables")
	ErrHuffmanTableMissing  = errors.New("Huffman table index out of range")
	ErrUnknownSymbol        = errors.New("symbol absent from Huffman table")
	ErrBufferTooSmall       = errors.New("buffer too small")
	ErrNoPixelData          = errors.New("no pixel data ingested")
)
