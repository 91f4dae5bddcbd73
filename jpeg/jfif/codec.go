package jfif

import (
	"fmt"

	"github.com/cocosip/go-jfif-codec/codec"
)

// Codec implements the codec.Codec interface for baseline JFIF/JPEG
type Codec struct {
	quality int
}

// NewCodec creates a new JFIF baseline codec
// quality: 1-100, where 100 is best quality (default: 85)
func NewCodec(quality int) *Codec {
	if quality < 1 || quality > 100 {
		quality = 85
	}
	return &Codec{quality: quality}
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline (Process 1)
func (c *Codec) UID() string {
	return "1.2.840.10008.1.2.4.50"
}

// Name returns the human-readable name of this codec
func (c *Codec) Name() string {
	return "jfif-baseline"
}

// Encode encodes pixel data to a baseline JFIF file
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", params.Width, params.Height)
	}
	if params.Components != 1 && params.Components != 3 {
		return nil, fmt.Errorf("invalid components: %d (must be 1 or 3)", params.Components)
	}
	if params.BitDepth != 0 && params.BitDepth != 8 {
		return nil, fmt.Errorf("invalid bit depth: %d (only 8 supported)", params.BitDepth)
	}

	quality := c.quality
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		if opts, ok := params.Options.(*codec.BaseOptions); ok && opts.Quality > 0 {
			quality = opts.Quality
		}
	}

	var settings *Settings
	rgb := params.PixelData
	if params.Components == 1 {
		if len(rgb) < params.Width*params.Height {
			return nil, codec.ErrInvalidParameter
		}
		settings = NewGrayscaleSettings(params.Width, params.Height)
		rgb = expandGray(rgb[:params.Width*params.Height])
	} else {
		settings = NewSettings(params.Width, params.Height)
	}
	settings.WithQuality(quality)

	data, err := Encode(rgb, settings)
	if err != nil {
		return nil, fmt.Errorf("jfif encode failed: %w", err)
	}
	return data, nil
}

// Decode is not supported: this codec is a one-shot encoder
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	return nil, codec.ErrUnsupportedFormat
}

// expandGray replicates each gray sample into an RGB triplet so the
// single-component pipeline can compute luminance from it unchanged
func expandGray(gray []byte) []byte {
	rgb := make([]byte, 3*len(gray))
	for i, v := range gray {
		rgb[3*i] = v
		rgb[3*i+1] = v
		rgb[3*i+2] = v
	}
	return rgb
}

// RegisterCodec registers the JFIF baseline codec in the global registry
func RegisterCodec(quality int) {
	codec.Register(NewCodec(quality))
}

func init() {
	RegisterCodec(85)
}
