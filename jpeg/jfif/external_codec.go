package jfif

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	jfifcodec "github.com/cocosip/go-jfif-codec/codec"
)

var _ codec.Codec = (*ExternalCodec)(nil)

// ExternalCodec implements the external codec.Codec interface so the
// encoder plugs into go-dicom transcoding pipelines as the JPEG Baseline
// 8-bit transfer syntax.
type ExternalCodec struct {
	transferSyntax *transfer.Syntax
	quality        int // Default quality (1-100)
}

// NewExternalCodec creates a new go-dicom codec for JFIF baseline
// quality: 1-100, where 100 is best quality (default: 85)
func NewExternalCodec(quality int) *ExternalCodec {
	if quality < 1 || quality > 100 {
		quality = 85
	}
	return &ExternalCodec{
		transferSyntax: transfer.JPEGBaseline8Bit,
		quality:        quality,
	}
}

// Name returns the codec name
func (c *ExternalCodec) Name() string {
	return fmt.Sprintf("JFIF Baseline (Quality %d)", c.quality)
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *ExternalCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *ExternalCodec) GetDefaultParameters() codec.Parameters {
	params := NewParameters()
	params.Quality = c.quality
	return params
}

// Encode encodes every frame of the source pixel data to JFIF baseline
func (c *ExternalCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	if frameInfo.BitsStored > 8 {
		return fmt.Errorf("JFIF baseline only supports 8-bit data, got %d bits", frameInfo.BitsStored)
	}

	samples := int(frameInfo.SamplesPerPixel)
	if samples != 1 && samples != 3 {
		return fmt.Errorf("JFIF baseline supports 1 or 3 samples per pixel, got %d", samples)
	}

	// Resolve encoding parameters
	var jfifParams *Parameters
	if parameters != nil {
		if p, ok := parameters.(*Parameters); ok {
			jfifParams = p
		} else {
			jfifParams = NewParameters()
			if q := parameters.GetParameter("quality"); q != nil {
				if qInt, ok := q.(int); ok && qInt >= 1 && qInt <= 100 {
					jfifParams.Quality = qInt
				}
			}
		}
	} else {
		jfifParams = NewParameters()
		jfifParams.Quality = c.quality
	}
	jfifParams.Validate()

	width := int(frameInfo.Width)
	height := int(frameInfo.Height)

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		var settings *Settings
		rgb := frameData
		if samples == 1 {
			if len(frameData) < width*height {
				return fmt.Errorf("frame %d pixel data too small", frameIndex)
			}
			settings = NewGrayscaleSettings(width, height)
			rgb = expandGray(frameData[:width*height])
		} else {
			settings = NewSettings(width, height)
		}
		settings.WithQuality(jfifParams.Quality)

		jpegData, err := Encode(rgb, settings)
		if err != nil {
			return fmt.Errorf("JFIF encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(jpegData); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode is not supported: this module is a one-shot encoder. DICOM
// pipelines needing JPEG decode should register a decoding codec for the
// transfer syntax instead.
func (c *ExternalCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	return fmt.Errorf("JFIF baseline codec is encode-only: %w", jfifcodec.ErrUnsupportedFormat)
}

// RegisterExternalCodec registers the codec with the go-dicom global registry
func RegisterExternalCodec(quality int) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, NewExternalCodec(quality))
}

func init() {
	RegisterExternalCodec(85)
}
