package jfif

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters contains parameters for JFIF baseline compression
type Parameters struct {
	// Quality controls the compression quality (1-100)
	// - 100: Best quality, minimal compression
	// - 85:  High quality (default)
	// - 50:  Lower quality, higher compression
	Quality int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{
		Quality: 85,
		params:  make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "quality":
		return p.Quality
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "quality":
		if v, ok := value.(int); ok {
			p.Quality = v
		}
	default:
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *Parameters) Validate() error {
	if p.Quality < 1 || p.Quality > 100 {
		p.Quality = 85 // Reset to default
	}
	return nil
}

// WithQuality sets the quality and returns the parameters for chaining
func (p *Parameters) WithQuality(quality int) *Parameters {
	p.Quality = quality
	return p
}
