// Package codec defines the codec interface and registry this module's
// JFIF encoder plugs into.
package codec

import "errors"

var (
	// ErrCodecNotFound means no registered codec matches the requested
	// name or UID.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter means the encode parameters are inconsistent,
	// e.g. a pixel buffer shorter than the stated geometry requires.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidQuality means a quality factor outside 1-100 (0, meaning
	// "codec default", is accepted by BaseOptions).
	ErrInvalidQuality = errors.New("invalid quality (must be 1-100)")

	// ErrUnsupportedFormat means the requested operation has no
	// implementation here; the JFIF codec returns it from Decode, which
	// this encode-only module does not provide.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
