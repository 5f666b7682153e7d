package normalmap

import "errors"

// Errors returned by the generator. Callers should match them with
// errors.Is; returned errors wrap them with the offending values.
var (
	// ErrInvalidDimensions is returned when width or height is not positive
	// or the pixel buffer length is not width*height*4.
	ErrInvalidDimensions = errors.New("normalmap: invalid dimensions")

	// ErrInvalidParameter is returned when strength is not a positive
	// number or the encoding convention is unknown.
	ErrInvalidParameter = errors.New("normalmap: invalid parameter")
)
