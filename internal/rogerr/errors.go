// Package rogerr holds the error kinds shared by the LED engine packages.
// Callers wrap these with fmt.Errorf("...: %w") and test with errors.Is.
package rogerr

import (
	"errors"
	"fmt"
)

var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrIO               = errors.New("io failure")
	ErrTimeout          = errors.New("timeout")
	ErrDecode           = errors.New("decode failure")
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrNoFrames is returned when an animation decodes to zero frames.
var ErrNoFrames = fmt.Errorf("no frames: %w", ErrDecode)

// ErrBrightness is returned for a brightness outside 0..1.
var ErrBrightness = fmt.Errorf("brightness must be between 0 and 1: %w", ErrInvalidParameter)

// Timeout reports whether err is, or wraps, a transport timeout.
func Timeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
