//go:build !linux

package led

import (
	"fmt"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

type USB struct{}

func OpenUSB(path string) (*USB, error) {
	return nil, fmt.Errorf("led: usb transport needs linux usbfs: %w", rogerr.ErrDeviceNotFound)
}

func (u *USB) WriteBytes(p []byte) error {
	return fmt.Errorf("led: usb transport needs linux usbfs: %w", rogerr.ErrDeviceNotFound)
}

func (u *USB) Close() error { return nil }
