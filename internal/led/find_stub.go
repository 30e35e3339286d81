//go:build !linux

package led

import (
	"fmt"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func FindUSB(vid, pid uint16) (string, error) {
	return "", fmt.Errorf("led: usb lookup needs sysfs: %w", rogerr.ErrDeviceNotFound)
}

func FindHIDRaw(vid, pid uint16) (string, error) {
	return "", fmt.Errorf("led: hidraw lookup needs sysfs: %w", rogerr.ErrDeviceNotFound)
}
