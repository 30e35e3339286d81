//go:build linux

package led

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

var (
	sysUSB    = "/sys/bus/usb/devices"
	sysHIDRaw = "/sys/class/hidraw"
	devRoot   = "/dev"
)

func readAttr(dir, name string) string {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// FindUSB returns the usbfs node of the first device with vid:pid.
func FindUSB(vid, pid uint16) (string, error) {
	dirs, err := filepath.Glob(filepath.Join(sysUSB, "*"))
	if err != nil {
		return "", fmt.Errorf("led: %v: %w", err, rogerr.ErrIO)
	}
	sort.Strings(dirs)
	wantV, wantP := fmt.Sprintf("%04x", vid), fmt.Sprintf("%04x", pid)
	for _, d := range dirs {
		if readAttr(d, "idVendor") != wantV || readAttr(d, "idProduct") != wantP {
			continue
		}
		bus, err1 := strconv.Atoi(readAttr(d, "busnum"))
		dev, err2 := strconv.Atoi(readAttr(d, "devnum"))
		if err1 != nil || err2 != nil {
			continue
		}
		return filepath.Join(devRoot, "bus", "usb", fmt.Sprintf("%03d", bus), fmt.Sprintf("%03d", dev)), nil
	}
	return "", fmt.Errorf("led: usb %s:%s: %w", wantV, wantP, rogerr.ErrDeviceNotFound)
}

// FindHIDRaw returns the hidraw node whose HID_ID names vid:pid.
func FindHIDRaw(vid, pid uint16) (string, error) {
	dirs, err := filepath.Glob(filepath.Join(sysHIDRaw, "hidraw*"))
	if err != nil {
		return "", fmt.Errorf("led: %v: %w", err, rogerr.ErrIO)
	}
	sort.Strings(dirs)
	want := fmt.Sprintf(":%08X:%08X", vid, pid)
	for _, d := range dirs {
		for _, line := range strings.Split(readAttr(filepath.Join(d, "device"), "uevent"), "\n") {
			if strings.HasPrefix(line, "HID_ID=") && strings.HasSuffix(strings.ToUpper(line), want) {
				return filepath.Join(devRoot, filepath.Base(d)), nil
			}
		}
	}
	return "", fmt.Errorf("led: hidraw %04x:%04x: %w", vid, pid, rogerr.ErrDeviceNotFound)
}
