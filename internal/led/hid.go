package led

import (
	"fmt"
	"sync"

	"github.com/karalabe/hid"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// HID is a device opened through the platform HID API.
type HID struct {
	mu  sync.Mutex
	dev *hid.Device
}

// OpenHID opens the first HID interface matching vid:pid.
func OpenHID(vid, pid uint16) (*HID, error) {
	if !hid.Supported() {
		return nil, fmt.Errorf("led: hid unsupported on this platform: %w", rogerr.ErrDeviceNotFound)
	}
	infos := hid.Enumerate(vid, pid)
	if len(infos) == 0 {
		return nil, fmt.Errorf("led: hid %04x:%04x: %w", vid, pid, rogerr.ErrDeviceNotFound)
	}
	info := infos[0]
	dev, err := info.Open()
	if err != nil {
		return nil, fmt.Errorf("led: open hid %s: %v: %w", info.Path, err, rogerr.ErrIO)
	}
	log.Info().Str("path", info.Path).Str("product", info.Product).Int("interface", info.Interface).Msg("hid device opened")
	return &HID{dev: dev}, nil
}

func (h *HID) WriteBytes(p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dev == nil {
		return fmt.Errorf("led: hid closed: %w", rogerr.ErrIO)
	}
	if _, err := h.dev.Write(p); err != nil {
		return fmt.Errorf("led: hid write: %v: %w", err, rogerr.ErrIO)
	}
	return nil
}

func (h *HID) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dev == nil {
		return nil
	}
	err := h.dev.Close()
	h.dev = nil
	return err
}
