package led

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// HIDRaw writes packets to a /dev/hidraw* node. Each write is one report.
type HIDRaw struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

func OpenHIDRaw(path string) (*HIDRaw, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("led: hidraw %s: %w", path, rogerr.ErrDeviceNotFound)
		}
		return nil, fmt.Errorf("led: open hidraw %s: %v: %w", path, err, rogerr.ErrIO)
	}
	return &HIDRaw{f: f, path: path}, nil
}

func (h *HIDRaw) WriteBytes(p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.f == nil {
		return fmt.Errorf("led: hidraw %s closed: %w", h.path, rogerr.ErrIO)
	}
	if _, err := h.f.Write(p); err != nil {
		return fmt.Errorf("led: hidraw write %s: %v: %w", h.path, err, rogerr.ErrIO)
	}
	return nil
}

func (h *HIDRaw) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.f == nil {
		return nil
	}
	err := h.f.Close()
	h.f = nil
	return err
}
