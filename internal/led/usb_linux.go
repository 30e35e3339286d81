//go:build linux

package led

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// usbdevfs ioctl numbers for a 64-bit kernel ABI.
const (
	usbdevfsControl         = 0xc0185500
	usbdevfsClaimInterface  = 0x8004550f
	usbdevfsReleaseIntf     = 0x80045510
	usbdevfsIoctl           = 0xc0105512
	usbdevfsDisconnect      = 0x5516
	usbControlTimeoutMillis = 200
)

// HID SET_REPORT to interface 0. wValue is the output report type (0x03)
// and the report ID, which is the first byte of every packet: 0x5e for the
// AniMe, 0x5d or 0x5a for the keyboard.
const (
	reqType   = 0x21
	reqSet    = 0x09
	reqOutput = 0x0300
	reqIndex  = 0
)

func reportValue(p []byte) uint16 {
	if len(p) == 0 {
		return reqOutput
	}
	return reqOutput | uint16(p[0])
}

type ctrlTransfer struct {
	RequestType uint8
	Request     uint8
	Value       uint16
	Index       uint16
	Length      uint16
	Timeout     uint32
	_           uint32
	Data        unsafe.Pointer
}

type usbIoctl struct {
	Ifno      int32
	IoctlCode int32
	Data      unsafe.Pointer
}

type controlFunc func(fd uintptr, c *ctrlTransfer) error

func ioctlControl(fd uintptr, c *ctrlTransfer) error {
	_, _, e := unix.Syscall(unix.SYS_IOCTL, fd, usbdevfsControl, uintptr(unsafe.Pointer(c)))
	if e != 0 {
		return e
	}
	return nil
}

// USB writes packets as control transfers through a usbfs node
// (/dev/bus/usb/BBB/DDD). It claims interface 0 and detaches the kernel
// driver bound to it.
type USB struct {
	mu      sync.Mutex
	f       *os.File
	fd      uintptr
	path    string
	control controlFunc
}

// OpenUSB opens the usbfs node at path.
func OpenUSB(path string) (*USB, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("led: usb %s: %w", path, rogerr.ErrDeviceNotFound)
		}
		return nil, fmt.Errorf("led: open usb %s: %v: %w", path, err, rogerr.ErrIO)
	}
	fd := f.Fd()

	// ENODATA means no kernel driver was bound; that is fine.
	disc := usbIoctl{Ifno: 0, IoctlCode: usbdevfsDisconnect}
	if _, _, e := unix.Syscall(unix.SYS_IOCTL, fd, usbdevfsIoctl, uintptr(unsafe.Pointer(&disc))); e != 0 && e != unix.ENODATA {
		log.Debug().Str("path", path).Err(e).Msg("usb detach kernel driver")
	}
	iface := uint32(0)
	if _, _, e := unix.Syscall(unix.SYS_IOCTL, fd, usbdevfsClaimInterface, uintptr(unsafe.Pointer(&iface))); e != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("led: claim interface on %s: %v: %w", path, e, rogerr.ErrIO)
	}
	return &USB{f: f, fd: fd, path: path, control: ioctlControl}, nil
}

// WriteBytes sends p as one control transfer. A transfer that times out is
// logged and dropped; the next frame overwrites it anyway.
func (u *USB) WriteBytes(p []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.control == nil {
		return fmt.Errorf("led: usb closed: %w", rogerr.ErrIO)
	}
	c := ctrlTransfer{
		RequestType: reqType,
		Request:     reqSet,
		Value:       reportValue(p),
		Index:       reqIndex,
		Length:      uint16(len(p)),
		Timeout:     usbControlTimeoutMillis,
	}
	if len(p) > 0 {
		c.Data = unsafe.Pointer(&p[0])
	}
	err := u.control(u.fd, &c)
	runtime.KeepAlive(p)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.ETIMEDOUT) {
		log.Debug().Str("path", u.path).Int("len", len(p)).Msg("usb control transfer timed out")
		return nil
	}
	return fmt.Errorf("led: usb write %s: %v: %w", u.path, err, rogerr.ErrIO)
}

func (u *USB) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.control = nil
	if u.f == nil {
		return nil
	}
	iface := uint32(0)
	_, _, _ = unix.Syscall(unix.SYS_IOCTL, u.fd, usbdevfsReleaseIntf, uintptr(unsafe.Pointer(&iface)))
	err := u.f.Close()
	u.f = nil
	return err
}
