//go:build linux

package led

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func TestUSBControlTransferFields(t *testing.T) {
	var got ctrlTransfer
	var payload []byte
	u := &USB{path: "test", control: func(fd uintptr, c *ctrlTransfer) error {
		got = *c
		payload = append([]byte(nil), unsafe.Slice((*byte)(c.Data), c.Length)...)
		return nil
	}}
	require.NoError(t, u.WriteBytes([]byte{0x5e, 0xc0, 0x03}))

	assert.Equal(t, uint8(0x21), got.RequestType)
	assert.Equal(t, uint8(0x09), got.Request)
	assert.Equal(t, uint16(0x035e), got.Value)
	assert.Equal(t, uint16(0), got.Index)
	assert.Equal(t, uint32(200), got.Timeout)
	assert.Equal(t, []byte{0x5e, 0xc0, 0x03}, payload)

	require.NoError(t, u.WriteBytes([]byte{0x5d, 0xb3}))
	assert.Equal(t, uint16(0x035d), got.Value, "keyboard reports carry their own report ID")
	require.NoError(t, u.WriteBytes([]byte{0x5a, 0xba}))
	assert.Equal(t, uint16(0x035a), got.Value)
}

func TestUSBSwallowsTimeouts(t *testing.T) {
	u := &USB{path: "test", control: func(uintptr, *ctrlTransfer) error { return unix.ETIMEDOUT }}
	assert.NoError(t, u.WriteBytes([]byte{1}))

	u.control = func(uintptr, *ctrlTransfer) error { return unix.EPIPE }
	err := u.WriteBytes([]byte{1})
	assert.True(t, errors.Is(err, rogerr.ErrIO))

	require.NoError(t, u.Close())
	assert.True(t, errors.Is(u.WriteBytes([]byte{1}), rogerr.ErrIO))
}

func TestCtrlTransferMatchesKernelLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("ioctl numbers are for 64-bit kernels")
	}
	assert.Equal(t, uintptr(24), unsafe.Sizeof(ctrlTransfer{}))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(ctrlTransfer{}.Data))
}

func TestFindUSBAndHIDRaw(t *testing.T) {
	root := t.TempDir()
	oldUSB, oldHID, oldDev := sysUSB, sysHIDRaw, devRoot
	t.Cleanup(func() { sysUSB, sysHIDRaw, devRoot = oldUSB, oldHID, oldDev })
	sysUSB = filepath.Join(root, "usb")
	sysHIDRaw = filepath.Join(root, "hidraw")
	devRoot = "/dev"

	write := func(dir, name, v string) {
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(v+"\n"), 0644))
	}
	other := filepath.Join(sysUSB, "1-2")
	write(other, "idVendor", "046d")
	write(other, "idProduct", "c52b")
	anime := filepath.Join(sysUSB, "1-4")
	write(anime, "idVendor", "0b05")
	write(anime, "idProduct", "193b")
	write(anime, "busnum", "1")
	write(anime, "devnum", "7")

	path, err := FindUSB(0x0b05, 0x193b)
	require.NoError(t, err)
	assert.Equal(t, "/dev/bus/usb/001/007", path)

	_, err = FindUSB(0x0b05, 0x1866)
	assert.True(t, errors.Is(err, rogerr.ErrDeviceNotFound))

	write(filepath.Join(sysHIDRaw, "hidraw3", "device"), "uevent",
		"DRIVER=hid-asus\nHID_ID=0003:00000B05:00001866\nHID_NAME=ASUSTeK N-KEY Device")
	path, err = FindHIDRaw(0x0b05, 0x1866)
	require.NoError(t, err)
	assert.Equal(t, "/dev/hidraw3", path)

	_, err = FindHIDRaw(0x0b05, 0x19b6)
	assert.True(t, errors.Is(err, rogerr.ErrDeviceNotFound))
}
