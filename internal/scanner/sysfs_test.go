package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUSBSerialTree lays out a sysfs-shaped directory for one FTDI adapter:
// usb device level, interface level, and the tty class node below it.
func fakeUSBSerialTree(t *testing.T) (ttyPath string) {
	t.Helper()
	root := t.TempDir()

	usbDev := filepath.Join(root, "pci0000:00", "usb1", "1-1")
	intf := filepath.Join(usbDev, "1-1:1.0")
	ttyPath = filepath.Join(intf, "ttyUSB0", "tty", "ttyUSB0")
	require.NoError(t, os.MkdirAll(ttyPath, 0o755))

	attrs := map[string]string{
		"idVendor":     "0403\n",
		"idProduct":    "6001\n",
		"serial":       "A50285BI\n",
		"manufacturer": "FTDI\n",
		"product":      "FT232R USB UART\n",
		"busnum":       "1\n",
		"devnum":       "4\n",
	}
	for name, value := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(usbDev, name), []byte(value), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(intf, "bInterfaceNumber"), []byte("00\n"), 0o644))
	require.NoError(t, os.Symlink("../../../../bus/usb/drivers/ftdi_sio", filepath.Join(intf, "driver")))
	require.NoError(t, os.Symlink("../../../../../class/tty", filepath.Join(ttyPath, "subsystem")))

	return ttyPath
}

func TestRecordFromSysPath(t *testing.T) {
	ttyPath := fakeUSBSerialTree(t)

	rec, ok := recordFromSysPath(ttyPath, "ttyUSB0")
	require.True(t, ok)

	assert.Equal(t, "/dev/ttyUSB0", rec.DevPath)
	assert.Equal(t, "ttyUSB0", rec.DevNode)
	assert.Equal(t, ttyPath, rec.SysPath)
	assert.Equal(t, "tty", rec.Subsystem)
	assert.Equal(t, "0403", rec.VendorID)
	assert.Equal(t, "6001", rec.ProductID)
	assert.Equal(t, "A50285BI", rec.Serial)
	assert.Equal(t, "FTDI", rec.Manufacturer)
	assert.Equal(t, "FT232R USB UART", rec.Product)
	assert.Equal(t, "1", rec.BusNum)
	assert.Equal(t, "4", rec.DevNum)
	assert.Equal(t, "00", rec.InterfaceNum)
	assert.Equal(t, "ftdi_sio", rec.Driver)
	assert.True(t, rec.Valid())
}

func TestRecordFromSysPath_NoUSBAncestor(t *testing.T) {
	// An on-board UART: tty node with no USB device in its ancestry.
	ttyPath := filepath.Join(t.TempDir(), "platform", "serial8250", "tty", "ttyS0")
	require.NoError(t, os.MkdirAll(ttyPath, 0o755))

	_, ok := recordFromSysPath(ttyPath, "ttyS0")
	assert.False(t, ok)
}

func TestRecordFromSysPath_MissingSerial(t *testing.T) {
	ttyPath := fakeUSBSerialTree(t)
	usbDev := filepath.Dir(filepath.Dir(filepath.Dir(filepath.Dir(ttyPath))))
	require.NoError(t, os.Remove(filepath.Join(usbDev, "serial")))

	rec, ok := recordFromSysPath(ttyPath, "ttyUSB0")
	require.True(t, ok)
	assert.Empty(t, rec.Serial)
	assert.Equal(t, "0403:6001:bus1dev4", rec.Key())
}

func TestIsSerialNode(t *testing.T) {
	assert.True(t, isSerialNode("ttyUSB0"))
	assert.True(t, isSerialNode("ttyACM3"))
	assert.True(t, isSerialNode("ttyAMA0"))
	assert.True(t, isSerialNode("ttySC1"))
	assert.False(t, isSerialNode("ttyS0"))
	assert.False(t, isSerialNode("console"))
}

func TestFormatHexID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0403", "0403"},
		{"403", "0403"},
		{"0x403", "0403"},
		{"0X1A86", "1a86"},
		{"1A86", "1a86"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatHexID(tt.in), "input %q", tt.in)
	}
}
