package model

import "fmt"

// DeviceRecord is a snapshot of one physical USB serial endpoint, assembled
// from the tty node and its USB ancestors in sysfs. Records are rebuilt from
// scratch on every scan and never mutated.
type DeviceRecord struct {
	DevPath      string // e.g. /dev/ttyUSB0
	SysPath      string // e.g. /sys/devices/...
	Subsystem    string // e.g. tty
	Vendor       string // vendor name, when sysfs exposes one
	VendorID     string // e.g. 0403
	ProductID    string // e.g. 6001
	Serial       string // may be empty
	Manufacturer string
	Product      string
	Driver       string // kernel driver, e.g. ftdi_sio
	DevNode      string // short name, e.g. ttyUSB0
	BusNum       string
	DevNum       string
	InterfaceNum string
}

// Valid reports whether the record carries enough identity to be surfaced to
// callers: a device node path and a vendor id.
func (d DeviceRecord) Valid() bool {
	return d.DevPath != "" && d.VendorID != ""
}

// Key returns the identity tuple used to decide whether two observations are
// the same physical device. Devices without a serial fall back to their bus
// position, which is only stable until the device is replugged elsewhere.
func (d DeviceRecord) Key() string {
	if d.Serial != "" {
		return fmt.Sprintf("%s:%s:%s", d.VendorID, d.ProductID, d.Serial)
	}
	return fmt.Sprintf("%s:%s:bus%sdev%s", d.VendorID, d.ProductID, d.BusNum, d.DevNum)
}

// DisplayName returns a human-friendly label for listings and rule comments.
func (d DeviceRecord) DisplayName() string {
	if d.Product != "" {
		return fmt.Sprintf("%s (%s)", d.Product, d.DevNode)
	}
	return d.DevNode
}
