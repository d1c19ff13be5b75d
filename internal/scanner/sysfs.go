package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Hara602/ttyAnchor/internal/model"
)

// maxAncestorDepth bounds the upward walk through sysfs. USB ancestors sit
// only a few levels above the tty node.
const maxAncestorDepth = 10

// recordFromSysPath assembles a DeviceRecord for the tty kobject at sysPath.
// It reports false when the node has no USB device ancestor or the record
// fails the validity invariant.
func recordFromSysPath(sysPath, devNode string) (model.DeviceRecord, bool) {
	usbDev := findAncestorWithAttr(sysPath, "idVendor")
	if usbDev == "" {
		return model.DeviceRecord{}, false
	}

	rec := model.DeviceRecord{
		DevPath:      "/dev/" + devNode,
		DevNode:      devNode,
		SysPath:      sysPath,
		Subsystem:    readLinkBase(filepath.Join(sysPath, "subsystem")),
		Vendor:       readAttr(usbDev, "vendor"),
		VendorID:     formatHexID(readAttr(usbDev, "idVendor")),
		ProductID:    formatHexID(readAttr(usbDev, "idProduct")),
		Serial:       readAttr(usbDev, "serial"),
		Manufacturer: readAttr(usbDev, "manufacturer"),
		Product:      readAttr(usbDev, "product"),
		BusNum:       readAttr(usbDev, "busnum"),
		DevNum:       readAttr(usbDev, "devnum"),
	}

	// The interface ancestor names the driver actually bound to the port.
	if intf := findAncestorWithAttr(sysPath, "bInterfaceNumber"); intf != "" {
		rec.InterfaceNum = readAttr(intf, "bInterfaceNumber")
		rec.Driver = readLinkBase(filepath.Join(intf, "driver"))
	}
	if rec.Driver == "" {
		rec.Driver = readLinkBase(filepath.Join(usbDev, "driver"))
	}

	if !rec.Valid() {
		return model.DeviceRecord{}, false
	}
	return rec, true
}

// findAncestorWithAttr walks up from path looking for a directory exposing
// the named sysfs attribute file.
func findAncestorWithAttr(path, attr string) string {
	dir := path
	for i := 0; i < maxAncestorDepth; i++ {
		dir = filepath.Dir(dir)
		if dir == "/" || dir == "." {
			break
		}
		if _, err := os.Stat(filepath.Join(dir, attr)); err == nil {
			return dir
		}
	}
	return ""
}

func readAttr(dir, attr string) string {
	b, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readLinkBase(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

// formatHexID normalizes a vendor/product id to 4 lowercase hex digits.
func formatHexID(id string) string {
	id = strings.TrimPrefix(strings.TrimPrefix(id, "0x"), "0X")
	id = strings.ToLower(id)
	for len(id) > 0 && len(id) < 4 {
		id = "0" + id
	}
	return id
}
