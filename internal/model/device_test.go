package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceRecord_Valid(t *testing.T) {
	tests := []struct {
		name   string
		device DeviceRecord
		want   bool
	}{
		{"complete", DeviceRecord{DevPath: "/dev/ttyUSB0", VendorID: "0403"}, true},
		{"missing dev path", DeviceRecord{VendorID: "0403"}, false},
		{"missing vendor id", DeviceRecord{DevPath: "/dev/ttyUSB0"}, false},
		{"empty", DeviceRecord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.device.Valid())
		})
	}
}

func TestDeviceRecord_Key(t *testing.T) {
	withSerial := DeviceRecord{
		DevPath: "/dev/ttyUSB0", VendorID: "0403", ProductID: "6001",
		Serial: "A50285BI", BusNum: "1", DevNum: "4",
	}
	assert.Equal(t, "0403:6001:A50285BI", withSerial.Key())

	withoutSerial := DeviceRecord{
		DevPath: "/dev/ttyUSB1", VendorID: "1a86", ProductID: "7523",
		BusNum: "1", DevNum: "7",
	}
	assert.Equal(t, "1a86:7523:bus1dev7", withoutSerial.Key())
}

func TestDeviceRecord_DisplayName(t *testing.T) {
	dev := DeviceRecord{Product: "FT232R USB UART", DevNode: "ttyUSB0"}
	assert.Equal(t, "FT232R USB UART (ttyUSB0)", dev.DisplayName())

	bare := DeviceRecord{DevNode: "ttyACM0"}
	assert.Equal(t, "ttyACM0", bare.DisplayName())
}
