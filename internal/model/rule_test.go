package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleRecord_Matches(t *testing.T) {
	device := func(vid, pid, serial string) DeviceRecord {
		return DeviceRecord{DevPath: "/dev/ttyUSB0", VendorID: vid, ProductID: pid, Serial: serial}
	}

	tests := []struct {
		name   string
		rule   RuleRecord
		device DeviceRecord
		want   bool
	}{
		{
			"vendor differs",
			RuleRecord{VendorID: "0403", ProductID: "6001"},
			device("1a86", "6001", ""),
			false,
		},
		{
			"product differs",
			RuleRecord{VendorID: "0403", ProductID: "6001"},
			device("0403", "6015", ""),
			false,
		},
		{
			"serial-less rule does not match serialed device",
			RuleRecord{VendorID: "0403", ProductID: "6001", Serial: ""},
			device("0403", "6001", "X"),
			false,
		},
		{
			"serial-less rule matches serial-less device",
			RuleRecord{VendorID: "0403", ProductID: "6001", Serial: ""},
			device("0403", "6001", ""),
			true,
		},
		{
			"serial rule does not match serial-less device",
			RuleRecord{VendorID: "0403", ProductID: "6001", Serial: "A50285BI"},
			device("0403", "6001", ""),
			false,
		},
		{
			"serial rule requires exact serial",
			RuleRecord{VendorID: "0403", ProductID: "6001", Serial: "A50285BI"},
			device("0403", "6001", "OTHER"),
			false,
		},
		{
			"serial rule matches same serial",
			RuleRecord{VendorID: "0403", ProductID: "6001", Serial: "A50285BI"},
			device("0403", "6001", "A50285BI"),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Matches(tt.device))
		})
	}
}

func TestOperationResult_Helpers(t *testing.T) {
	ok := Successf("rule created: /dev/%s", "RS485_1")
	assert.True(t, ok.Success)
	assert.Equal(t, "rule created: /dev/RS485_1", ok.Message)

	bad := Failuref("rule not found: %s", "nope")
	assert.False(t, bad.Success)
	assert.Equal(t, "rule not found: nope", bad.Message)
}
