package model

import "fmt"

// DefaultPriority is the numeric prefix given to rule files when the
// configuration does not override it. Lower numbers are processed earlier
// by the device manager.
const DefaultPriority = 99

// RuleRecord is one persisted naming rule, always derived from exactly one
// rule file on disk. FilePath uniquely identifies the record.
type RuleRecord struct {
	Name      string // display name from the comment header
	VendorID  string
	ProductID string
	Serial    string // empty when the rule does not discriminate by serial
	Symlink   string // resulting /dev/<Symlink>
	FilePath  string
	Priority  int
	Active    bool
}

// MatchType classifies how a rule set relates to a device.
type MatchType int

const (
	// MatchNone means no rule matches the device.
	MatchNone MatchType = iota
	// MatchWithoutSerial means a rule matches on vendor/product only, so
	// physically identical devices would collide on the same symlink.
	MatchWithoutSerial
	// MatchWithSerial means the matching rule pins the device's serial.
	MatchWithSerial
)

// Matches reports whether the rule binds the given device. Vendor and
// product ids must be equal, and the serial presence must agree: a rule
// with a serial only matches a device with that exact serial, and a rule
// without a serial only matches a device that also has none.
func (r RuleRecord) Matches(d DeviceRecord) bool {
	if r.VendorID != d.VendorID || r.ProductID != d.ProductID {
		return false
	}
	if r.Serial == "" {
		return d.Serial == ""
	}
	return r.Serial == d.Serial
}

// OperationResult is the only error-carrying value crossing the core
// boundary for non-fatal conditions.
type OperationResult struct {
	Success bool
	Message string
}

// Successf builds a successful OperationResult with a formatted message.
func Successf(format string, args ...any) OperationResult {
	return OperationResult{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Failuref builds a failed OperationResult with a formatted message.
func Failuref(format string, args ...any) OperationResult {
	return OperationResult{Success: false, Message: fmt.Sprintf(format, args...)}
}
