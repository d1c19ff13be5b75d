package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Hara602/ttyAnchor/internal/model"
)

// Independent extractors for the fields of a rule line. Parsing is
// line-oriented and order-independent; extra or missing comments are fine.
var (
	vendorPattern  = regexp.MustCompile(`ATTRS\{idVendor\}=="([0-9a-fA-F]+)"`)
	productPattern = regexp.MustCompile(`ATTRS\{idProduct\}=="([0-9a-fA-F]+)"`)
	serialPattern  = regexp.MustCompile(`ATTRS\{serial\}=="([^"]+)"`)
	symlinkPattern = regexp.MustCompile(`SYMLINK\+="([^"]+)"`)
)

// deviceMarker is the comment prefix that carries the display name through
// a render/parse round trip.
const deviceMarker = "# Device:"

// Render produces the rule file content binding device to /dev/<symlink>:
// a provenance comment header followed by one match-and-rename line.
func Render(device model.DeviceRecord, symlink string) string {
	var b strings.Builder

	b.WriteString("# ttyAnchor auto-generated rule\n")
	fmt.Fprintf(&b, "%s %s\n", deviceMarker, device.DisplayName())
	fmt.Fprintf(&b, "# Vendor: %s (%s)\n", device.Manufacturer, device.VendorID)
	fmt.Fprintf(&b, "# Product: %s (%s)\n", device.Product, device.ProductID)
	if device.Serial != "" {
		fmt.Fprintf(&b, "# Serial: %s\n", device.Serial)
	}
	fmt.Fprintf(&b, "# Original: %s\n", device.DevPath)
	fmt.Fprintf(&b, "# Created: %s\n", time.Now().Format(time.RFC3339))
	b.WriteString("\n")

	fmt.Fprintf(&b, `SUBSYSTEM=="tty", ATTRS{idVendor}=="%s", ATTRS{idProduct}=="%s"`,
		device.VendorID, device.ProductID)
	if device.Serial != "" {
		fmt.Fprintf(&b, `, ATTRS{serial}=="%s"`, device.Serial)
	}
	fmt.Fprintf(&b, `, SYMLINK+="%s", MODE="0666"`, symlink)
	b.WriteString("\n")

	return b.String()
}

// Parse extracts a RuleRecord from rule file text. The file path supplies
// the record identity and the priority convention encoded in the name.
// It reports false when neither a vendor id nor a symlink target can be
// found; those two fields are the minimum viable rule.
func Parse(text, filePath string) (model.RuleRecord, bool) {
	rule := model.RuleRecord{
		FilePath: filePath,
		Priority: priorityFromFileName(filepath.Base(filePath)),
		Active:   true,
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, deviceMarker) {
			rule.Name = strings.TrimSpace(strings.TrimPrefix(line, deviceMarker))
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := vendorPattern.FindStringSubmatch(line); m != nil {
			rule.VendorID = m[1]
		}
		if m := productPattern.FindStringSubmatch(line); m != nil {
			rule.ProductID = m[1]
		}
		if m := serialPattern.FindStringSubmatch(line); m != nil {
			rule.Serial = m[1]
		}
		if m := symlinkPattern.FindStringSubmatch(line); m != nil {
			rule.Symlink = m[1]
		}
	}

	if rule.VendorID == "" || rule.Symlink == "" {
		return model.RuleRecord{}, false
	}
	if rule.Name == "" {
		rule.Name = rule.Symlink
	}
	return rule, true
}

// ParseFile reads and parses one rule file.
func ParseFile(path string) (model.RuleRecord, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RuleRecord{}, false
	}
	return Parse(string(data), path)
}

// priorityFromFileName derives the rule priority from the numeric file name
// prefix, e.g. "99-ttyanchor-RS485_1.rules" -> 99.
func priorityFromFileName(name string) int {
	digits := name
	if i := strings.IndexByte(name, '-'); i >= 0 {
		digits = name[:i]
	}
	p, err := strconv.Atoi(digits)
	if err != nil || p < 0 {
		return model.DefaultPriority
	}
	return p
}
