package rules

import (
	"regexp"
	"strings"

	"github.com/Hara602/ttyAnchor/internal/model"
)

// maxSymlinkNameLen bounds custom names so the resulting file and symlink
// names stay manageable.
const maxSymlinkNameLen = 64

var symlinkNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidSymlinkName reports whether name is acceptable as a /dev symlink:
// starts with a letter, then letters, digits, underscore or hyphen, at
// most 64 characters.
func ValidSymlinkName(name string) bool {
	if name == "" || len(name) > maxSymlinkNameLen {
		return false
	}
	return symlinkNamePattern.MatchString(name)
}

// SuggestName proposes a symlink name for a device from its product string,
// reduced to the udev-safe character set. Falls back to the node short name.
func SuggestName(device model.DeviceRecord) string {
	base := device.Product
	if base == "" {
		base = device.DevNode
	}

	var b strings.Builder
	for _, c := range base {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteRune(c)
		case c == ' ':
			b.WriteByte('_')
		}
	}

	name := b.String()
	if len(name) > maxSymlinkNameLen {
		name = name[:maxSymlinkNameLen]
	}
	return name
}
