package sysutil

import "golang.org/x/sys/unix"

// IsRoot reports whether the process runs with effective uid 0.
func IsRoot() bool {
	return unix.Geteuid() == 0
}

// CanWrite reports whether the effective user may write inside path.
// Used to pick between direct file operations and the sudo fallback.
func CanWrite(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
