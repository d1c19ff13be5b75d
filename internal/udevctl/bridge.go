// Package udevctl drives the device manager's control operations: reloading
// the rule configuration and re-triggering device coldplug processing.
package udevctl

import (
	"os/exec"
	"strings"

	"github.com/Hara602/ttyAnchor/internal/model"
	"github.com/Hara602/ttyAnchor/internal/sysutil"
	"go.uber.org/zap"
)

// Runner executes one external command and returns its combined output.
// Swapped out in tests.
type Runner func(name string, args ...string) ([]byte, error)

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Bridge invokes udevadm, prefixing sudo for non-root callers. The command
// exit status is the success signal; command output is carried in the
// result message for diagnostics.
type Bridge struct {
	run  Runner
	sudo bool
	log  *zap.Logger
}

// New returns a Bridge using the real udevadm binary.
func New(log *zap.Logger) *Bridge {
	return &Bridge{run: runCommand, sudo: !sysutil.IsRoot(), log: log}
}

// Reload asks the device manager to reload its rule configuration.
func (b *Bridge) Reload() model.OperationResult {
	return b.control("reload rules", "udevadm", "control", "--reload-rules")
}

// Trigger asks the device manager to replay device events so rules apply
// to already-connected hardware.
func (b *Bridge) Trigger() model.OperationResult {
	return b.control("trigger devices", "udevadm", "trigger")
}

// Apply reloads then triggers, stopping at the first failure.
func (b *Bridge) Apply() model.OperationResult {
	if res := b.Reload(); !res.Success {
		return res
	}
	if res := b.Trigger(); !res.Success {
		return res
	}
	return model.Successf("udev rules reloaded and applied")
}

func (b *Bridge) control(what string, name string, args ...string) model.OperationResult {
	if b.sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}

	out, err := b.run(name, args...)
	text := strings.TrimSpace(string(out))
	if err != nil {
		b.log.Warn("udevadm invocation failed",
			zap.String("op", what),
			zap.Error(err),
			zap.String("output", text),
		)
		return model.Failuref("failed to %s: %v: %s", what, err, text)
	}

	b.log.Debug("udevadm ok", zap.String("op", what))
	return model.Successf("%s: ok", what)
}
