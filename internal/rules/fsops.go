package rules

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Hara602/ttyAnchor/internal/model"
	"github.com/Hara602/ttyAnchor/internal/sysutil"
)

// Privilege-aware file operations. The strategy is picked once per call:
// write directly when the rule directory is writable, otherwise delegate to
// a sudo helper. Either way the postcondition on disk is the authoritative
// success signal. The helper invocation has no timeout; a hang in sudo
// blocks the operation.

func (s *Store) writeRuleFile(path, content string) model.OperationResult {
	if sysutil.IsRoot() || sysutil.CanWrite(s.cfg.Dir) {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return model.Failuref("failed to write rule file %s: %v", path, err)
		}
	} else {
		cmd := exec.Command("sudo", "tee", path)
		cmd.Stdin = strings.NewReader(content)
		cmd.Stdout = io.Discard
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return model.Failuref("failed to write rule file %s (sudo may be required): %v: %s",
				path, err, strings.TrimSpace(stderr.String()))
		}
	}

	if _, err := os.Stat(path); err != nil {
		return model.Failuref("rule file %s was not created (sudo may be required)", path)
	}
	return model.Successf("rule file written: %s", path)
}

func (s *Store) removeRuleFile(path string) model.OperationResult {
	if _, err := os.Lstat(path); err != nil {
		return model.Failuref("rule file does not exist: %s", path)
	}

	if sysutil.IsRoot() || sysutil.CanWrite(s.cfg.Dir) {
		if err := os.Remove(path); err != nil {
			return model.Failuref("failed to delete rule file %s: %v", path, err)
		}
	} else {
		out, err := exec.Command("sudo", "rm", "-f", path).CombinedOutput()
		if err != nil {
			return model.Failuref("failed to delete rule file %s (sudo may be required): %v: %s",
				path, err, bytes.TrimSpace(out))
		}
	}

	if _, err := os.Lstat(path); err == nil {
		return model.Failuref("rule file %s still present after delete (sudo may be required)", path)
	}
	return model.Successf("rule file removed: %s", path)
}
