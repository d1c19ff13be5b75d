package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Hara602/ttyAnchor/internal/config"
	"github.com/Hara602/ttyAnchor/internal/model"
	"go.uber.org/zap"
)

// ruleExt is the file extension the device manager picks up.
const ruleExt = ".rules"

// Recorder receives successful rule mutations for the operation journal.
// A failing recorder never fails the mutation itself.
type Recorder interface {
	Record(action string, rule model.RuleRecord) error
}

// Store owns the on-disk rule directory as the single source of truth and
// keeps an in-memory cache of the rules this tool manages. The cache is
// rebuilt wholesale from disk, never patched; it is private to one Store
// and not safe for concurrent mutation.
type Store struct {
	cfg      config.RulesConfig
	log      *zap.Logger
	recorder Recorder
	rules    []model.RuleRecord
}

// NewStore builds a Store over cfg.Dir and performs the initial load.
func NewStore(cfg config.RulesConfig, log *zap.Logger) *Store {
	s := &Store{cfg: cfg, log: log}
	s.Refresh()
	return s
}

// SetRecorder attaches an operation journal. Optional.
func (s *Store) SetRecorder(r Recorder) {
	s.recorder = r
}

// CreateRule validates, renders and persists a naming rule for device,
// then reloads the cache from disk. Validation and conflict checks happen
// before any I/O, so a rejected call leaves disk and cache untouched.
func (s *Store) CreateRule(device model.DeviceRecord, symlink string) model.OperationResult {
	if !ValidSymlinkName(symlink) {
		return model.Failuref("invalid symlink name %q: must start with a letter and contain only letters, digits, underscores and hyphens (max %d chars)", symlink, maxSymlinkNameLen)
	}
	if !device.Valid() {
		return model.Failuref("invalid device information for %s", device.DevPath)
	}
	if s.SymlinkExists(symlink) {
		return model.Failuref("symlink name %q is already in use", symlink)
	}
	for _, rule := range s.rules {
		if rule.Matches(device) {
			return model.Failuref("a rule for this device already exists as %q", rule.Symlink)
		}
	}

	path := filepath.Join(s.cfg.Dir, s.ruleFileName(symlink))
	if res := s.writeRuleFile(path, Render(device, symlink)); !res.Success {
		return res
	}
	s.Refresh()
	s.record("create", model.RuleRecord{
		Name:      device.DisplayName(),
		VendorID:  device.VendorID,
		ProductID: device.ProductID,
		Serial:    device.Serial,
		Symlink:   symlink,
		FilePath:  path,
	})

	s.log.Info("rule created",
		zap.String("symlink", symlink),
		zap.String("file", path),
		zap.String("device", device.Key()),
	)
	return model.Successf("rule created: /dev/%s", symlink)
}

// DeleteRule removes the rule whose symlink or display name equals name.
func (s *Store) DeleteRule(name string) model.OperationResult {
	for _, rule := range s.rules {
		if rule.Symlink == name || rule.Name == name {
			return s.DeleteRuleFile(rule.FilePath)
		}
	}
	return model.Failuref("rule not found: %s", name)
}

// DeleteRuleFile removes the rule file at path and reloads the cache. The
// cache is only reloaded after the file is gone, so a failed delete leaves
// it as it was.
func (s *Store) DeleteRuleFile(path string) model.OperationResult {
	deleted, found := model.RuleRecord{}, false
	for _, rule := range s.rules {
		if rule.FilePath == path {
			deleted, found = rule, true
			break
		}
	}

	if res := s.removeRuleFile(path); !res.Success {
		return res
	}
	s.Refresh()
	if found {
		s.record("delete", deleted)
	}

	s.log.Info("rule deleted", zap.String("file", path))
	return model.Successf("rule deleted: %s", path)
}

// RuleExists reports whether any cached rule binds the device.
func (s *Store) RuleExists(device model.DeviceRecord) bool {
	for _, rule := range s.rules {
		if rule.Matches(device) {
			return true
		}
	}
	return false
}

// MatchType reports whether a rule binds the device and whether that rule
// discriminates by serial. A match without serial means physically
// identical devices would collide on the same symlink.
func (s *Store) MatchType(device model.DeviceRecord) model.MatchType {
	for _, rule := range s.rules {
		if !rule.Matches(device) {
			continue
		}
		if rule.Serial != "" {
			return model.MatchWithSerial
		}
		return model.MatchWithoutSerial
	}
	return model.MatchNone
}

// SymlinkExists reports whether any cached rule already claims name. The
// symlink namespace is global, independent of device identity.
func (s *Store) SymlinkExists(name string) bool {
	for _, rule := range s.rules {
		if rule.Symlink == name {
			return true
		}
	}
	return false
}

// Rules returns a copy of the cache, sorted ascending by symlink name.
func (s *Store) Rules() []model.RuleRecord {
	out := make([]model.RuleRecord, len(s.rules))
	copy(out, s.rules)
	return out
}

// VerifySymlink reports whether the OS has actually materialized the
// symlink under the device directory. Independent of the rule file: a
// persisted rule stays inactive until the rules are applied.
func (s *Store) VerifySymlink(name string) bool {
	_, err := os.Lstat(filepath.Join(s.cfg.DevDir, name))
	return err == nil
}

// Refresh rebuilds the cache from the rule directory. There is no watch on
// the directory, so callers refresh explicitly before relying on freshness.
func (s *Store) Refresh() {
	s.rules = s.loadExistingRules()
}

// loadExistingRules lists the rule directory and parses every file this
// tool owns, dropping unparseable entries.
func (s *Store) loadExistingRules() []model.RuleRecord {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		s.log.Debug("rule directory not readable", zap.String("dir", s.cfg.Dir), zap.Error(err))
		return nil
	}

	var loaded []model.RuleRecord
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, s.cfg.Prefix) || !strings.HasSuffix(name, ruleExt) {
			continue
		}
		rule, ok := ParseFile(filepath.Join(s.cfg.Dir, name))
		if !ok {
			s.log.Warn("skipping unparseable rule file", zap.String("file", name))
			continue
		}
		loaded = append(loaded, rule)
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Symlink < loaded[j].Symlink
	})
	return loaded
}

func (s *Store) ruleFileName(symlink string) string {
	return fmt.Sprintf("%d-%s-%s%s", s.cfg.Priority, s.cfg.Prefix, symlink, ruleExt)
}

func (s *Store) record(action string, rule model.RuleRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(action, rule); err != nil {
		s.log.Warn("journal write failed", zap.String("action", action), zap.Error(err))
	}
}
