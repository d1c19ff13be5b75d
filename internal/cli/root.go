// Package cli wires the core components behind a thin cobra surface. No
// rule or device logic lives here; commands only call into the scanner,
// the rule store and the udev bridge, and format the results.
package cli

import (
	"fmt"

	"github.com/Hara602/ttyAnchor/internal/config"
	"github.com/Hara602/ttyAnchor/internal/history"
	"github.com/Hara602/ttyAnchor/internal/rules"
	"github.com/Hara602/ttyAnchor/internal/scanner"
	"github.com/Hara602/ttyAnchor/internal/sysutil"
	"github.com/Hara602/ttyAnchor/internal/udevctl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "/etc/ttyanchor/config.yaml"

// app holds the assembled core components for one command invocation.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	store   *rules.Store
	bridge  *udevctl.Bridge
	journal *history.Journal
}

func (a *app) close() {
	if a.journal != nil {
		a.journal.Close()
	}
	_ = a.log.Sync()
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := sysutil.NewLogger(cfg.Logging.Level)
	a := &app{
		cfg:    cfg,
		log:    log,
		store:  rules.NewStore(cfg.Rules, log),
		bridge: udevctl.New(log),
	}

	if cfg.Journal.Path != "" {
		j, err := history.Open(cfg.Journal.Path)
		if err != nil {
			// The journal is best-effort; the tool stays usable without it.
			log.Warn("operation journal unavailable", zap.Error(err))
		} else {
			a.journal = j
			a.store.SetRecorder(j)
		}
	}
	return a, nil
}

func (a *app) newScanner() (*scanner.Scanner, error) {
	return scanner.New(a.log)
}

// NewRootCmd builds the ttyanchor command tree.
func NewRootCmd(version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "ttyanchor",
		Short:         "Persistent names for USB serial devices via udev rules",
		Long:          "ttyanchor binds USB serial adapters to stable /dev names that survive replug and renumbering, by managing udev rules in /etc/udev/rules.d.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to config file")

	root.AddCommand(
		newDevicesCmd(&configPath),
		newRulesCmd(&configPath),
		newCreateCmd(&configPath),
		newDeleteCmd(&configPath),
		newApplyCmd(&configPath),
		newHistoryCmd(&configPath),
	)
	return root
}

// warnIfUnprivileged prints the operator hint that rule mutations from a
// non-root shell go through sudo and may prompt for a password.
func warnIfUnprivileged() {
	if !sysutil.IsRoot() {
		fmt.Println("Note: running without root - rule changes may require a sudo password.")
	}
}
