package cli

import (
	"fmt"

	"github.com/Hara602/ttyAnchor/internal/model"
	"github.com/Hara602/ttyAnchor/internal/rules"
	"github.com/spf13/cobra"
)

func newDevicesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List connected USB serial devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			sc, err := a.newScanner()
			if err != nil {
				return err
			}

			devices := sc.Scan()
			if len(devices) == 0 {
				fmt.Println("No USB serial devices found.")
				return nil
			}

			fmt.Printf("Found %d USB serial device(s):\n\n", len(devices))
			for _, dev := range devices {
				fmt.Printf("Device: %s\n", dev.DevPath)
				fmt.Printf("  Vendor ID:    %s\n", dev.VendorID)
				fmt.Printf("  Product ID:   %s\n", dev.ProductID)
				if dev.Manufacturer != "" {
					fmt.Printf("  Manufacturer: %s\n", dev.Manufacturer)
				}
				if dev.Product != "" {
					fmt.Printf("  Product:      %s\n", dev.Product)
				}
				if dev.Serial != "" {
					fmt.Printf("  Serial:       %s\n", dev.Serial)
				} else {
					fmt.Printf("  Serial:       (none - bus %s dev %s fallback identity)\n", dev.BusNum, dev.DevNum)
				}
				if dev.Driver != "" {
					fmt.Printf("  Driver:       %s\n", dev.Driver)
				}
				if a.store.RuleExists(dev) {
					fmt.Printf("  Rule:         exists\n")
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newRulesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List managed udev rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ruleList := a.store.Rules()
			if len(ruleList) == 0 {
				fmt.Println("No ttyanchor udev rules found.")
				return nil
			}

			fmt.Printf("Found %d udev rule(s):\n\n", len(ruleList))
			for _, rule := range ruleList {
				fmt.Printf("Symlink: /dev/%s\n", rule.Symlink)
				fmt.Printf("  Vendor ID:  %s\n", rule.VendorID)
				fmt.Printf("  Product ID: %s\n", rule.ProductID)
				if rule.Serial != "" {
					fmt.Printf("  Serial:     %s\n", rule.Serial)
				}
				fmt.Printf("  File:       %s\n", rule.FilePath)
				if a.store.VerifySymlink(rule.Symlink) {
					fmt.Printf("  Active:     yes\n")
				} else {
					fmt.Printf("  Active:     no (apply rules or replug the device)\n")
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newCreateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create <device-path> [name]",
		Short: "Create a persistent name rule for a connected device",
		Long:  "Creates a udev rule binding the device at <device-path> (e.g. /dev/ttyUSB0) to /dev/<name>. Without a name, one is suggested from the product string.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			warnIfUnprivileged()

			sc, err := a.newScanner()
			if err != nil {
				return err
			}

			var device model.DeviceRecord
			found := false
			for _, dev := range sc.Scan() {
				if dev.DevPath == args[0] {
					device, found = dev, true
					break
				}
			}
			if !found {
				return fmt.Errorf("no USB serial device at %s", args[0])
			}

			name := ""
			if len(args) == 2 {
				name = args[1]
			} else {
				name = rules.SuggestName(device)
				fmt.Printf("Using suggested name %q\n", name)
			}

			res := a.store.CreateRule(device, name)
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Println(res.Message)

			if apply := a.bridge.Apply(); !apply.Success {
				fmt.Println(apply.Message)
				return nil
			}
			if a.store.VerifySymlink(name) {
				fmt.Printf("Symlink /dev/%s is active.\n", name)
			} else {
				fmt.Printf("Symlink /dev/%s not materialized yet; replug the device if it does not appear.\n", name)
			}
			return nil
		},
	}
}

func newDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a rule by symlink or display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			warnIfUnprivileged()

			res := a.store.DeleteRule(args[0])
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Println(res.Message)

			if apply := a.bridge.Apply(); !apply.Success {
				fmt.Println(apply.Message)
			}
			return nil
		},
	}
}

func newApplyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Reload udev rules and trigger device re-enumeration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			warnIfUnprivileged()

			res := a.bridge.Apply()
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Println(res.Message)
			return nil
		},
	}
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rule changes from the operation journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			if a.journal == nil {
				return fmt.Errorf("operation journal is not configured (set journal.path in the config)")
			}

			entries, err := a.journal.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No journal entries.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  %-6s  /dev/%-16s  %s:%s", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.Symlink, e.VendorID, e.ProductID)
				if e.Serial != "" {
					fmt.Printf("  serial=%s", e.Serial)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show")
	return cmd
}
