package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change update preferences",
	}

	cmd.AddCommand(newPrefsGetCmd())
	cmd.AddCommand(newPrefsSetCmd())
	cmd.AddCommand(newPrefsSkipCmd())
	cmd.AddCommand(newPrefsUnskipCmd())

	return cmd
}

// prefsView is the display shape of the preferences store.
type prefsView struct {
	AutoCheck       bool     `json:"auto_check" yaml:"auto_check"`
	AllowBeta       bool     `json:"allow_beta" yaml:"allow_beta"`
	IntervalSeconds int      `json:"update_interval" yaml:"update_interval"`
	LastCheck       string   `json:"last_check,omitempty" yaml:"last_check,omitempty"`
	SkippedVersions []string `json:"skipped_versions,omitempty" yaml:"skipped_versions,omitempty"`
}

func (v prefsView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "auto_check:      %t\n", v.AutoCheck)
	fmt.Fprintf(&b, "allow_beta:      %t\n", v.AllowBeta)
	fmt.Fprintf(&b, "update_interval: %ds\n", v.IntervalSeconds)
	lastCheck := v.LastCheck
	if lastCheck == "" {
		lastCheck = "never"
	}
	fmt.Fprintf(&b, "last_check:      %s\n", lastCheck)
	if len(v.SkippedVersions) > 0 {
		fmt.Fprintf(&b, "skipped:         %s", strings.Join(v.SkippedVersions, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current update preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			writer, err := newOutputWriter()
			if err != nil {
				return err
			}

			view := prefsView{
				AutoCheck:       store.AutoCheck(),
				AllowBeta:       store.AllowBeta(),
				IntervalSeconds: int(store.UpdateInterval() / time.Second),
				SkippedVersions: store.SkippedVersions(),
			}
			if t, ok := store.LastCheck(); ok {
				view.LastCheck = t.Format(time.RFC3339)
			}
			return writer.Write(view)
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	var (
		autoCheck       bool
		allowBeta       bool
		intervalSeconds int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change update preferences",
		Long: `Set persists the given preferences immediately. The automatic check
schedule is recomputed from the new values on the next watch cycle.

Examples:
  lodestone prefs set --auto-check=true
  lodestone prefs set --interval 3600
  lodestone prefs set --allow-beta=true --auto-check=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openPrefs(cfg)
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("auto-check") {
				if err := store.SetAutoCheck(autoCheck); err != nil {
					return err
				}
				changed = true
			}
			if cmd.Flags().Changed("allow-beta") {
				if err := store.SetAllowBeta(allowBeta); err != nil {
					return err
				}
				changed = true
			}
			if cmd.Flags().Changed("interval") {
				if intervalSeconds <= 0 {
					return fmt.Errorf("interval must be positive, got %d", intervalSeconds)
				}
				if err := store.SetUpdateInterval(time.Duration(intervalSeconds) * time.Second); err != nil {
					return err
				}
				changed = true
			}

			if !changed {
				return fmt.Errorf("nothing to set; see --help for available flags")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoCheck, "auto-check", false, "Enable or disable automatic update checks")
	cmd.Flags().BoolVar(&allowBeta, "allow-beta", false, "Allow pre-release versions to be offered")
	cmd.Flags().IntVar(&intervalSeconds, "interval", 0, "Automatic check interval in seconds")

	return cmd
}

func newPrefsSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <version-tag>",
		Short: "Never offer the given version again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			return store.SkipVersion(args[0])
		},
	}
}

func newPrefsUnskipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unskip <version-tag>",
		Short: "Allow a skipped version to be offered again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			return store.UnskipVersion(args[0])
		},
	}
}
