package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/internal/update"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for and install launcher updates",
	}

	cmd.AddCommand(newUpdateCheckCmd())
	cmd.AddCommand(newUpdateInstallCmd())
	cmd.AddCommand(newUpdateWatchCmd())

	return cmd
}

func newUpdateCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run an update check now",
		Long: `Check runs the external updater in check-only mode and, when an update is
available and not on the skip list, offers to install it.`,
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

			controller := newController(cfg, store, newPrompter(), newLogger())
			err = controller.CheckForUpdates(cmd.Context())
			if errors.Is(err, update.ErrRestartPending) {
				fmt.Println("Updater started. Exiting so it can replace files.")
				return nil
			}
			return err
		},
	}
}

func newUpdateInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <version-tag>",
		Short: "Install a specific version via the external updater",
		Long: `Install dispatches the external updater to install the given version tag
and returns immediately; the updater owns the installation from there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openPrefs(cfg)
			if err != nil {
				return err
			}

			logger := newLogger()
			runner := newRunner(cfg, logger)
			if err := runner.RunInstall(args[0], store.AllowBeta()); err != nil {
				return err
			}
			fmt.Println("Updater started. Exiting so it can replace files.")
			return nil
		},
	}
}

func newUpdateWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run periodic automatic update checks",
		Long: `Watch schedules update checks at the configured interval. The first check
fires immediately when no prior check is recorded, otherwise after the
remainder of the interval. Stops when auto-check is disabled or on interrupt.`,
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

			logger := newLogger()
			controller := newController(cfg, store, newPrompter(), logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			restartPending := false
			scheduler := update.NewScheduler(store, func(ctx context.Context) {
				if err := controller.CheckForUpdates(ctx); errors.Is(err, update.ErrRestartPending) {
					restartPending = true
					stop()
				}
			}, logger)

			err = scheduler.Run(ctx)
			if restartPending {
				fmt.Println("Updater started. Exiting so it can replace files.")
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
