package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	dataDir      string
	appDir       string
	logFormat    string
	verbose      bool
	quiet        bool

	// Build metadata, set by Execute.
	launcherVersion string
	launcherCommit  string
	launcherDate    string
)

func Execute(version, commit, date string) error {
	launcherVersion = version
	launcherCommit = commit
	launcherDate = date

	rootCmd := &cobra.Command{
		Use:   "lodestone",
		Short: "Launcher companion for a modded game installation",
		Long: `lodestone manages a modded game installation: it checks for and installs
launcher updates through the external updater binary, keeps the update
preferences, and browses the mod catalog.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().StringVar(&appDir, "app-dir", "", "Override the application directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newPrefsCmd())
	rootCmd.AddCommand(newModsCmd())
	rootCmd.AddCommand(newVersionCmd())

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
