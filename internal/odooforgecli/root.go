package odooforgecli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagTargetDir  string
	flagOrg        string

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets build metadata from ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "odooforge",
	Short: "Terminal UI for provisioning Odoo development environments",
	Long: `odooforge is a terminal front-end for the create.sh provisioning script.
It collects the project parameters in a Bubble Tea form (name, Odoo
version, target directory, optional database and repository) and then
runs the script in the foreground with those parameters.`,
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("odooforge %s\n  commit: %s\n  built:  %s\n", buildVersion, buildCommit, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config file (default: ~/.odooforge-cli/config.yaml)")
	rootCmd.Flags().StringVar(&flagTargetDir, "target-dir", "", "Target directory for new projects (overrides config)")
	rootCmd.Flags().StringVar(&flagOrg, "org", "", "GitHub organization to list repos from (overrides config)")

	rootCmd.AddCommand(versionCmd)

	// Register headless subcommands.
	initSubcommands(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Enforce singleton — only one TUI instance at a time.
	if err := AcquirePIDLock(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil // Exit gracefully, not an error.
	}
	defer ReleasePIDLock()

	cfgPath := flagConfigPath
	if cfgPath == "" {
		cfgPath = ConfigPath()
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// First run: write the defaults so there is a file to edit.
	if !ConfigFileExists(cfgPath) {
		if err := SaveConfig(cfg, cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: write default config: %v\n", err)
		}
	}

	// CLI flag overrides
	if flagTargetDir != "" {
		cfg.TargetDir = flagTargetDir
	}
	if flagOrg != "" {
		cfg.Organization = flagOrg
	}

	logger := NewLogger()
	defer logger.Close()
	logger.Info("odooforge-cli started (target=%s, org=%s)", cfg.TargetDir, cfg.Organization)

	lister := NewRepoLister(cfg, logger)
	runner := NewScriptRunner(cfg, logger)

	model := NewModel(cfg, lister, runner, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI fatal: %v", err)
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return err
	}

	return nil
}
