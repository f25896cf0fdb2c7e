package cmd

import (
	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"dotstrap/internal/config"
	"dotstrap/internal/installer"
	"dotstrap/internal/logger"
)

// configPath holds the path to an optional dotstrap.yaml manifest.
// When empty, the compiled-in defaults are used unchanged.
var configPath string

// force bypasses the already-installed refusal, allowing a re-install on a
// machine whose completion marker is already present.
var force bool

// installCmd runs the full installation sequence: preflight checks, backup
// of pre-existing configuration, symlink creation, environment bootstrap,
// and finally the completion marker.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Back up existing config, link dotfiles and bootstrap the environment",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(configPath)
		home := xdg.Home

		report, err := installer.Run(installer.Options{
			Config:       cfg,
			Home:         home,
			Force:        force,
			Bootstrapper: installer.NewBootstrapper(home),
		})
		if err != nil {
			// The sole fatal exit path: print and terminate non-zero.
			logger.Fatalf("[FATAL] %v\n", err)
		}

		// Summarize per-file outcomes for the operator.
		linked, skipped, failed := 0, 0, 0
		for _, r := range report.Links {
			switch r.Outcome {
			case installer.OutcomeLinked:
				linked++
			case installer.OutcomeSkipped:
				skipped++
			case installer.OutcomeFailed:
				failed++
			}
		}
		logger.Info("[INFO] Links: %d created, %d skipped, %d failed\n", linked, skipped, failed)
	},
}

// checkCmd runs only the read-only preflight checks, mutating nothing.
// Useful as a dry confidence check before a real install.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify required commands and network reachability without installing",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(configPath)

		if err := installer.CheckCommands(cfg.RequiredCommands); err != nil {
			logger.Fatalf("[FATAL] %v\n", err)
		}
		if err := installer.CheckNetwork(cfg.NetworkProbe); err != nil {
			logger.Fatalf("[FATAL] %v\n", err)
		}
		logger.Success("[OK] Environment looks ready to install\n")
	},
}

// init sets up CLI flags and adds the subcommands to the root command.
func init() {
	installCmd.Flags().BoolVar(&force, "force", false, "Install even if the completion marker exists")
	installCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to dotstrap.yaml manifest")
	checkCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to dotstrap.yaml manifest")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(checkCmd)
}
