package cmd

import (
	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"dotstrap/internal/config"
	"dotstrap/internal/installer"
	"dotstrap/internal/logger"
)

// restoreCmd copies files from a backup set back into the home directory.
// The argument is a set name under the backup root, a directory path, or an
// archived snapshot file. Existing files that dotstrap does not manage are
// never overwritten.
var restoreCmd = &cobra.Command{
	Use:   "restore <backup-set>",
	Short: "Restore files from a backup set into the home directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(configPath)
		home := xdg.Home

		restored, err := installer.Restore(cfg, home, args[0])
		if err != nil {
			logger.Fatalf("[FATAL] %v\n", err)
		}
		logger.Success("[OK] Restored %d file(s) from %s\n", restored, args[0])
	},
}

func init() {
	restoreCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to dotstrap.yaml manifest")
	rootCmd.AddCommand(restoreCmd)
}
