package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/VGOT23/rbac-project/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rbac-api",
	Short: "Role-based posts API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is normal outside local development.
		_ = godotenv.Overload()
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Str("command", rootCmd.Name()).Msg("command failed")
		os.Exit(1)
	}
}
