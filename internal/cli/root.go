package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "trivia-game-service",
		Short:        "Trivia quiz game over WebSocket or in the terminal",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on (defaults to config, then 8080)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewPlayCmd(&configPath))
	return cmd
}
