package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "puppet",
	Short: "Declared state in, undeclared users and groups out.",
	Long:  `Puppet reconciles local users and groups against a declarative manifest and purges the ones nobody declared.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	rootCmd.PersistentFlags().StringP("config", "c", "puppet.yaml", "config file path")
}
