package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/leveledit/internal/config"
	"github.com/aretw0/leveledit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "leveledit",
	Short: "leveledit saves, loads and serves level editor scenes",
	Long: `leveledit manages the scene files written by the level editor: validate and
inspect them, convert between formats, and move them in and out of a shared level store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(loaded.Log.Level)
		if err != nil {
			return err
		}

		cfg = loaded
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), level, logging.Format(loaded.Log.Format))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to leveledit.yaml (default: ./leveledit.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
