package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/hybrid-events/internal/core/config"
	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg *corecfg.Config
)

var rootCmd = &cobra.Command{
	Use:           "hybridd <command>",
	Short:         "Hybrid event store: REST API, synthetic producer and migrations",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		loaded, err := corecfg.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		slog.Info("Loaded config", "server", cfg.Server, "database_type", cfg.Database.Type, "sequence_backend", cfg.Sequence.Backend)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to configuration file (optional)")

	rootCmd.AddCommand(serveCmd, produceCmd, migrateCmd)
}

func defaultConfigPath() string {
	if s := os.Getenv("HYBRID_CONFIG"); s != "" {
		return s
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}
