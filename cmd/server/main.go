package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"traitor/internal/app"
	"traitor/internal/catalog"
	"traitor/internal/config"
	"traitor/internal/domain"
	httpTransport "traitor/internal/transport/http"
)

const releaseVersion = "0.1.0"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "traitor-server",
		Short:         "Hosts \"find the traitor\" party-game tables.",
		Args:          cobra.NoArgs,
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	config.RegisterFlags(cmd.Flags())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("traitor-server v{{.Version}}\n")

	return cmd
}

// loadConfig preloads the dotenv file named by --env-file or ENV_FILE, then
// reads flags and environment
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return nil, err
	}

	if err := config.LoadEnvFile(v.GetString(config.KeyEnvFile)); err != nil {
		return nil, err
	}

	return config.Load(v)
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting traitor game server",
		"version", releaseVersion,
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	cat, err := catalog.Load(cfg.Content.CategoriesFile)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "categories", cat.Len(), "file", cfg.Content.CategoriesFile)

	// Create game hub
	hub := app.NewGameHub(app.HubOptions{
		Settings: domain.GameSettings{
			MinPlayers: cfg.Game.MinPlayers,
			MaxPlayers: cfg.Game.MaxPlayers,
		},
		TableCodeLength:   cfg.Game.TableCodeLength,
		StaleTableTimeout: cfg.Game.StaleTableTimeout,
	}, cat, logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	errs := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errs:
		logger.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, logOpts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
