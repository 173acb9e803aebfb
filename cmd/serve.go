package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api"
	"github.com/killallgit/voicenotes-api/internal/logging"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Voice Notes API server with the configured settings.

The server opens the database, migrates it, connects the configured
transcription providers and blob storage, and listens for HTTP requests.

Example:
  voicenotes-api serve
  voicenotes-api serve --port 9090
  voicenotes-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if serverPort < 0 || serverPort > 65535 {
		return fmt.Errorf("invalid port %d", serverPort)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.Component("server")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if application.janitor != nil {
		application.janitor.Start(ctx)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := api.NewServer(addr, application.deps,
		api.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, 0),
		api.WithMaxHeaderBytes(cfg.Server.MaxHeaderBytes),
	)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	logger.Info().
		Str("address", addr).
		Str("environment", cfg.Environment).
		Str("storage", application.deps.Storage.Backend()).
		Strs("providers", kindNames(application.deps)).
		Msg("Voice Notes API listening")

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutting down server")
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	logger.Info().Msg("Server gracefully stopped")
	return nil
}
