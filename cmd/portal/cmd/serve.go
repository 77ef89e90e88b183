package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fesdmit/portal/internal/api"
	"github.com/fesdmit/portal/internal/config"
	"github.com/fesdmit/portal/internal/metrics"
	"github.com/fesdmit/portal/internal/storage/mongostore"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal HTTP server",
	Long: `Start the portal HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables
- Connect to MongoDB (a failed connection degrades requests, not startup)
- Serve the events and registrations API
- Handle graceful shutdown on SIGINT/SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8000)")
}

func runServer() error {
	cfg := config.Load()
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting FESdmiT portal server")

	metrics.Init(Version, GitCommit, BuildDate)

	store := connectStore(cfg, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("store shutdown error")
		}
	}()

	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	defer collectorCancel()
	go metrics.NewStoreCollector(store).Start(collectorCtx, 15*time.Second)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, logger, store),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

// connectStore opens the MongoDB connection. Failure is logged, not fatal:
// the returned nil store makes every insert/find answer store-unavailable
// while / and /test keep working so operators can see what is wrong.
func connectStore(cfg config.Config, logger zerolog.Logger) *mongostore.Store {
	if cfg.Database.URL == "" || cfg.Database.Name == "" {
		logger.Warn().Msg("DATABASE_URL or DATABASE_NAME not set; store operations will fail")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongostore.Connect(ctx, cfg.Database.URL, cfg.Database.Name)
	if err != nil {
		logger.Error().Err(err).Msg("mongodb connection failed; store operations will fail")
		return nil
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to mongodb")
	return store
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
