package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ims/ims/internal/config"
	"github.com/ims/ims/internal/messaging/messages"
	"github.com/ims/ims/internal/messaging/users"
	"github.com/ims/ims/internal/server"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ims-server",
	Short:         "Internal messaging system HTTP server",
	Long:          "Serves the user and message registries over HTTP. All state is kept in memory and lost on exit.",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runServer,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to the YAML config file (default: $IMS_CONFIG_FILE or ims.yaml)")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	config.Load(flagConfig)

	logger, err := initLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	as := newAppState(logger)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(as, server.RouterConfig{
		MaxRequestSize: config.Http().MaxRequestSize,
		AllowOrigins:   config.Cors().AllowOrigins,
	})

	addr := config.Http().Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(srv, logger)

	logger.Info("Starting messaging server", zap.String("address", addr))

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-done
	logger.Info("Server shutdown complete")
	return nil
}

// newAppState wires the registries and services. The stores are created once here
// and shared by reference; there is no other copy of the state.
func newAppState(logger *zap.Logger) *server.AppState {
	userService := users.NewUserService(users.NewInMemoryStore())
	messageService := messages.NewService(messages.NewInMemoryStore(), userService, logger.Named("messages"))

	return &server.AppState{
		UserService:    userService,
		MessageService: messageService,
		Logger:         logger,
	}
}

func initLogger() (*zap.Logger, error) {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

func setupSignalHandler(srv *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), config.Http().ShutdownGrace())
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
