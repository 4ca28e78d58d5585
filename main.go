package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aiphoto_backend/core"
	"aiphoto_backend/core/validation"
	"aiphoto_backend/imagegen"
	"aiphoto_backend/logging"
	"aiphoto_backend/webui"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	isDevelopment := os.Getenv("DEV_MODE") == "true"

	logger, err := logging.NewLogger(isDevelopment, os.Getenv("LOG_FILE"))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Printf("Failed to sync logger: %v\n", syncErr)
		}
	}()

	// Run startup validation before opening any sockets
	suite := validation.NewValidationSuite().WithShowProgress(true)
	result := suite.Validate()
	if !result.Success {
		logger.Error("Startup validation failed",
			zap.Int("failed_steps", result.FailedSteps),
			zap.Error(result.GetFirstError()),
		)
		os.Exit(core.ExitCodeError)
	}

	config, err := core.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.Int("port", config.Port),
		zap.String("image_model", config.ImageModel),
		zap.String("image_size", config.ImageSize),
		zap.String("image_api_url", config.ImageAPIURL),
		zap.Duration("ai_timeout", config.AITimeout),
		zap.Bool("allow_self_signed_certs", config.AllowSelfSignedCerts),
		zap.Bool("dev_mode", isDevelopment),
	)

	provider, err := imagegen.NewOpenAIProvider(config)
	if err != nil {
		logger.Fatal("Failed to initialize image provider", zap.Error(err))
	}

	serverConfig := webui.DefaultServerConfig()
	serverConfig.Port = config.Port
	server := webui.NewServer(serverConfig, provider, logger)

	// Start the server in a goroutine so we can handle signals
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting web server", zap.String("addr", server.Addr()))
		serverErr <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := core.ExitCodeSuccess
	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		switch sig {
		case syscall.SIGINT:
			exitCode = core.ExitCodeSIGINT
		case syscall.SIGTERM:
			exitCode = core.ExitCodeSIGTERM
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
			exitCode = core.ExitCodeError
		}
		<-serverErr
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", zap.Error(err))
			exitCode = core.ExitCodeError
		}
	}

	logger.Info("Shutdown complete", zap.String("exit", core.ExitCodeName(exitCode)))
	os.Exit(exitCode)
}
