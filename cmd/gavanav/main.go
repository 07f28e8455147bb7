package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gavanav/internal/agent"
	"gavanav/internal/api"
	"gavanav/internal/api/handlers"
	"gavanav/internal/knowledge"
	"gavanav/internal/service"
	"gavanav/pkg/config"
	"gavanav/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting GavaNav agent service")

	// Load the knowledge base once; it is read-only for the process lifetime
	catalog, err := knowledge.Load(cfg.Knowledge.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	// Reasoning collaborator: GigaChat when a key is configured, else local
	reasoner, err := service.NewReasoner(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize reasoner", zap.Error(err))
	}
	if closer, ok := reasoner.(io.Closer); ok {
		defer closer.Close()
	}

	var searcher service.Searcher
	if cfg.LiveSearch.Enabled {
		searcher = service.NewSimulatedSearcher(appLogger)
	}

	gavaAgent := agent.New(catalog, searcher, reasoner, appLogger)

	agentHandler := handlers.NewAgentHandler(gavaAgent, appLogger)
	app := api.SetupRouter(agentHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
