package main

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/client-dashboard/internal/api"
	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, profile, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if servePort != "" {
		cfg.Port = servePort
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Persona drafting is optional; without a key the endpoint answers 503
	var drafter api.PersonaDrafter
	if cfg.DraftingEnabled() {
		geminiClient, err := profiler.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer geminiClient.Close()
		drafter = geminiClient
	} else {
		logger.Warn("GEMINI_API_KEY not set, persona drafting disabled")
	}

	store := dashboard.NewStore(profile, logger)
	router := api.NewRouter(api.NewHandler(store, drafter, logger, cfg.MaxUploadBytes))

	logger.Info("Client dashboard starting",
		zap.String("port", cfg.Port),
		zap.String("agency", profile.Agency),
		zap.Strings("tabs", profile.Tabs),
		zap.Bool("drafting", drafter != nil))

	if err := router.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}
