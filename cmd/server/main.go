package main

import (
	"fmt"
	"log"

	"clausevet/internal/config"
	"clausevet/internal/extract"
	"clausevet/internal/handler"
	"clausevet/internal/llm"
	"clausevet/internal/llm/claude"
	"clausevet/internal/llm/openai"
	"clausevet/internal/pipeline"
	"clausevet/internal/port"
	"clausevet/internal/repository/memory"
	"clausevet/internal/router"
	"clausevet/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registerProviders()

	generator, err := buildGenerator(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize text generator: %w", err)
	}

	// Initialize pipeline and storage
	extractor := extract.NewExtractor()
	pipe := pipeline.New(generator, extractor, cfg.Pipeline)
	analysisRepo := memory.NewAnalysisRepo(cfg.Store.MaxAnalyses, cfg.Store.TTL)

	// Initialize services
	analysisSvc := service.NewAnalysisService(pipe, analysisRepo)
	reportSvc := service.NewReportService(analysisRepo)
	authSvc := service.NewAuthService(cfg.Auth)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc, cfg.Upload.MaxFileSizeMB)
	reportH := handler.NewReportHandler(reportSvc)
	authH := handler.NewAuthHandler(authSvc)
	healthH := handler.NewHealthHandler(cfg.LLM.PrimaryConfig().Provider)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, analysisH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func registerProviders() {
	llm.RegisterProvider("openai", func(c *config.LLMProviderConfig) (port.TextGenerator, error) {
		return openai.NewGenerator(c), nil
	})
	llm.RegisterProvider("claude", func(c *config.LLMProviderConfig) (port.TextGenerator, error) {
		return claude.NewGenerator(c), nil
	})
}

// buildGenerator assembles the generator chain from the configured
// providers. With a secondary or tertiary provider configured, the chain
// falls back in order, skipping rate-limited providers.
func buildGenerator(cfg *config.LLMConfig) (port.TextGenerator, error) {
	var generators []port.TextGenerator
	var names []string

	for _, pc := range []*config.LLMProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()} {
		if pc == nil || pc.Provider == "" {
			continue
		}
		g, err := llm.NewGenerator(pc)
		if err != nil {
			return nil, err
		}
		generators = append(generators, g)
		names = append(names, pc.Provider)
	}

	if len(generators) == 0 {
		return nil, fmt.Errorf("no llm provider configured")
	}
	if len(generators) == 1 {
		return generators[0], nil
	}

	log.Printf("main: using fallback generator chain: %v", names)
	return llm.NewFallbackGenerator(generators, names), nil
}
