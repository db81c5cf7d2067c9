// Package main is the entry point for the ASTRA assistant daemon.
// ASTRA is a personal AI assistant that runs against a local Ollama
// instance: it remembers facts about its owner, tracks mood, routes
// between models, runs local tools, and serves an HTTP and websocket API.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/astralabs/astra/internal/autollm"
	"github.com/astralabs/astra/internal/brain"
	"github.com/astralabs/astra/internal/capabilities"
	"github.com/astralabs/astra/internal/config"
	"github.com/astralabs/astra/internal/llm"
	"github.com/astralabs/astra/internal/memory"
	"github.com/astralabs/astra/internal/search"
	"github.com/astralabs/astra/internal/semantic"
	"github.com/astralabs/astra/internal/server"
)

var (
	version = "0.3.0"
	cfgPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "astra",
		Short: "ASTRA - personal AI assistant backend",
		Long: `ASTRA is a local-first personal assistant backend:
  • Conversational pipeline with emotion tracking and fact memory
  • Semantic recall over a local vector index
  • Automatic model routing across local Ollama models
  • Local tools: files, system monitor, tasks, git, Python sandbox
  • Optional web search with citations

Run the server:  astra serve`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.astra/config.yaml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the ASTRA HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("astra %s\n", version)
		},
	}
}

func runServe() error {
	// Optional .env for SERPER_API_KEY and ASTRA_ overrides.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)
	logger.Info().Str("version", version).Msg("starting astra")

	provider := llm.NewOllamaProvider(&llm.ProviderConfig{
		Endpoint:       cfg.LLM.Endpoint,
		Model:          cfg.LLM.DefaultModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		MaxTokens:      cfg.LLM.MaxTokens,
		Temperature:    cfg.LLM.Temperature,
	}, llm.WithTimeoutConfig(llm.TimeoutConfig{
		ConnectionTimeout: time.Duration(cfg.LLM.Timeouts.ConnectionTimeoutSec) * time.Second,
		FirstTokenTimeout: time.Duration(cfg.LLM.Timeouts.FirstTokenTimeoutSec) * time.Second,
		StreamIdleTimeout: time.Duration(cfg.LLM.Timeouts.StreamIdleTimeoutSec) * time.Second,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	selector := autollm.NewSelector(ctx, provider, cfg.LLM.DefaultModel, logger)
	store := memory.NewStore(cfg.Memory.Path, cfg.Owner.Name, logger)

	opts := []brain.Option{
		brain.WithCapabilities(capabilities.NewManagerFrom(cfg.Tools.Capabilities)),
		brain.WithWorkspace(cfg.Tools.Workspace),
		brain.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}

	index, err := semantic.Open(cfg.Memory.VectorPath, provider, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("semantic index unavailable, continuing without it")
	} else {
		defer index.Close()
		opts = append(opts, brain.WithSemanticIndex(index))
	}

	if cfg.Search.SerperAPIKey != "" {
		client := search.NewClient(cfg.Search.SerperAPIKey, logger)
		agent := search.NewAgent(client, provider, cfg.LLM.DefaultModel, logger)
		opts = append(opts, brain.WithSearchAgent(agent))
	} else {
		logger.Info().Msg("SERPER_API_KEY not set, web search disabled")
	}

	b := brain.New(cfg.Owner.Name, store, provider, selector, logger, opts...)

	srv := server.New(&server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: 5 * time.Second,
	}, b, logger)

	return srv.Start(ctx)
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFromPath(cfgPath)
	}
	return config.Load()
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
