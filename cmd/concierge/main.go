package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"concierge/internal/chunker"
	"concierge/internal/composer"
	"concierge/internal/config"
	"concierge/internal/ingest"
	"concierge/internal/pipeline"
	openaiprovider "concierge/internal/provider/openai"
	"concierge/internal/router"
	"concierge/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/concierge/config.yaml if not provided)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	client, err := openaiprovider.NewClient(openaiprovider.Config{
		BaseURL:        cfg.OpenAI.BaseURL,
		APIKeyEnv:      cfg.OpenAI.APIKeyEnv,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		ChatModel:      cfg.OpenAI.ChatModel,
		Timeout:        time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("openai client init failed", "error", err)
	}

	ch := chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	catalog, err := ingest.BuildCatalog(context.Background(), cfg, ch, client, logger)
	if err != nil {
		logger.Fatal("ingest failed", "error", err)
	}
	if catalog.Len() == 0 {
		logger.Warn("no domain has a corpus; every query will take the default path")
	}

	pipe := pipeline.New(
		router.New(client, cfg.Domains),
		composer.New(client, cfg.Retrieval.TopK),
		catalog,
		logger,
	)

	handler := server.New(pipe, logger)
	logger.Info("listening", "addr", cfg.Server.Addr, "domains", catalog.Len())
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
