package main

import (
	"context"
	"flag"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"concierge/internal/chunker"
	"concierge/internal/composer"
	"concierge/internal/config"
	"concierge/internal/ingest"
	"concierge/internal/pipeline"
	openaiprovider "concierge/internal/provider/openai"
	"concierge/internal/router"
	"concierge/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/concierge/config.yaml if not provided)")
	flag.Parse()

	// The terminal owns stdout, so logs go to a file to keep the view clean.
	logFile, err := os.OpenFile("concierge-chat.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal("failed to open log file", "error", err)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true})

	var cfg *config.AppConfig
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	client, err := openaiprovider.NewClient(openaiprovider.Config{
		BaseURL:        cfg.OpenAI.BaseURL,
		APIKeyEnv:      cfg.OpenAI.APIKeyEnv,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		ChatModel:      cfg.OpenAI.ChatModel,
		Timeout:        time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatal("openai client init failed", "error", err)
	}

	ch := chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	catalog, err := ingest.BuildCatalog(context.Background(), cfg, ch, client, logger)
	if err != nil {
		log.Fatal("ingest failed", "error", err)
	}

	pipe := pipeline.New(
		router.New(client, cfg.Domains),
		composer.New(client, cfg.Retrieval.TopK),
		catalog,
		logger,
	)

	m := tui.New(pipe, catalog.Len())
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal("chat client failed", "error", err)
	}
}
