package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"concierge/internal/domain"
)

// ChunkerConfig configures how source text is split into passages.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig configures query-time retrieval. MinScore of 0 disables
// the similarity cutoff, which is the default behavior.
type RetrievalConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float32 `yaml:"min_score"`
}

// DomainConfig declares one routable domain: its name, the topical scope
// shown to the router, and the corpus file or directory to ingest.
type DomainConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Corpus      string `yaml:"corpus"`
}

// OpenAIConfig holds connection details for the embedding and chat models.
type OpenAIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Domains   []DomainConfig  `yaml:"domains"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Server    ServerConfig    `yaml:"server"`
}

// DomainNames returns the configured domain names in declaration order.
func (c *AppConfig) DomainNames() []domain.Domain {
	names := make([]domain.Domain, 0, len(c.Domains))
	for _, d := range c.Domains {
		names = append(names, domain.Domain(d.Name))
	}
	return names
}

// Load reads a config from the given path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/concierge/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "concierge", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Chunker:   ChunkerConfig{Size: 500, Overlap: 100},
		Retrieval: RetrievalConfig{TopK: 4},
		Domains: []DomainConfig{
			{
				Name:        "dining",
				Description: "questions about restaurants, menus, and dining hours",
				Corpus:      "corpus/dining",
			},
			{
				Name:        "rooms",
				Description: "questions about room types, amenities, and hotel policies like check-in/out",
				Corpus:      "corpus/rooms",
			},
			{
				Name:        "wellness",
				Description: "questions about the spa, gym, pool, and yoga classes",
				Corpus:      "corpus/wellness",
			},
		},
		OpenAI: OpenAIConfig{
			BaseURL:        "https://api.openai.com/v1",
			APIKeyEnv:      "OPENAI_API_KEY",
			EmbeddingModel: "text-embedding-3-small",
			ChatModel:      "gpt-4o-mini",
			TimeoutSecs:    30,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = def.Chunker.Size
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = def.Chunker.Overlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if len(cfg.Domains) == 0 {
		cfg.Domains = def.Domains
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = def.OpenAI.BaseURL
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = def.OpenAI.APIKeyEnv
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = def.OpenAI.EmbeddingModel
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = def.OpenAI.ChatModel
	}
	if cfg.OpenAI.TimeoutSecs == 0 {
		cfg.OpenAI.TimeoutSecs = def.OpenAI.TimeoutSecs
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Chunker.Size <= 0 {
		return fmt.Errorf("chunker.size must be positive, got %d", cfg.Chunker.Size)
	}
	if cfg.Chunker.Overlap < 0 || cfg.Chunker.Overlap >= cfg.Chunker.Size {
		return fmt.Errorf("chunker.overlap must be in [0, size), got %d", cfg.Chunker.Overlap)
	}
	if cfg.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", cfg.Retrieval.TopK)
	}
	seen := make(map[string]struct{}, len(cfg.Domains))
	for _, d := range cfg.Domains {
		if d.Name == "" {
			return errors.New("domain name must not be empty")
		}
		if d.Name == domain.DefaultDestination {
			return fmt.Errorf("%q is a reserved destination name", d.Name)
		}
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate domain %q", d.Name)
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}
