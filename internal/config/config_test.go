package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Chunker.Size)
	assert.Equal(t, 100, cfg.Chunker.Overlap)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
	assert.Equal(t, []domain.Domain{"dining", "rooms", "wellness"}, cfg.DomainNames())
	assert.Equal(t, 30, cfg.OpenAI.TimeoutSecs)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := writeConfig(t, `
chunker:
  size: 300
domains:
  - name: dining
    description: food questions
    corpus: data/dining
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Chunker.Size)
	assert.Equal(t, 100, cfg.Chunker.Overlap)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ChatModel)
	require.Len(t, cfg.Domains, 1)
	assert.Equal(t, "data/dining", cfg.Domains[0].Corpus)
}

func TestLoadRejectsOverlapNotBelowSize(t *testing.T) {
	path := writeConfig(t, `
chunker:
  size: 100
  overlap: 100
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "overlap")
}

func TestLoadRejectsDuplicateDomains(t *testing.T) {
	path := writeConfig(t, `
domains:
  - name: rooms
    description: a
    corpus: x
  - name: rooms
    description: b
    corpus: y
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadRejectsReservedDomainName(t *testing.T) {
	path := writeConfig(t, `
domains:
  - name: default
    description: catch-all
    corpus: x
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "reserved")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Retrieval.TopK = 8
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Retrieval.TopK)
	assert.Equal(t, cfg.DomainNames(), loaded.DomainNames())
}
