// Package ingest loads per-domain corpus files and builds the domain
// indexes at startup. Document acquisition itself (scraping, auth) is out
// of scope: the loader consumes plain text already on disk.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"concierge/internal/config"
	"concierge/internal/domain"
)

// LoadDomain reads the corpus for one domain. The corpus path may be a
// single text file or a directory of .txt files. Missing paths and empty
// files yield an empty document list, not an error; the caller decides
// whether an empty domain is fatal.
func LoadDomain(cfg config.DomainConfig) ([]domain.Document, error) {
	info, err := os.Stat(cfg.Corpus)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	d := domain.Domain(cfg.Name)
	if !info.IsDir() {
		return readDocument(cfg.Corpus, d)
	}

	entries, err := os.ReadDir(cfg.Corpus)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(cfg.Corpus, e.Name()))
	}
	sort.Strings(paths)

	var docs []domain.Document
	for _, p := range paths {
		loaded, err := readDocument(p, d)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

func readDocument(path string, d domain.Domain) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []domain.Document{{SourceID: path, Domain: d, Text: text}}, nil
}
