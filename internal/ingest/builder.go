package ingest

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"concierge/internal/config"
	"concierge/internal/domain"
	"concierge/internal/index"
)

// BuildCatalog chunks and indexes every configured domain. Domains with an
// empty corpus are logged and skipped rather than indexed, so the pipeline
// later refuses to route to them. Embedding failures abort the build:
// serving with a partially embedded index would silently skew retrieval.
func BuildCatalog(ctx context.Context, cfg *config.AppConfig, chunker domain.Chunker, emb domain.Embedder, logger *log.Logger) (*index.Catalog, error) {
	catalog := index.NewCatalog()
	for _, dc := range cfg.Domains {
		docs, err := LoadDomain(dc)
		if err != nil {
			return nil, fmt.Errorf("loading corpus for %s: %w", dc.Name, err)
		}
		var chunks []domain.Chunk
		for _, doc := range docs {
			chunks = append(chunks, chunker.Split(doc)...)
		}
		if len(chunks) == 0 {
			logger.Warn("domain has an empty corpus and will not be routable", "domain", dc.Name, "corpus", dc.Corpus)
			continue
		}
		ix, err := index.Build(ctx, emb, domain.Domain(dc.Name), chunks,
			index.WithMinScore(cfg.Retrieval.MinScore))
		if err != nil {
			return nil, fmt.Errorf("building index for %s: %w", dc.Name, err)
		}
		logger.Info("domain indexed", "domain", dc.Name, "documents", len(docs), "chunks", ix.Len())
		catalog.Add(ix)
	}
	return catalog, nil
}
