// Package pipeline wires router, indexes, and composer into the single
// entry point the HTTP and TUI boundaries call.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"concierge/internal/composer"
	"concierge/internal/domain"
	"concierge/internal/index"
	"concierge/internal/router"
)

// Pipeline sequences validate, route, retrieve, and compose for one query
// at a time and maintains the running conversation history. It is safe for
// concurrent use.
type Pipeline struct {
	router   *router.Router
	composer *composer.Composer
	catalog  *index.Catalog
	history  *History
	log      *log.Logger
}

// New creates a pipeline over the given components with a fresh history.
// Callers wanting per-session isolation construct one pipeline per session.
func New(r *router.Router, c *composer.Composer, catalog *index.Catalog, logger *log.Logger) *Pipeline {
	return &Pipeline{
		router:   r,
		composer: c,
		catalog:  catalog,
		history:  NewHistory(),
		log:      logger,
	}
}

// History exposes the conversation log for display layers.
func (p *Pipeline) History() *History { return p.history }

// Handle answers one query. Router parse failures and unknown destinations
// degrade to the default conversational path; provider failures are logged
// with stage context and returned for the boundary to translate into a
// generic message. The (user, assistant) pair is appended to history only
// after the answer is produced, so a failed or cancelled request leaves
// the history untouched.
func (p *Pipeline) Handle(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", domain.ErrEmptyQuery
	}
	logger := p.log.With("query", query)
	prior := p.history.Snapshot()

	start := time.Now()
	decision, err := p.router.Classify(ctx, query)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRouterParse), errors.Is(err, domain.ErrUnknownDestination):
		logger.Warn("router degraded to default path", "error", err)
		decision = domain.RouteDecision{Destination: domain.DefaultDestination, NextInputs: query}
	default:
		logger.Error("stage failed", "stage", "route", "error", err)
		return "", fmt.Errorf("route: %w", err)
	}
	logger.Info("query routed", "destination", decision.Destination, "elapsed_ms", time.Since(start).Milliseconds())

	var ix *index.Index
	if decision.Destination != domain.DefaultDestination {
		got, ok := p.catalog.Get(domain.Domain(decision.Destination))
		if ok {
			ix = got
		} else {
			logger.Warn("domain not queryable, using default path", "domain", decision.Destination)
		}
	}

	start = time.Now()
	answer, err := p.composer.Answer(ctx, decision.NextInputs, ix, prior)
	if err != nil {
		logger.Error("stage failed", "stage", "compose", "error", err)
		return "", fmt.Errorf("compose: %w", err)
	}
	logger.Info("answer composed", "elapsed_ms", time.Since(start).Milliseconds())

	// A cancelled caller must not leave a partial exchange behind.
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	p.history.AppendExchange(query, answer)
	return answer, nil
}
