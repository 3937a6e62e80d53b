// Package router classifies a query into one of the known domains or the
// default destination using the chat model with a strict JSON contract.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"concierge/internal/config"
	"concierge/internal/domain"
)

const routerPromptFormat = `Given a user's question, determine the most relevant domain to route it to.
The available domains are:
%s
If the question does not fit any of the domains, categorize it as "default".

Respond with a single JSON object. The JSON object should have two keys: 'destination' and 'next_inputs'. The value of 'destination' should be the name of the most relevant domain or 'default' if none apply. The value of 'next_inputs' should be the original user question as a string.

Example JSON:
{
  "destination": "rooms",
  "next_inputs": "What time is check-in?"
}

Question: %s
Response:`

// Router sends queries to the chat model for classification. It is
// stateless: every call uses only the current query text, never the
// conversation history.
type Router struct {
	completer    domain.Completer
	domains      []config.DomainConfig
	destinations map[string]struct{}
}

// New creates a router over the configured domains.
func New(completer domain.Completer, domains []config.DomainConfig) *Router {
	dests := make(map[string]struct{}, len(domains)+1)
	for _, d := range domains {
		dests[d.Name] = struct{}{}
	}
	dests[domain.DefaultDestination] = struct{}{}
	return &Router{completer: completer, domains: domains, destinations: dests}
}

// Classify asks the model for a routing decision and validates it. The
// model's output is untrusted input: invalid JSON or missing keys yield
// domain.ErrRouterParse, and a destination outside the known set yields
// domain.ErrUnknownDestination. Callers degrade both to the default path.
func (r *Router) Classify(ctx context.Context, query string) (domain.RouteDecision, error) {
	raw, err := r.completer.Complete(ctx, r.prompt(query))
	if err != nil {
		return domain.RouteDecision{}, fmt.Errorf("router completion: %w", err)
	}
	decision, err := parseDecision(raw)
	if err != nil {
		return domain.RouteDecision{}, err
	}
	if _, known := r.destinations[decision.Destination]; !known {
		return domain.RouteDecision{}, fmt.Errorf("%w: %q", domain.ErrUnknownDestination, decision.Destination)
	}
	if decision.NextInputs == "" {
		decision.NextInputs = query
	}
	return decision, nil
}

func (r *Router) prompt(query string) string {
	var scopes strings.Builder
	for i, d := range r.domains {
		fmt.Fprintf(&scopes, "%d. %s: For %s.\n", i+1, d.Name, d.Description)
	}
	return fmt.Sprintf(routerPromptFormat, strings.TrimRight(scopes.String(), "\n"), query)
}

func parseDecision(raw string) (domain.RouteDecision, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	var decision domain.RouteDecision
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		return domain.RouteDecision{}, fmt.Errorf("%w: %v", domain.ErrRouterParse, err)
	}
	if decision.Destination == "" {
		return domain.RouteDecision{}, fmt.Errorf("%w: missing destination key", domain.ErrRouterParse)
	}
	return decision, nil
}

// stripCodeFence removes a surrounding markdown code fence. Models
// instructed to emit bare JSON still wrap it in fences often enough that
// rejecting those responses would waste the call.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
