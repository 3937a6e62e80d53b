package domain

import "errors"

var (
	// ErrEmptyQuery is returned for blank or whitespace-only queries.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyCorpus is returned when an index is built with no chunks.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInvalidTopK is returned when a search is requested with a
	// non-positive result count.
	ErrInvalidTopK = errors.New("top_k must be positive")

	// ErrEmbeddingProvider wraps failures of the embedding provider,
	// including per-call timeouts.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrRouterParse wraps model responses that are not the expected
	// JSON routing object.
	ErrRouterParse = errors.New("unparseable router response")

	// ErrUnknownDestination is returned when the router names neither a
	// known domain nor the default destination.
	ErrUnknownDestination = errors.New("unknown destination")

	// ErrAnswerGeneration wraps failures of the completion provider,
	// including per-call timeouts.
	ErrAnswerGeneration = errors.New("answer generation failure")
)
