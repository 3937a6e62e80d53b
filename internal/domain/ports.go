package domain

import "context"

// Embedder converts free text into a fixed-dimension vector. The same
// embedder must be used for index build and query-time search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Completer produces free text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Chunker splits source documents into passages suitable for indexing.
type Chunker interface {
	Split(doc Document) []Chunk
}
