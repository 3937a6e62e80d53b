package domain

// Domain is a topical category with its own corpus and index.
type Domain string

// DefaultDestination is the router output for queries that fit no domain.
const DefaultDestination = "default"

// Document is a single piece of source text supplied by the ingestion layer.
type Document struct {
	SourceID string
	Domain   Domain
	Text     string
}

// Chunk is a bounded-length passage of a document used for indexing.
// Consecutive chunks from the same source overlap to preserve context
// across boundaries.
type Chunk struct {
	Text     string
	SourceID string
	Domain   Domain
	Index    int
}

// SearchResult is a matching chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// RouteDecision is the router's verdict for a single query. Destination is
// either a known domain name or DefaultDestination; NextInputs echoes the
// query, possibly normalized by the model.
type RouteDecision struct {
	Destination string `json:"destination"`
	NextInputs  string `json:"next_inputs"`
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in the running conversation.
type Turn struct {
	Role Role
	Text string
}
