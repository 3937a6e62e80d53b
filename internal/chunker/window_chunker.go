package chunker

import (
	"unicode"

	"concierge/internal/domain"
)

const (
	// DefaultSize is the default chunk size in characters.
	DefaultSize = 500
	// DefaultOverlap is the default number of characters shared by
	// consecutive chunks from the same source.
	DefaultOverlap = 100
)

// WindowChunker splits text into fixed-size character windows with overlap,
// preferring to end a window at a whitespace boundary so words are not cut
// in half.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker creates a chunker with the given window size and overlap,
// falling back to defaults for out-of-range values.
func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Split walks the document text producing successive windows of at most
// the configured size. Each window after the first starts `overlap`
// characters before the previous window ended. The final chunk may be
// shorter than the window size; a document that fits in one window yields
// exactly one chunk.
func (c *WindowChunker) Split(doc domain.Document) []domain.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	estimated := len(runes)/(c.size-c.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	idx := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else if b := c.boundaryBefore(runes, start, end); b > 0 {
			end = b
		}
		chunks = append(chunks, domain.Chunk{
			Text:     string(runes[start:end]),
			SourceID: doc.SourceID,
			Domain:   doc.Domain,
			Index:    idx,
		})
		idx++
		if end == len(runes) {
			break
		}
		start = end - c.overlap
	}
	return chunks
}

// boundaryBefore looks back from the window end for the last whitespace
// within a quarter of the window, returning 0 when no usable break exists.
// A break is usable only if the shrunken window still extends past the
// overlap region, otherwise the walk would stop advancing.
func (c *WindowChunker) boundaryBefore(runes []rune, start, end int) int {
	lookback := c.size / 4
	for i := end; i > end-lookback && i > start; i-- {
		if unicode.IsSpace(runes[i-1]) && i-start > c.overlap {
			return i
		}
	}
	return 0
}
