package chunker

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/domain"
)

func doc(text string) domain.Document {
	return domain.Document{SourceID: "guide.txt", Domain: "rooms", Text: text}
}

func TestSplitShortTextYieldsSingleChunk(t *testing.T) {
	c := NewWindowChunker(500, 100)
	chunks := c.Split(doc("Check-in is at 3pm."))

	require.Len(t, chunks, 1)
	assert.Equal(t, "Check-in is at 3pm.", chunks[0].Text)
	assert.Equal(t, "guide.txt", chunks[0].SourceID)
	assert.Equal(t, domain.Domain("rooms"), chunks[0].Domain)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestSplitEmptyTextYieldsNothing(t *testing.T) {
	c := NewWindowChunker(500, 100)
	assert.Empty(t, c.Split(doc("")))
}

func TestSplitReconstructsOriginalText(t *testing.T) {
	cases := map[string]string{
		"prose":         strings.Repeat("The pool is open from six in the morning until nine at night. ", 40),
		"no whitespace": strings.Repeat("x", 1200),
		"unicode":       strings.Repeat("Frühstück wird täglich serviert. ", 60),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			const size, overlap = 200, 40
			c := NewWindowChunker(size, overlap)
			chunks := c.Split(doc(text))
			require.NotEmpty(t, chunks)

			rebuilt := []rune(chunks[0].Text)
			for i := 1; i < len(chunks); i++ {
				cur := []rune(chunks[i].Text)
				prev := []rune(chunks[i-1].Text)
				// consecutive chunks share exactly `overlap` characters
				assert.Equal(t, string(prev[len(prev)-overlap:]), string(cur[:overlap]))
				rebuilt = append(rebuilt, cur[overlap:]...)
			}
			assert.Equal(t, text, string(rebuilt))

			for i, ch := range chunks {
				assert.LessOrEqual(t, len([]rune(ch.Text)), size)
				assert.Equal(t, i, ch.Index)
			}
		})
	}
}

func TestSplitPrefersWhitespaceBoundaries(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 30)
	c := NewWindowChunker(100, 20)
	chunks := c.Split(doc(text))
	require.Greater(t, len(chunks), 2)

	for _, ch := range chunks[:len(chunks)-1] {
		runes := []rune(ch.Text)
		assert.True(t, unicode.IsSpace(runes[len(runes)-1]),
			"chunk should end at a whitespace break, got %q", ch.Text)
	}
}

func TestNewWindowChunkerClampsInvalidParams(t *testing.T) {
	c := NewWindowChunker(0, -5)
	assert.Equal(t, DefaultSize, c.size)
	assert.Equal(t, 0, c.overlap)

	c = NewWindowChunker(100, 100)
	assert.Equal(t, 25, c.overlap)
}
