// Package composer turns retrieved context and a query into a grounded
// answer, or falls back to a general-conversation prompt when no domain
// applies.
package composer

import (
	"context"
	"fmt"
	"strings"

	"concierge/internal/domain"
	"concierge/internal/index"
)

// groundingInstruction is the hard constraint placed on every retrieval
// prompt: the model must answer from the supplied context alone.
const groundingInstruction = "Answer the user's question based ONLY on the following context. If the answer is not\nin the context, state that you cannot provide information on that topic."

const defaultPromptFormat = `You are a general concierge AI assistant. You cannot provide information about specific hotel policies, dining, or wellness services. Please state that you can only answer general questions.
%s
User's question: %s`

// Composer builds prompts and delegates to the chat model.
type Composer struct {
	completer domain.Completer
	topK      int
}

// New creates a composer that retrieves up to topK chunks per query.
func New(completer domain.Completer, topK int) *Composer {
	if topK <= 0 {
		topK = 4
	}
	return &Composer{completer: completer, topK: topK}
}

// Answer produces an answer for the query. With a nil index it takes the
// default non-retrieval path. Otherwise it retrieves the top chunks from
// the index and instructs the model to answer using only that context.
// Retrieval failures propagate unchanged; completion failures are wrapped
// in domain.ErrAnswerGeneration.
func (c *Composer) Answer(ctx context.Context, query string, ix *index.Index, history []domain.Turn) (string, error) {
	var prompt string
	if ix == nil {
		prompt = fmt.Sprintf(defaultPromptFormat, historyBlock(history), query)
	} else {
		results, err := ix.Search(ctx, query, c.topK)
		if err != nil {
			return "", err
		}
		prompt = c.groundedPrompt(query, ix.Domain(), results, history)
	}
	answer, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAnswerGeneration, err)
	}
	return answer, nil
}

func (c *Composer) groundedPrompt(query string, d domain.Domain, results []domain.SearchResult, history []domain.Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a concierge AI assistant for a luxury hotel, specializing in %s.\n", specialty(d))
	b.WriteString(groundingInstruction)
	b.WriteString("\n\nContext:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "Passage %d (%s):\n%s\n\n", i+1, r.Chunk.SourceID, r.Chunk.Text)
	}
	if h := historyBlock(history); h != "" {
		b.WriteString(h)
		b.WriteString("\n")
	}
	b.WriteString("Question:\n")
	b.WriteString(query)
	return b.String()
}

// historyBlock folds prior turns into the prompt so follow-up questions
// keep their context. Empty history contributes nothing.
func historyBlock(history []domain.Turn) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, t := range history {
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func specialty(d domain.Domain) string {
	switch d {
	case "dining":
		return "dining"
	case "rooms":
		return "rooms and hotel policies"
	case "wellness":
		return "wellness and fitness"
	default:
		return string(d)
	}
}
