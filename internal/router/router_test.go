package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/config"
	"concierge/internal/domain"
)

type fakeCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

var testDomains = []config.DomainConfig{
	{Name: "dining", Description: "questions about restaurants, menus, and dining hours"},
	{Name: "rooms", Description: "questions about room types, amenities, and hotel policies like check-in/out"},
	{Name: "wellness", Description: "questions about the spa, gym, pool, and yoga classes"},
}

func TestClassifyValidJSON(t *testing.T) {
	fc := &fakeCompleter{reply: `{"destination":"rooms","next_inputs":"What time is check-in?"}`}
	r := New(fc, testDomains)

	decision, err := r.Classify(context.Background(), "What time is check-in?")
	require.NoError(t, err)
	assert.Equal(t, "rooms", decision.Destination)
	assert.Equal(t, "What time is check-in?", decision.NextInputs)
}

func TestClassifyFencedJSON(t *testing.T) {
	fc := &fakeCompleter{reply: "```json\n{\"destination\":\"dining\",\"next_inputs\":\"When is breakfast?\"}\n```"}
	r := New(fc, testDomains)

	decision, err := r.Classify(context.Background(), "When is breakfast?")
	require.NoError(t, err)
	assert.Equal(t, "dining", decision.Destination)
}

func TestClassifyNonJSONIsParseError(t *testing.T) {
	fc := &fakeCompleter{reply: "I think rooms"}
	r := New(fc, testDomains)

	_, err := r.Classify(context.Background(), "Where do I check in?")
	assert.ErrorIs(t, err, domain.ErrRouterParse)
}

func TestClassifyMissingDestinationIsParseError(t *testing.T) {
	fc := &fakeCompleter{reply: `{"next_inputs":"hello"}`}
	r := New(fc, testDomains)

	_, err := r.Classify(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrRouterParse)
}

func TestClassifyUnknownDestination(t *testing.T) {
	fc := &fakeCompleter{reply: `{"destination":"casino","next_inputs":"Where are the slots?"}`}
	r := New(fc, testDomains)

	_, err := r.Classify(context.Background(), "Where are the slots?")
	assert.ErrorIs(t, err, domain.ErrUnknownDestination)
}

func TestClassifyDefaultDestinationIsAccepted(t *testing.T) {
	fc := &fakeCompleter{reply: `{"destination":"default","next_inputs":"Tell me a joke"}`}
	r := New(fc, testDomains)

	decision, err := r.Classify(context.Background(), "Tell me a joke")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDestination, decision.Destination)
}

func TestClassifyEmptyNextInputsFallsBackToQuery(t *testing.T) {
	fc := &fakeCompleter{reply: `{"destination":"wellness"}`}
	r := New(fc, testDomains)

	decision, err := r.Classify(context.Background(), "When does the pool open?")
	require.NoError(t, err)
	assert.Equal(t, "When does the pool open?", decision.NextInputs)
}

func TestClassifyPromptEnumeratesDomains(t *testing.T) {
	fc := &fakeCompleter{reply: `{"destination":"default","next_inputs":"x"}`}
	r := New(fc, testDomains)

	_, err := r.Classify(context.Background(), "Is there a gym?")
	require.NoError(t, err)
	for _, d := range testDomains {
		assert.Contains(t, fc.lastPrompt, d.Name+": For "+d.Description)
	}
	assert.Contains(t, fc.lastPrompt, "Question: Is there a gym?")
	assert.Contains(t, fc.lastPrompt, `"default"`)
}

func TestClassifyCompleterFailureIsNotParseError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("timeout")}
	r := New(fc, testDomains)

	_, err := r.Classify(context.Background(), "Where do I park?")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRouterParse)
	assert.NotErrorIs(t, err, domain.ErrUnknownDestination)
}
