// Package answer orchestrates the retrieval-augmented query path: it
// turns a question or structured analysis request into a search phrase,
// retrieves passages from the vector index, filters and aggregates them,
// renders a grounding context, and forwards everything to the completion
// service. Failures from either external service surface as typed errors,
// never as panics; the caller decides the presentation.
package answer

import (
	"context"
	"strings"

	"trackpulse/internal/llm"
	"trackpulse/internal/logging"
	"trackpulse/internal/retrieval"
	"trackpulse/internal/types"
)

// Top-k depths per analysis, tuned for how wide each one needs to cast.
const (
	openQuestionTopK = 10
	delayTopK        = 20
	pendingTopK      = 15
	summaryTopK      = 50
)

// Orchestrator answers questions against an indexed collection.
type Orchestrator struct {
	index    retrieval.VectorIndex
	llm      llm.Completer
	roleText string
}

// New returns an answer orchestrator. roleText is the fixed persona
// forwarded as the completion system text.
func New(index retrieval.VectorIndex, completer llm.Completer, roleText string) *Orchestrator {
	return &Orchestrator{index: index, llm: completer, roleText: roleText}
}

// Answer is the result of an open question.
type Answer struct {
	Query   string
	Matches int
	Text    string
}

// Ask answers a free-text question grounded in the most similar indexed
// passages. The question itself is the search phrase.
func (o *Orchestrator) Ask(ctx context.Context, question string) (*Answer, error) {
	timer := logging.StartTimer(logging.CategoryAnswer, "Ask")
	defer timer.Stop()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, types.ErrEmptyQuery
	}

	hits, err := o.search(ctx, question, openQuestionTopK)
	if err != nil {
		return nil, err
	}

	text, err := o.complete(ctx, renderHits(hits), question)
	if err != nil {
		return nil, err
	}

	logging.Answer("answered question with %d grounding passages", len(hits))
	return &Answer{Query: question, Matches: len(hits), Text: text}, nil
}

// Search runs a plain top-k similarity search with no completion call.
func (o *Orchestrator) Search(ctx context.Context, query string, topK int) ([]types.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = openQuestionTopK
	}
	return o.search(ctx, query, topK)
}

// ClearIndex removes every passage in the collection.
func (o *Orchestrator) ClearIndex(ctx context.Context) error {
	if err := o.index.DeleteAll(ctx); err != nil {
		return &types.UpstreamError{Service: "vector index", Err: err}
	}
	logging.Answer("cleared index collection")
	return nil
}

// search wraps the vector index call with upstream error tagging.
func (o *Orchestrator) search(ctx context.Context, phrase string, topK int) ([]types.SearchHit, error) {
	hits, err := o.index.SimilaritySearch(ctx, phrase, topK)
	if err != nil {
		return nil, &types.UpstreamError{Service: "vector index", Err: err}
	}
	return hits, nil
}

// complete wraps the completion call with upstream error tagging.
func (o *Orchestrator) complete(ctx context.Context, groundingContext, user string) (string, error) {
	text, err := o.llm.Complete(ctx, o.roleText, groundingContext, user)
	if err != nil {
		return "", &types.UpstreamError{Service: "completion", Err: err}
	}
	return text, nil
}
