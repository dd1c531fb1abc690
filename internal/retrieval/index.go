// Package retrieval defines the vector index contract consumed by the
// ingestion and answer orchestrators, and builds search phrases from
// structured query inputs. Ranking itself is delegated entirely to the
// index's similarity search; no scoring logic lives here.
package retrieval

import (
	"context"

	"trackpulse/internal/types"
)

// VectorIndex is the capability contract for the external vector index
// service. Embedding generation happens entirely inside the index; callers
// never see raw vectors. The index is append-only: passages are never
// updated in place, and deletion is whole-collection only.
type VectorIndex interface {
	// Upsert stores passages and returns how many were written.
	Upsert(ctx context.Context, passages []types.Passage) (int, error)

	// SimilaritySearch returns the topK most similar passages to the
	// query text, ranked by the index's own similarity measure.
	SimilaritySearch(ctx context.Context, query string, topK int) ([]types.SearchHit, error)

	// DeleteAll removes every passage in the collection.
	DeleteAll(ctx context.Context) error
}
