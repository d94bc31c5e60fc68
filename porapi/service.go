// Package porapi exposes spec.md §6.4's service surface (interpret,
// build_index, size, sample) over HTTP, in teacher's gin-based api/
// package style: a thin Service contract, one handler per operation, and
// a RegisterRoutes entry point wiring them onto a *gin.Engine alongside
// the health endpoints. No new semantics live here — every handler is a
// direct, no-op-transport call into the core search stack.
package porapi

import (
	"context"

	"github.com/gilby125/por-search/por"
)

// Service is the narrow surface porapi needs from the wired-together
// search stack (interpreter.Interpreter + porindex.Index + the indexer's
// Build), so handlers can be tested against a fake without a live index.
type Service interface {
	// Interpret runs spec.md §4.10's interpret(query) → (locations,
	// unmatched_words).
	Interpret(ctx context.Context, query string) ([]por.Location, []string, error)
	// Size returns the index's document count (spec.md §6.3/§6.4 size()).
	Size(ctx context.Context) (uint64, error)
	// Sample returns up to n uniformly-sampled documents, flattened to
	// Locations for a uniform response shape (spec.md §6.4 sample(n)).
	Sample(ctx context.Context, n int) ([]por.Location, error)
	// Reindex rebuilds the index from the catalog at catalogPath and
	// returns the number of documents written (spec.md §6.4 build_index).
	Reindex(ctx context.Context, catalogPath string) (int, error)
}
