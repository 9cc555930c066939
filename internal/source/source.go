// Package source defines the adapter contract every external price source
// implements, and ships the on-chain V2 pair source.
package source

import (
	"context"

	"priceScope/internal/model"
)

// Source is a single external market-data source tracking one token.
// Refresh overwrites the source's metrics in place and is safe to call
// repeatedly; callers bound its work with the context deadline and must
// serialize calls per instance.
type Source interface {
	// Name identifies the source for filtering and logging.
	Name() string

	// TrackedSymbol is the token this source reports on.
	TrackedSymbol() string

	// Metrics returns the last complete metric snapshot.
	Metrics() model.SourceMetrics

	// Refresh recomputes the metric snapshot. On failure the previous
	// snapshot is retained.
	Refresh(ctx context.Context) error
}
