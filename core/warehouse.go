package core

import (
	"context"

	"github.com/openforest/millpulse/schema"
)

// Warehouse is the read-only data collaborator the engine queries. Each
// method returns the full semantic view for one domain as a tabular dataset;
// all windowing and aggregation happens in the engine. A query error is
// fatal to the report call and propagates to the caller with domain context;
// the engine never retries.
type Warehouse interface {
	Production(ctx context.Context) (schema.Dataset, error)
	Shipments(ctx context.Context) (schema.Dataset, error)
	Finance(ctx context.Context) (schema.Dataset, error)
}
