// Package contract provides configuration and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/openforest/millpulse/schema"
)

// WarehouseClient defines the warehouse operations the commands depend on.
// This allows the report logic to be tested without a real database.
type WarehouseClient interface {
	// --- Semantic views ---

	// Production returns daily mill production rows from vw_production.
	Production(ctx context.Context) (schema.Dataset, error)

	// Shipments returns per-order shipment rows from vw_shipments.
	Shipments(ctx context.Context) (schema.Dataset, error)

	// Finance returns monthly finance rows from vw_finance.
	Finance(ctx context.Context) (schema.Dataset, error)

	// --- View exports ---

	// ProductionRows returns the full vw_production result for export.
	ProductionRows(ctx context.Context) ([]schema.ProductionViewRow, error)

	// ShipmentRows returns the full vw_shipments result for export.
	ShipmentRows(ctx context.Context) ([]schema.ShipmentViewRow, error)

	// FinanceRows returns the full vw_finance result for export.
	FinanceRows(ctx context.Context) ([]schema.FinanceViewRow, error)

	// --- Lifecycle / maintenance ---

	// Load replaces the warehouse contents with the given seed bundle.
	Load(ctx context.Context, bundle *schema.SeedBundle) error

	// SaveReport persists a rendered report for later retrieval.
	SaveReport(ctx context.Context, kind string, runDate string, body string) error

	// GetStatus returns row counts and backend details.
	GetStatus(ctx context.Context) (schema.WarehouseStatus, error)

	// Close closes the underlying connection.
	Close() error
}
