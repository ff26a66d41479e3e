package warehouse

import (
	"context"
	"fmt"

	"github.com/openforest/millpulse/schema"
)

// GetStatus returns row counts and backend details for the warehouse.
func (s *Store) GetStatus(ctx context.Context) (schema.WarehouseStatus, error) {
	status := schema.WarehouseStatus{
		Backend:   string(s.backend),
		TableRows: make(map[string]int64),
	}

	if err := s.db.PingContext(ctx); err != nil {
		return status, fmt.Errorf("failed to ping %s database: %w", s.backend, err)
	}
	status.Connected = true

	for _, table := range allTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.TableRows[table] = count
		status.TotalRows += count
	}

	// Views exist once a probe query succeeds.
	probe := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(string(schema.ProductionView), s.backend))
	var n int64
	if err := s.db.QueryRowContext(ctx, probe).Scan(&n); err == nil {
		status.ViewsReady = true
	}

	return status, nil
}
