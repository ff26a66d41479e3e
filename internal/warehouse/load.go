package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

// Load replaces the warehouse contents with the given seed bundle. The
// whole load runs in one transaction so a failed load leaves the previous
// contents intact.
func (s *Store) Load(ctx context.Context, bundle *schema.SeedBundle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Clear facts before dimensions; the reports table is left alone.
	clearOrder := []string{
		factFinanceTable, factShipmentTable, factProductionTable,
		dimCustomerTable, dimProductTable, dimSiteTable, dimRegionTable, dimDateTable,
	}
	for _, table := range clearOrder {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	if err := s.loadDimensions(ctx, tx, bundle); err != nil {
		return err
	}
	if err := s.loadFacts(ctx, tx, bundle); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}
	return nil
}

// insertBatch prepares one INSERT statement and executes it per row.
func insertBatch(ctx context.Context, tx *sql.Tx, backend schema.WarehouseBackend,
	table string, columns string, nCols int, nRows int, args func(i int) []any) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(table, backend), columns, placeholders(nCols, backend))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for i := 0; i < nRows; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) loadDimensions(ctx context.Context, tx *sql.Tx, bundle *schema.SeedBundle) error {
	if err := insertBatch(ctx, tx, s.backend, dimDateTable,
		"date_key, date, day, month, month_name, quarter, year, weekday, is_weekend", 9,
		len(bundle.Dates), func(i int) []any {
			d := bundle.Dates[i]
			return []any{d.DateKey, s.formatDate(d.Date), d.Day, d.Month, d.MonthName, d.Quarter, d.Year, d.Weekday, s.formatBool(d.IsWeekend)}
		}); err != nil {
		return err
	}

	if err := insertBatch(ctx, tx, s.backend, dimRegionTable,
		"region_key, region_name, country", 3,
		len(bundle.Regions), func(i int) []any {
			r := bundle.Regions[i]
			return []any{r.RegionKey, r.RegionName, r.Country}
		}); err != nil {
		return err
	}

	if err := insertBatch(ctx, tx, s.backend, dimSiteTable,
		"site_key, site_name, site_type, region_key, capacity_m3", 5,
		len(bundle.Sites), func(i int) []any {
			r := bundle.Sites[i]
			return []any{r.SiteKey, r.SiteName, r.SiteType, r.RegionKey, r.CapacityM3}
		}); err != nil {
		return err
	}

	if err := insertBatch(ctx, tx, s.backend, dimProductTable,
		"product_key, product_name, product_type, grade, unit_of_measure", 5,
		len(bundle.Products), func(i int) []any {
			r := bundle.Products[i]
			return []any{r.ProductKey, r.ProductName, r.ProductType, r.Grade, r.UnitOfMeasure}
		}); err != nil {
		return err
	}

	return insertBatch(ctx, tx, s.backend, dimCustomerTable,
		"customer_key, customer_name, segment, region_key", 4,
		len(bundle.Customers), func(i int) []any {
			r := bundle.Customers[i]
			return []any{r.CustomerKey, r.CustomerName, r.Segment, r.RegionKey}
		})
}

func (s *Store) loadFacts(ctx context.Context, tx *sql.Tx, bundle *schema.SeedBundle) error {
	if err := insertBatch(ctx, tx, s.backend, factProductionTable,
		"date_key, site_key, product_key, input_volume_m3, output_volume_m3, downtime_hours, shift_hours, energy_kwh", 8,
		len(bundle.Production), func(i int) []any {
			f := bundle.Production[i]
			return []any{f.DateKey, f.SiteKey, f.ProductKey, f.InputVolumeM3, f.OutputVolumeM3, f.DowntimeHours, f.ShiftHours, f.EnergyKwh}
		}); err != nil {
		return err
	}

	if err := insertBatch(ctx, tx, s.backend, factShipmentTable,
		"order_id, order_date_key, ship_date_key, delivery_date_key, customer_key, product_key, site_key, qty_m3, on_time_flag, in_full_flag", 10,
		len(bundle.Shipments), func(i int) []any {
			f := bundle.Shipments[i]
			return []any{f.OrderID, f.OrderDateKey, f.ShipDateKey, f.DeliveryDateKey, f.CustomerKey, f.ProductKey, f.SiteKey, f.QtyM3, f.OnTimeFlag, f.InFullFlag}
		}); err != nil {
		return err
	}

	return insertBatch(ctx, tx, s.backend, factFinanceTable,
		"month_key, product_key, region_key, revenue_nzd, direct_cost_nzd, opex_nzd, budget_revenue_nzd, budget_cost_nzd", 8,
		len(bundle.Finance), func(i int) []any {
			f := bundle.Finance[i]
			return []any{f.MonthKey, f.ProductKey, f.RegionKey, f.RevenueNZD, f.DirectCostNZD, f.OpexNZD, f.BudgetRevenueNZD, f.BudgetCostNZD}
		})
}

// formatDate converts a calendar date into the backend's insert value.
func (s *Store) formatDate(t time.Time) any {
	if s.backend == schema.SQLiteBackend {
		return t.Format(contract.DateFormat)
	}
	return t
}

// formatBool converts a boolean into the backend's insert value.
func (s *Store) formatBool(b bool) any {
	if s.backend == schema.SQLiteBackend {
		if b {
			return 1
		}
		return 0
	}
	return b
}
