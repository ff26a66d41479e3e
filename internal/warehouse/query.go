package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

// Production returns the daily production dataset from vw_production.
// One record per (date, mill, product) row with the metric columns the
// reports aggregate.
func (s *Store) Production(ctx context.Context) (schema.Dataset, error) {
	query := fmt.Sprintf(`
		SELECT date, site_name, yield_pct, output_volume_m3, downtime_hours
		FROM %s
	`, quoteTableName(string(schema.ProductionView), s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.ProductionView, err)
	}
	defer func() { _ = rows.Close() }()

	var ds schema.Dataset
	for rows.Next() {
		var date nullDate
		var siteName string
		var yieldPct, outputVol, downtime sql.NullFloat64
		if err := rows.Scan(&date, &siteName, &yieldPct, &outputVol, &downtime); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.ProductionView, err)
		}
		ds = append(ds, schema.Record{
			Period: date.Time,
			Entity: siteName,
			Values: map[string]*float64{
				"yield_pct":        nullToPtr(yieldPct),
				"output_volume_m3": nullToPtr(outputVol),
				"downtime_hours":   nullToPtr(downtime),
			},
		})
	}
	return ds, rows.Err()
}

// Shipments returns the per-order dataset from vw_shipments, keyed on the
// order date.
func (s *Store) Shipments(ctx context.Context) (schema.Dataset, error) {
	query := fmt.Sprintf(`
		SELECT order_date, customer_name, otif_flag, lead_time_days
		FROM %s
	`, quoteTableName(string(schema.ShipmentsView), s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.ShipmentsView, err)
	}
	defer func() { _ = rows.Close() }()

	var ds schema.Dataset
	for rows.Next() {
		var orderDate nullDate
		var customerName string
		var otif, leadTime sql.NullFloat64
		if err := rows.Scan(&orderDate, &customerName, &otif, &leadTime); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.ShipmentsView, err)
		}
		ds = append(ds, schema.Record{
			Period: orderDate.Time,
			Entity: customerName,
			Values: map[string]*float64{
				"otif_flag":      nullToPtr(otif),
				"lead_time_days": nullToPtr(leadTime),
			},
		})
	}
	return ds, rows.Err()
}

// Finance returns the monthly finance dataset from vw_finance. Month keys
// are normalized to the first day of the month.
func (s *Store) Finance(ctx context.Context) (schema.Dataset, error) {
	query := fmt.Sprintf(`
		SELECT month_key, region_name, revenue_nzd, gross_margin_pct, ebitda_margin_pct
		FROM %s
	`, quoteTableName(string(schema.FinanceView), s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.FinanceView, err)
	}
	defer func() { _ = rows.Close() }()

	var ds schema.Dataset
	for rows.Next() {
		var monthKey int
		var regionName string
		var revenue, grossMargin, ebitdaMargin sql.NullFloat64
		if err := rows.Scan(&monthKey, &regionName, &revenue, &grossMargin, &ebitdaMargin); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.FinanceView, err)
		}
		ds = append(ds, schema.Record{
			Period: monthKeyToTime(monthKey),
			Entity: regionName,
			Values: map[string]*float64{
				"revenue_nzd":       nullToPtr(revenue),
				"gross_margin_pct":  nullToPtr(grossMargin),
				"ebitda_margin_pct": nullToPtr(ebitdaMargin),
			},
		})
	}
	return ds, rows.Err()
}

// ProductionRows returns the full vw_production result for export.
func (s *Store) ProductionRows(ctx context.Context) ([]schema.ProductionViewRow, error) {
	query := fmt.Sprintf(`
		SELECT date, site_name, product_name, input_volume_m3, output_volume_m3,
			yield_pct, downtime_hours, energy_kwh
		FROM %s
	`, quoteTableName(string(schema.ProductionView), s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.ProductionView, err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.ProductionViewRow
	for rows.Next() {
		var row schema.ProductionViewRow
		var date nullDate
		var yieldPct sql.NullFloat64
		if err := rows.Scan(&date, &row.SiteName, &row.ProductName, &row.InputVolumeM3,
			&row.OutputVolumeM3, &yieldPct, &row.DowntimeHours, &row.EnergyKwh); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.ProductionView, err)
		}
		row.Date = date.Time.Format(contract.DateFormat)
		row.YieldPct = nullToPtr(yieldPct)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ShipmentRows returns the full vw_shipments result for export.
func (s *Store) ShipmentRows(ctx context.Context) ([]schema.ShipmentViewRow, error) {
	query := fmt.Sprintf(`
		SELECT order_id, order_date, delivery_date, customer_name, product_name,
			qty_m3, on_time_flag, in_full_flag, otif_flag, lead_time_days
		FROM %s
	`, quoteTableName(string(schema.ShipmentsView), s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.ShipmentsView, err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.ShipmentViewRow
	for rows.Next() {
		var row schema.ShipmentViewRow
		var orderDate, deliveryDate nullDate
		var leadTime sql.NullFloat64
		if err := rows.Scan(&row.OrderID, &orderDate, &deliveryDate, &row.CustomerName,
			&row.ProductName, &row.QtyM3, &row.OnTimeFlag, &row.InFullFlag,
			&row.OtifFlag, &leadTime); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.ShipmentsView, err)
		}
		row.OrderDate = orderDate.Time.Format(contract.DateFormat)
		if deliveryDate.Valid {
			row.DeliveryDate = deliveryDate.Time.Format(contract.DateFormat)
		}
		row.LeadTimeDays = nullToPtr(leadTime)
		out = append(out, row)
	}
	return out, rows.Err()
}

// FinanceRows returns the full vw_finance result for export.
func (s *Store) FinanceRows(ctx context.Context) ([]schema.FinanceViewRow, error) {
	query := fmt.Sprintf(`
		SELECT month_key, region_name, product_name, revenue_nzd, direct_cost_nzd,
			opex_nzd, gross_margin_pct, ebitda_margin_pct
		FROM %s
	`, quoteTableName(string(schema.FinanceView), s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.FinanceView, err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.FinanceViewRow
	for rows.Next() {
		var row schema.FinanceViewRow
		var grossMargin, ebitdaMargin sql.NullFloat64
		if err := rows.Scan(&row.MonthKey, &row.RegionName, &row.ProductName, &row.RevenueNZD,
			&row.DirectCostNZD, &row.OpexNZD, &grossMargin, &ebitdaMargin); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.FinanceView, err)
		}
		row.GrossMarginPct = nullToPtr(grossMargin)
		row.EbitdaMarginPct = nullToPtr(ebitdaMargin)
		out = append(out, row)
	}
	return out, rows.Err()
}
