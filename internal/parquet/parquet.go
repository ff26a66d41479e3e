// Package parquet provides data structures and functions for exporting
// warehouse views and KPI snapshots to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/openforest/millpulse/schema"
)

// ProductionRow represents one vw_production row for Parquet export.
type ProductionRow struct {
	// Date is the production day in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// SiteName is the producing mill
	SiteName string `parquet:"site_name,snappy"`

	// ProductName is the log or timber product
	ProductName string `parquet:"product_name,snappy"`

	// InputVolumeM3 is the raw material volume fed into the mill
	InputVolumeM3 float64 `parquet:"input_volume_m3,snappy"`

	// OutputVolumeM3 is the finished product volume
	OutputVolumeM3 float64 `parquet:"output_volume_m3,snappy"`

	// YieldPct is output over input (nullable when input is zero)
	YieldPct *float64 `parquet:"yield_pct,optional,snappy"`

	// DowntimeHours is unplanned downtime for the day
	DowntimeHours float64 `parquet:"downtime_hours,snappy"`

	// EnergyKwh is energy consumed producing the output
	EnergyKwh float64 `parquet:"energy_kwh,snappy"`
}

// ShipmentRow represents one vw_shipments row for Parquet export.
type ShipmentRow struct {
	// OrderID is the unique order identifier
	OrderID string `parquet:"order_id,snappy"`

	// OrderDate is when the order was placed
	OrderDate string `parquet:"order_date,snappy"`

	// DeliveryDate is when the order arrived (empty when unresolved)
	DeliveryDate string `parquet:"delivery_date,snappy"`

	// CustomerName is the ordering customer
	CustomerName string `parquet:"customer_name,snappy"`

	// ProductName is the shipped product
	ProductName string `parquet:"product_name,snappy"`

	// QtyM3 is the shipped quantity
	QtyM3 float64 `parquet:"qty_m3,snappy"`

	// OnTimeFlag is 1 when delivered within the promised window
	OnTimeFlag int32 `parquet:"on_time_flag,snappy"`

	// InFullFlag is 1 when the order arrived complete
	InFullFlag int32 `parquet:"in_full_flag,snappy"`

	// OtifFlag is on_time_flag * in_full_flag
	OtifFlag int32 `parquet:"otif_flag,snappy"`

	// LeadTimeDays is order-to-delivery time (nullable)
	LeadTimeDays *float64 `parquet:"lead_time_days,optional,snappy"`
}

// FinanceRow represents one vw_finance row for Parquet export.
type FinanceRow struct {
	// MonthKey is the YYYYMM month
	MonthKey int32 `parquet:"month_key,snappy"`

	// RegionName is the sales region
	RegionName string `parquet:"region_name,snappy"`

	// ProductName is the product line
	ProductName string `parquet:"product_name,snappy"`

	// RevenueNZD is actual revenue for the month
	RevenueNZD float64 `parquet:"revenue_nzd,snappy"`

	// DirectCostNZD is direct cost of goods sold
	DirectCostNZD float64 `parquet:"direct_cost_nzd,snappy"`

	// OpexNZD is operating expense
	OpexNZD float64 `parquet:"opex_nzd,snappy"`

	// GrossMarginPct is (revenue - direct cost) / revenue (nullable)
	GrossMarginPct *float64 `parquet:"gross_margin_pct,optional,snappy"`

	// EbitdaMarginPct is (revenue - direct cost - opex) / revenue (nullable)
	EbitdaMarginPct *float64 `parquet:"ebitda_margin_pct,optional,snappy"`
}

// KpiRow represents one KPI snapshot row for Parquet export.
type KpiRow struct {
	// Domain is the business domain of the metric
	Domain string `parquet:"domain,snappy"`

	// Metric is the metric name
	Metric string `parquet:"metric,snappy"`

	// Current is the current window aggregate (nullable)
	Current *float64 `parquet:"current,optional,snappy"`

	// Baseline is the baseline window aggregate (nullable)
	Baseline *float64 `parquet:"baseline,optional,snappy"`

	// DeltaPct is the percent change vs the baseline (nullable)
	DeltaPct *float64 `parquet:"delta_pct,optional,snappy"`

	// Classification is improved, stable, degraded or unknown
	Classification string `parquet:"classification,snappy"`
}

// writeParquet writes a slice of rows to a Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteProductionViewParquet writes vw_production rows to a Parquet file.
func WriteProductionViewParquet(data []ProductionRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteShipmentViewParquet writes vw_shipments rows to a Parquet file.
func WriteShipmentViewParquet(data []ShipmentRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFinanceViewParquet writes vw_finance rows to a Parquet file.
func WriteFinanceViewParquet(data []FinanceRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteKpiRowsParquet writes KPI snapshot rows to a Parquet file.
func WriteKpiRowsParquet(data []KpiRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertProductionViewRows converts schema.ProductionViewRow to ProductionRow for Parquet export.
func ConvertProductionViewRows(records []schema.ProductionViewRow) []ProductionRow {
	result := make([]ProductionRow, len(records))
	for i, record := range records {
		result[i] = ProductionRow{
			Date:           record.Date,
			SiteName:       record.SiteName,
			ProductName:    record.ProductName,
			InputVolumeM3:  record.InputVolumeM3,
			OutputVolumeM3: record.OutputVolumeM3,
			YieldPct:       record.YieldPct,
			DowntimeHours:  record.DowntimeHours,
			EnergyKwh:      record.EnergyKwh,
		}
	}
	return result
}

// ConvertShipmentViewRows converts schema.ShipmentViewRow to ShipmentRow for Parquet export.
func ConvertShipmentViewRows(records []schema.ShipmentViewRow) []ShipmentRow {
	result := make([]ShipmentRow, len(records))
	for i, record := range records {
		result[i] = ShipmentRow{
			OrderID:      record.OrderID,
			OrderDate:    record.OrderDate,
			DeliveryDate: record.DeliveryDate,
			CustomerName: record.CustomerName,
			ProductName:  record.ProductName,
			QtyM3:        record.QtyM3,
			OnTimeFlag:   int32(record.OnTimeFlag),
			InFullFlag:   int32(record.InFullFlag),
			OtifFlag:     int32(record.OtifFlag),
			LeadTimeDays: record.LeadTimeDays,
		}
	}
	return result
}

// ConvertFinanceViewRows converts schema.FinanceViewRow to FinanceRow for Parquet export.
func ConvertFinanceViewRows(records []schema.FinanceViewRow) []FinanceRow {
	result := make([]FinanceRow, len(records))
	for i, record := range records {
		result[i] = FinanceRow{
			MonthKey:        int32(record.MonthKey),
			RegionName:      record.RegionName,
			ProductName:     record.ProductName,
			RevenueNZD:      record.RevenueNZD,
			DirectCostNZD:   record.DirectCostNZD,
			OpexNZD:         record.OpexNZD,
			GrossMarginPct:  record.GrossMarginPct,
			EbitdaMarginPct: record.EbitdaMarginPct,
		}
	}
	return result
}

// ConvertKpiRows converts schema.KpiRow to KpiRow for Parquet export.
func ConvertKpiRows(records []schema.KpiRow) []KpiRow {
	result := make([]KpiRow, len(records))
	for i, record := range records {
		result[i] = KpiRow{
			Domain:         string(record.Domain),
			Metric:         record.Metric,
			Current:        record.Current,
			Baseline:       record.Baseline,
			DeltaPct:       record.DeltaPct,
			Classification: string(record.Class),
		}
	}
	return result
}
