package parquet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openforest/millpulse/schema"
)

func ptr(v float64) *float64 { return &v }

// TestConvertProductionViewRows verifies the field mapping including the
// nullable yield column.
func TestConvertProductionViewRows(t *testing.T) {
	records := []schema.ProductionViewRow{
		{
			Date:           "2025-06-30",
			SiteName:       "Kaituna",
			ProductName:    "Structural Timber",
			InputVolumeM3:  1000,
			OutputVolumeM3: 900,
			YieldPct:       ptr(0.90),
			DowntimeHours:  1.5,
			EnergyKwh:      4200,
		},
		{Date: "2025-07-01", SiteName: "Napier", ProductName: "Export Log"},
	}

	result := ConvertProductionViewRows(records)

	require.Len(t, result, 2)
	assert.Equal(t, "Kaituna", result[0].SiteName)
	assert.Equal(t, 900.0, result[0].OutputVolumeM3)
	require.NotNil(t, result[0].YieldPct)
	assert.Equal(t, 0.90, *result[0].YieldPct)
	assert.Nil(t, result[1].YieldPct)
}

// TestConvertShipmentViewRows verifies the flag columns narrow to int32.
func TestConvertShipmentViewRows(t *testing.T) {
	records := []schema.ShipmentViewRow{
		{
			OrderID:      "ORD100000",
			OrderDate:    "2025-06-01",
			DeliveryDate: "2025-06-05",
			CustomerName: "NZ Timber Co",
			ProductName:  "Structural Timber",
			QtyM3:        120,
			OnTimeFlag:   1,
			InFullFlag:   0,
			OtifFlag:     0,
			LeadTimeDays: ptr(4.0),
		},
	}

	result := ConvertShipmentViewRows(records)

	require.Len(t, result, 1)
	assert.Equal(t, int32(1), result[0].OnTimeFlag)
	assert.Equal(t, int32(0), result[0].InFullFlag)
	assert.Equal(t, int32(0), result[0].OtifFlag)
	require.NotNil(t, result[0].LeadTimeDays)
	assert.Equal(t, 4.0, *result[0].LeadTimeDays)
}

// TestConvertFinanceViewRows verifies the month key narrows to int32.
func TestConvertFinanceViewRows(t *testing.T) {
	records := []schema.FinanceViewRow{
		{
			MonthKey:        202506,
			RegionName:      "North Island",
			ProductName:     "Structural Timber",
			RevenueNZD:      500000,
			DirectCostNZD:   325000,
			OpexNZD:         50000,
			GrossMarginPct:  ptr(0.35),
			EbitdaMarginPct: nil,
		},
	}

	result := ConvertFinanceViewRows(records)

	require.Len(t, result, 1)
	assert.Equal(t, int32(202506), result[0].MonthKey)
	assert.Equal(t, 500000.0, result[0].RevenueNZD)
	assert.Nil(t, result[0].EbitdaMarginPct)
}

// TestConvertKpiRows verifies domain and classification become strings.
func TestConvertKpiRows(t *testing.T) {
	records := []schema.KpiRow{
		{
			Domain:   schema.ProductionDomain,
			Metric:   schema.YieldMetric,
			Current:  ptr(0.90),
			Baseline: ptr(0.80),
			DeltaPct: ptr(12.5),
			Class:    schema.ImprovedChange,
		},
	}

	result := ConvertKpiRows(records)

	require.Len(t, result, 1)
	assert.Equal(t, string(schema.ProductionDomain), result[0].Domain)
	assert.Equal(t, string(schema.ImprovedChange), result[0].Classification)
	assert.Equal(t, 12.5, *result[0].DeltaPct)
}

// TestWriteKpiRowsParquetRoundTrip verifies rows survive a write and read back.
func TestWriteKpiRowsParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "kpi.parquet")
	rows := []KpiRow{
		{Domain: "production", Metric: "yield", Current: ptr(0.90), Baseline: ptr(0.80), DeltaPct: ptr(12.5), Classification: "improved"},
		{Domain: "finance", Metric: "revenue", Current: ptr(500000), Classification: "unknown"},
	}

	require.NoError(t, WriteKpiRowsParquet(rows, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	require.NoError(t, err)

	reader := parquet.NewGenericReader[KpiRow](file)
	defer func() { _ = reader.Close() }()

	got := make([]KpiRow, 2)
	n, _ := reader.Read(got)
	require.Equal(t, 2, n)
	assert.Equal(t, rows, got)
	assert.Greater(t, stat.Size(), int64(0))
}

// TestWriteParquetBadPath verifies an unwritable path errors cleanly.
func TestWriteParquetBadPath(t *testing.T) {
	err := WriteProductionViewParquet([]ProductionRow{}, filepath.Join(t.TempDir(), "missing", "out.parquet"))

	assert.Error(t, err)
}
