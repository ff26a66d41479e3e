package warehouse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProductionDataset verifies the report-facing production records.
func TestProductionDataset(t *testing.T) {
	store, bundle := loadedStore(t)

	ds, err := store.Production(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, len(bundle.Production))

	for _, rec := range ds {
		assert.Equal(t, time.UTC, rec.Period.Location())
		assert.Equal(t, 0, rec.Period.Hour())
		assert.Equal(t, 2025, rec.Period.Year())
		assert.Equal(t, time.January, rec.Period.Month())
		assert.NotEmpty(t, rec.Entity)

		require.Contains(t, rec.Values, "yield_pct")
		require.Contains(t, rec.Values, "output_volume_m3")
		require.Contains(t, rec.Values, "downtime_hours")

		// Input volumes are always positive, so yield is always computed.
		require.NotNil(t, rec.Values["yield_pct"])
		assert.Greater(t, *rec.Values["yield_pct"], 0.5)
		assert.Less(t, *rec.Values["yield_pct"], 1.0)
	}
}

// TestShipmentsDataset verifies the report-facing shipment records.
func TestShipmentsDataset(t *testing.T) {
	store, bundle := loadedStore(t)

	ds, err := store.Shipments(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, len(bundle.Shipments))

	for _, rec := range ds {
		assert.False(t, rec.Period.IsZero())
		assert.NotEmpty(t, rec.Entity)

		otif := rec.Values["otif_flag"]
		require.NotNil(t, otif)
		assert.Contains(t, []float64{0, 1}, *otif)

		// Deliveries past the calendar end leave lead time unknown.
		if lead := rec.Values["lead_time_days"]; lead != nil {
			assert.Greater(t, *lead, 0.0)
		}
	}
}

// TestFinanceDataset verifies the report-facing finance records.
func TestFinanceDataset(t *testing.T) {
	store, bundle := loadedStore(t)

	ds, err := store.Finance(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, len(bundle.Finance))

	for _, rec := range ds {
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), rec.Period)
		assert.NotEmpty(t, rec.Entity)

		require.NotNil(t, rec.Values["revenue_nzd"])
		require.NotNil(t, rec.Values["gross_margin_pct"])
		require.NotNil(t, rec.Values["ebitda_margin_pct"])

		// Gross margin includes opex that EBITDA margin subtracts.
		assert.Greater(t, *rec.Values["gross_margin_pct"], *rec.Values["ebitda_margin_pct"])
	}
}

// TestProductionRows verifies the full export surface of vw_production.
func TestProductionRows(t *testing.T) {
	store, bundle := loadedStore(t)

	rows, err := store.ProductionRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, len(bundle.Production))

	for _, row := range rows {
		_, err := time.Parse("2006-01-02", row.Date)
		require.NoError(t, err)
		assert.NotEmpty(t, row.SiteName)
		assert.NotEmpty(t, row.ProductName)
		assert.Greater(t, row.InputVolumeM3, 0.0)
		require.NotNil(t, row.YieldPct)
		assert.InDelta(t, row.OutputVolumeM3/row.InputVolumeM3, *row.YieldPct, 0.0001)
	}
}

// TestShipmentRows verifies the full export surface of vw_shipments.
func TestShipmentRows(t *testing.T) {
	store, bundle := loadedStore(t)

	rows, err := store.ShipmentRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, len(bundle.Shipments))

	for _, row := range rows {
		assert.True(t, strings.HasPrefix(row.OrderID, "ORD"))
		_, err := time.Parse("2006-01-02", row.OrderDate)
		require.NoError(t, err)

		assert.Contains(t, []int{0, 1}, row.OnTimeFlag)
		assert.Contains(t, []int{0, 1}, row.InFullFlag)
		assert.Equal(t, row.OnTimeFlag*row.InFullFlag, row.OtifFlag)

		// Delivery date and lead time are either both present or both absent.
		if row.DeliveryDate == "" {
			assert.Nil(t, row.LeadTimeDays)
		} else {
			require.NotNil(t, row.LeadTimeDays)
			assert.Greater(t, *row.LeadTimeDays, 0.0)
		}
	}
}

// TestFinanceRows verifies the full export surface of vw_finance.
func TestFinanceRows(t *testing.T) {
	store, bundle := loadedStore(t)

	rows, err := store.FinanceRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, len(bundle.Finance))

	for _, row := range rows {
		assert.Equal(t, 202501, row.MonthKey)
		assert.NotEmpty(t, row.RegionName)
		assert.NotEmpty(t, row.ProductName)

		require.NotNil(t, row.GrossMarginPct)
		assert.InDelta(t, (row.RevenueNZD-row.DirectCostNZD)/row.RevenueNZD, *row.GrossMarginPct, 0.0001)
	}
}

// TestQueriesOnEmptyWarehouse verifies a fresh store returns empty datasets
// rather than errors.
func TestQueriesOnEmptyWarehouse(t *testing.T) {
	store := newTestStore(t)

	ds, err := store.Production(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds)

	ds, err = store.Shipments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds)

	ds, err = store.Finance(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds)
}
