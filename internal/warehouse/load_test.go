package warehouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openforest/millpulse/internal/seed"
	"github.com/openforest/millpulse/schema"
)

// testBundle generates a small deterministic dataset for load tests.
func testBundle() *schema.SeedBundle {
	return seed.Generate(seed.Options{
		Start:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		Seed:      1,
		Shipments: 40,
	})
}

// loadedStore opens an in-memory store preloaded with the test bundle.
func loadedStore(t *testing.T) (*Store, *schema.SeedBundle) {
	t.Helper()

	store := newTestStore(t)
	bundle := testBundle()
	require.NoError(t, store.Load(context.Background(), bundle))

	return store, bundle
}

// TestLoadRowCounts verifies every table receives the bundle's rows.
func TestLoadRowCounts(t *testing.T) {
	store, bundle := loadedStore(t)

	status, err := store.GetStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(len(bundle.Dates)), status.TableRows[dimDateTable])
	assert.Equal(t, int64(len(bundle.Regions)), status.TableRows[dimRegionTable])
	assert.Equal(t, int64(len(bundle.Sites)), status.TableRows[dimSiteTable])
	assert.Equal(t, int64(len(bundle.Products)), status.TableRows[dimProductTable])
	assert.Equal(t, int64(len(bundle.Customers)), status.TableRows[dimCustomerTable])
	assert.Equal(t, int64(len(bundle.Production)), status.TableRows[factProductionTable])
	assert.Equal(t, int64(len(bundle.Shipments)), status.TableRows[factShipmentTable])
	assert.Equal(t, int64(len(bundle.Finance)), status.TableRows[factFinanceTable])

	var sum int64
	for _, n := range status.TableRows {
		sum += n
	}
	assert.Equal(t, sum, status.TotalRows)
}

// TestLoadReplacesContents verifies reloading does not duplicate rows.
func TestLoadReplacesContents(t *testing.T) {
	store, bundle := loadedStore(t)

	require.NoError(t, store.Load(context.Background(), bundle))

	status, err := store.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(bundle.Production)), status.TableRows[factProductionTable])
	assert.Equal(t, int64(len(bundle.Shipments)), status.TableRows[factShipmentTable])
}

// TestLoadKeepsReports verifies a reload leaves persisted reports alone.
func TestLoadKeepsReports(t *testing.T) {
	store, bundle := loadedStore(t)

	require.NoError(t, store.SaveReport(context.Background(), "briefing", "2025-01-31", "# Daily BI Briefing"))
	require.NoError(t, store.Load(context.Background(), bundle))

	records, err := store.ListReports(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// TestFormatDate verifies the per-backend date insert value.
func TestFormatDate(t *testing.T) {
	day := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)

	sqlite := &Store{backend: schema.SQLiteBackend}
	assert.Equal(t, "2025-01-02", sqlite.formatDate(day))

	pg := &Store{backend: schema.PostgreSQLBackend}
	assert.Equal(t, day, pg.formatDate(day))
}

// TestFormatBool verifies the per-backend boolean insert value.
func TestFormatBool(t *testing.T) {
	sqlite := &Store{backend: schema.SQLiteBackend}
	assert.Equal(t, 1, sqlite.formatBool(true))
	assert.Equal(t, 0, sqlite.formatBool(false))

	mysql := &Store{backend: schema.MySQLBackend}
	assert.Equal(t, true, mysql.formatBool(true))
}
