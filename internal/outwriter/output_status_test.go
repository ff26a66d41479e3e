package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

func statusFixture() schema.WarehouseStatus {
	return schema.WarehouseStatus{
		Backend:    "sqlite",
		Connected:  true,
		ViewsReady: true,
		TotalRows:  1337,
		TableRows: map[string]int64{
			"fact_production": 1000,
			"dim_date":        337,
		},
	}
}

// TestWriteWarehouseStatusText verifies the plain text layout with sorted
// table names.
func TestWriteWarehouseStatusText(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "status.txt")
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: outFile}

	err := WriteWarehouseStatus(statusFixture(), cfg)
	require.NoError(t, err)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "Warehouse backend: sqlite")
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "Views ready: true")
	assert.Contains(t, out, "Total rows: 1337")
	// Table names come out sorted.
	assert.Less(t, strings.Index(out, "dim_date"), strings.Index(out, "fact_production"))
}

// TestWriteWarehouseStatusJSON verifies the JSON output round trips.
func TestWriteWarehouseStatusJSON(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "status.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outFile}

	err := WriteWarehouseStatus(statusFixture(), cfg)
	require.NoError(t, err)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded schema.WarehouseStatus
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, statusFixture(), decoded)
}
