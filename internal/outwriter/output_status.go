package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

// WriteWarehouseStatus outputs the warehouse status, dispatching based on the output format configured.
func WriteWarehouseStatus(status schema.WarehouseStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Warehouse backend: %s\n", status.Backend)
		fmt.Fprintf(w, "Connected: %t\n", status.Connected)
		fmt.Fprintf(w, "Views ready: %t\n", status.ViewsReady)
		fmt.Fprintf(w, "Total rows: %d\n", status.TotalRows)

		tables := make([]string, 0, len(status.TableRows))
		for table := range status.TableRows {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			fmt.Fprintf(w, "  %-20s %d\n", table, status.TableRows[table])
		}
		return nil
	}, "Wrote status")
}
