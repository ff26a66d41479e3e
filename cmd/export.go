package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
)

// exportCmd dumps one semantic view in full.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a semantic view as table, CSV, JSON or Parquet.",
	Long: `Read one of the warehouse's semantic views in full and write it out.

Available views:
- vw_production: daily mill output with yield and downtime
- vw_shipments: per-order delivery performance with OTIF and lead time
- vw_finance: monthly revenue and margins by region and product

Parquet output enables fast downstream analysis:
- Query with DuckDB, Apache Spark or pandas
- Import directly into BI tools (Tableau, Metabase, etc.)

Examples:
  # Inspect production on the terminal
  millpulse export --view vw_production

  # Ship the finance view to a dashboard
  millpulse export --view vw_finance --output json

  # Columnar export for analysts
  millpulse export --view vw_shipments --output parquet --output-file shipments.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, warehouseClient); err != nil {
			contract.LogFatal("Cannot export view", err)
		}
	},
}
