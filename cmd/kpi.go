package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
)

// kpiCmd shows the current-vs-baseline KPI comparison.
var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Show every KPI with its baseline comparison and label.",
	Long: `Compute the full KPI snapshot across production, shipments and finance.

Each row shows the current window aggregate, the baseline aggregate, the
percent delta and a classification label (improved, stable, degraded or
unknown). Direction-aware edges decide the label: a drop in downtime is
an improvement, a drop in yield is not.

Examples:
  # Table on the terminal with colored labels
  millpulse kpi

  # Machine-readable snapshot for dashboards
  millpulse kpi --output json

  # Columnar export for DuckDB or pandas
  millpulse kpi --output parquet --output-file kpi.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteKpi(rootCtx, cfg, warehouseClient); err != nil {
			contract.LogFatal("Cannot build KPI snapshot", err)
		}
	},
}
