package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
)

// seedCmd regenerates the synthetic warehouse dataset.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate the synthetic dataset and load it into the warehouse.",
	Long: `Regenerate the deterministic synthetic dataset and replace the
warehouse contents with it.

The generator produces a small star schema: date, region, site, product
and customer dimensions plus production, shipment and finance facts.
Output follows seasonal patterns (winter slowdowns, summer peaks) with
occasional downtime spikes, so reports have something to say.

The same seed always produces the same dataset. Stored reports survive
a reseed; only dimensions and facts are replaced.

Examples:
  # Default two-year dataset
  millpulse seed

  # A different world with more orders
  millpulse seed --seed 7 --shipments 10000

  # A shorter history window
  millpulse seed --seed-start 2025-01-01 --seed-end 2025-06-30`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeed(rootCtx, cfg, warehouseClient); err != nil {
			contract.LogFatal("Cannot seed warehouse", err)
		}
	},
}
