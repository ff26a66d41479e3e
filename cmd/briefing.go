package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
)

// briefingCmd renders the daily BI briefing.
var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Generate the daily BI briefing in Markdown.",
	Long: `Compose the daily business briefing from the warehouse views.

The briefing covers three sections, each comparing the latest period
against its baseline:
- Operations: yield, output volume and downtime for the latest day
- Supply chain: OTIF rate and lead time over the trailing 30 days
- Finance: revenue and margins for the latest month

Sections degrade gracefully: a metric that cannot be computed is simply
left out, and an empty section falls back to a placeholder line.

Examples:
  # Today's briefing on stdout
  millpulse briefing

  # Re-run a past day and keep a copy in the warehouse
  millpulse briefing --run-date 2025-06-30 --persist

  # Write the briefing to a file
  millpulse briefing --output-file briefing.md`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBriefing(rootCtx, cfg, warehouseClient); err != nil {
			contract.LogFatal("Cannot generate briefing", err)
		}
	},
}
