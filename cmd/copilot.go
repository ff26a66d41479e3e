package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
)

// copilotCmd renders the diagnostic and predictive copilot report.
var copilotCmd = &cobra.Command{
	Use:   "copilot",
	Short: "Generate the AI copilot report with diagnostics and forecasts.",
	Long: `Compose the copilot report from the warehouse views.

The report has three parts:
- Diagnostic: which mill, customer and region drive each domain's numbers
- Predictive: linear trend forecasts for yield, OTIF and revenue
- Prescriptive: standing recommendations for the operations team

Forecasts need at least five historical points; with less history the
report says so instead of guessing.

Examples:
  # Print the copilot report
  millpulse copilot

  # Keep a copy in the warehouse for later review
  millpulse copilot --persist

  # Export as a Markdown file
  millpulse copilot --output-file copilot.md`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCopilot(rootCtx, cfg, warehouseClient); err != nil {
			contract.LogFatal("Cannot generate copilot report", err)
		}
	},
}
