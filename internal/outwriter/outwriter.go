// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the report logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a rendered markdown report to stdout or the output file.
func (ow *OutWriter) WriteReport(report string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := io.WriteString(w, report)
		return err
	}, "Wrote report")
}

// WriteKpi prints the KPI snapshot rows using the configured output format.
func (ow *OutWriter) WriteKpi(rows []schema.KpiRow, cfg *contract.Config) error {
	return WriteKpiRows(rows, cfg)
}

// WriteProductionView prints vw_production rows using the configured output format.
func (ow *OutWriter) WriteProductionView(rows []schema.ProductionViewRow, cfg *contract.Config) error {
	return WriteProductionViewRows(rows, cfg)
}

// WriteShipmentsView prints vw_shipments rows using the configured output format.
func (ow *OutWriter) WriteShipmentsView(rows []schema.ShipmentViewRow, cfg *contract.Config) error {
	return WriteShipmentViewRows(rows, cfg)
}

// WriteFinanceView prints vw_finance rows using the configured output format.
func (ow *OutWriter) WriteFinanceView(rows []schema.FinanceViewRow, cfg *contract.Config) error {
	return WriteFinanceViewRows(rows, cfg)
}

// WriteStatus prints the warehouse status using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.WarehouseStatus, cfg *contract.Config) error {
	return WriteWarehouseStatus(status, cfg)
}

// getTerminalWidth returns the effective terminal width, honoring the
// config override and falling back to a conservative default.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// truncateCell truncates a table cell to a maximum width with an ellipsis suffix.
func truncateCell(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// getMaxTableCellWidth calculates the maximum width for name cells in table
// output based on terminal width and the fixed numeric columns.
func getMaxTableCellWidth(cfg *contract.Config, fixedColumns int) int {
	// Reserve space for numeric columns plus borders and padding
	available := getTerminalWidth(cfg) - fixedColumns*12 - 10
	if available < 15 {
		return 15
	}
	if available > 40 {
		return 40
	}
	return available
}

// classLabel picks the colored or plain classification label per config.
func classLabel(class schema.Classification, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(class)
	}
	return contract.GetPlainLabel(class)
}

// formatDeltaCell renders the percent change column, with sign.
func formatDeltaCell(delta *float64, precision int) string {
	if delta == nil {
		return "-"
	}
	return fmt.Sprintf("%+.*f%%", precision, *delta)
}
