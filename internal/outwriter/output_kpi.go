package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/internal/parquet"
	"github.com/openforest/millpulse/schema"
)

// WriteKpiRows outputs the KPI snapshot, dispatching based on the output format configured.
func WriteKpiRows(rows []schema.KpiRow, cfg *contract.Config) error {
	_, fmtPtr := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeKpiJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeKpiCSVResults(rows, cfg, fmtPtr); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteKpiRowsParquet(parquet.ConvertKpiRows(rows), cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKpiTable(rows, cfg, fmtPtr, w)
		}, "Wrote table")
	}
	return nil
}

// writeKpiJSONResults handles opening the file and calling the JSON writer.
func writeKpiJSONResults(rows []schema.KpiRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForKpi(w, rows)
	}, "Wrote JSON")
}

// writeKpiCSVResults handles opening the file and calling the CSV writer.
func writeKpiCSVResults(rows []schema.KpiRow, cfg *contract.Config, fmtPtr func(*float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForKpi(csvWriter, rows, cfg, fmtPtr)
	}, "Wrote CSV")
}

// writeKpiTable generates and writes the human-readable table.
func writeKpiTable(rows []schema.KpiRow, cfg *contract.Config, fmtPtr func(*float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Domain", "Metric", "Current", "Baseline", "Delta", "Label"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCell := getMaxTableCellWidth(cfg, 3)

	var data [][]string
	domains := make(map[schema.Domain]struct{})
	for _, r := range rows {
		domains[r.Domain] = struct{}{}
		data = append(data, []string{
			string(r.Domain),
			truncateCell(r.Metric, maxCell),
			fmtPtr(r.Current),
			fmtPtr(r.Baseline),
			formatDeltaCell(r.DeltaPct, cfg.Precision),
			classLabel(r.Class, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d metrics across %d domains\n", len(rows), len(domains)); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForKpi writes the KPI snapshot in CSV format.
func writeCSVResultsForKpi(w *csv.Writer, rows []schema.KpiRow, cfg *contract.Config, fmtPtr func(*float64) string) error {
	header := []string{
		"domain",
		"metric",
		"current",
		"baseline",
		"delta_pct",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			string(r.Domain),
			r.Metric,
			fmtPtr(r.Current),
			fmtPtr(r.Baseline),
			formatDeltaCell(r.DeltaPct, cfg.Precision),
			contract.GetPlainLabel(r.Class),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForKpi writes the KPI snapshot in JSON format.
func writeJSONResultsForKpi(w io.Writer, rows []schema.KpiRow) error {
	// Prepare the data structure for JSON with the label added
	type JSONKpiRow struct {
		Label string `json:"label"`
		schema.KpiRow
	}

	output := make([]JSONKpiRow, len(rows))
	for i, r := range rows {
		output[i] = JSONKpiRow{
			Label:  contract.GetPlainLabel(r.Class),
			KpiRow: r,
		}
	}

	return writeJSON(w, output)
}
