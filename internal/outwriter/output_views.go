package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/internal/parquet"
	"github.com/openforest/millpulse/schema"
)

// WriteProductionViewRows outputs vw_production, dispatching based on the output format configured.
func WriteProductionViewRows(rows []schema.ProductionViewRow, cfg *contract.Config) error {
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"date", "site_name", "product_name", "input_volume_m3", "output_volume_m3", "yield_pct", "downtime_hours", "energy_kwh"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					rec := []string{
						r.Date, r.SiteName, r.ProductName,
						fmtFloat(r.InputVolumeM3), fmtFloat(r.OutputVolumeM3),
						fmtPtr(r.YieldPct), fmtFloat(r.DowntimeHours), fmtFloat(r.EnergyKwh),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteProductionViewParquet(parquet.ConvertProductionViewRows(rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProductionTable(rows, cfg, fmtFloat, fmtPtr, w)
		}, "Wrote table")
	}
}

func writeProductionTable(rows []schema.ProductionViewRow, cfg *contract.Config, fmtFloat func(float64) string, fmtPtr func(*float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Date", "Mill", "Product", "Input", "Output", "Yield", "Downtime"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCell := getMaxTableCellWidth(cfg, 4)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Date,
			truncateCell(r.SiteName, maxCell),
			truncateCell(r.ProductName, maxCell),
			fmtFloat(r.InputVolumeM3),
			fmtFloat(r.OutputVolumeM3),
			fmtPtr(r.YieldPct),
			fmtFloat(r.DowntimeHours),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d production rows\n", len(rows))
	return err
}

// WriteShipmentViewRows outputs vw_shipments, dispatching based on the output format configured.
func WriteShipmentViewRows(rows []schema.ShipmentViewRow, cfg *contract.Config) error {
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"order_id", "order_date", "delivery_date", "customer_name", "product_name", "qty_m3", "on_time_flag", "in_full_flag", "otif_flag", "lead_time_days"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					rec := []string{
						r.OrderID, r.OrderDate, r.DeliveryDate, r.CustomerName, r.ProductName,
						fmtFloat(r.QtyM3),
						strconv.Itoa(r.OnTimeFlag), strconv.Itoa(r.InFullFlag), strconv.Itoa(r.OtifFlag),
						fmtPtr(r.LeadTimeDays),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteShipmentViewParquet(parquet.ConvertShipmentViewRows(rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeShipmentTable(rows, cfg, fmtFloat, fmtPtr, w)
		}, "Wrote table")
	}
}

func writeShipmentTable(rows []schema.ShipmentViewRow, cfg *contract.Config, fmtFloat func(float64) string, fmtPtr func(*float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Order", "Ordered", "Delivered", "Customer", "Qty", "OTIF", "Lead"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCell := getMaxTableCellWidth(cfg, 3)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.OrderID,
			r.OrderDate,
			r.DeliveryDate,
			truncateCell(r.CustomerName, maxCell),
			fmtFloat(r.QtyM3),
			strconv.Itoa(r.OtifFlag),
			fmtPtr(r.LeadTimeDays),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d shipment rows\n", len(rows))
	return err
}

// WriteFinanceViewRows outputs vw_finance, dispatching based on the output format configured.
func WriteFinanceViewRows(rows []schema.FinanceViewRow, cfg *contract.Config) error {
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"month_key", "region_name", "product_name", "revenue_nzd", "direct_cost_nzd", "opex_nzd", "gross_margin_pct", "ebitda_margin_pct"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					rec := []string{
						strconv.Itoa(r.MonthKey), r.RegionName, r.ProductName,
						fmtFloat(r.RevenueNZD), fmtFloat(r.DirectCostNZD), fmtFloat(r.OpexNZD),
						fmtPtr(r.GrossMarginPct), fmtPtr(r.EbitdaMarginPct),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteFinanceViewParquet(parquet.ConvertFinanceViewRows(rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFinanceTable(rows, cfg, fmtFloat, fmtPtr, w)
		}, "Wrote table")
	}
}

func writeFinanceTable(rows []schema.FinanceViewRow, cfg *contract.Config, fmtFloat func(float64) string, fmtPtr func(*float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Month", "Region", "Product", "Revenue", "Gross Margin", "EBITDA Margin"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCell := getMaxTableCellWidth(cfg, 3)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.MonthKey),
			truncateCell(r.RegionName, maxCell),
			truncateCell(r.ProductName, maxCell),
			fmtFloat(r.RevenueNZD),
			fmtPtr(r.GrossMarginPct),
			fmtPtr(r.EbitdaMarginPct),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d finance rows\n", len(rows))
	return err
}
