package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/internal/outwriter"
	"github.com/openforest/millpulse/internal/seed"
	"github.com/openforest/millpulse/schema"
)

// buildPolicy assembles the metric policy with configured edge overrides applied.
func buildPolicy(cfg *contract.Config) *Policy {
	pol := DefaultPolicy()
	pol.ApplyEdges(cfg.Edges)
	return pol
}

// ExecuteBriefing renders the daily BI briefing and writes it to the
// configured destination. It serves as the main entry point for the
// 'briefing' command.
func ExecuteBriefing(ctx context.Context, cfg *contract.Config, wh contract.WarehouseClient) error {
	report, err := ComposeBriefing(ctx, wh, buildPolicy(cfg), cfg.RunDate)
	if err != nil {
		return err
	}
	if cfg.Persist {
		if err := wh.SaveReport(ctx, "briefing", cfg.RunDate.Format(contract.DateFormat), report); err != nil {
			return fmt.Errorf("failed to persist briefing: %w", err)
		}
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg)
}

// ExecuteCopilot renders the diagnostic and predictive copilot report and
// writes it to the configured destination. It serves as the main entry
// point for the 'copilot' command.
func ExecuteCopilot(ctx context.Context, cfg *contract.Config, wh contract.WarehouseClient) error {
	report, err := ComposeCopilot(ctx, wh, buildPolicy(cfg))
	if err != nil {
		return err
	}
	if cfg.Persist {
		if err := wh.SaveReport(ctx, "copilot", cfg.RunDate.Format(contract.DateFormat), report); err != nil {
			return fmt.Errorf("failed to persist copilot report: %w", err)
		}
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg)
}

// ExecuteKpi builds the current-vs-baseline KPI comparison for every metric
// and writes it to the configured destination.
func ExecuteKpi(ctx context.Context, cfg *contract.Config, wh contract.WarehouseClient) error {
	rows, err := BuildKpiRows(ctx, wh, buildPolicy(cfg))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteKpi(rows, cfg)
}

// ExecuteSeed regenerates the synthetic dataset and replaces the warehouse
// contents with it.
func ExecuteSeed(ctx context.Context, cfg *contract.Config, wh contract.WarehouseClient) error {
	start := time.Now()

	bundle := seed.Generate(seed.Options{
		Start:     cfg.SeedStart,
		End:       cfg.SeedEnd,
		Seed:      cfg.Seed,
		Shipments: cfg.SeedShipments,
	})
	if err := wh.Load(ctx, bundle); err != nil {
		return err
	}

	fmt.Printf("🌱 Seeded %d production, %d shipment, %d finance rows in %v\n",
		len(bundle.Production), len(bundle.Shipments), len(bundle.Finance),
		time.Since(start).Round(time.Millisecond))
	return nil
}

// ExecuteExport reads one semantic view in full and writes it to the
// configured destination.
func ExecuteExport(ctx context.Context, cfg *contract.Config, wh contract.WarehouseClient) error {
	if cfg.View == "" {
		return errors.New("--view is required")
	}

	ow := outwriter.NewOutWriter()
	switch cfg.View {
	case schema.ProductionView:
		rows, err := wh.ProductionRows(ctx)
		if err != nil {
			return err
		}
		return ow.WriteProductionView(rows, cfg)
	case schema.ShipmentsView:
		rows, err := wh.ShipmentRows(ctx)
		if err != nil {
			return err
		}
		return ow.WriteShipmentsView(rows, cfg)
	case schema.FinanceView:
		rows, err := wh.FinanceRows(ctx)
		if err != nil {
			return err
		}
		return ow.WriteFinanceView(rows, cfg)
	default:
		return fmt.Errorf("unsupported view: %s", cfg.View)
	}
}

// ExecuteWarehouseStatus reports backend details and per-table row counts.
func ExecuteWarehouseStatus(ctx context.Context, cfg *contract.Config, wh contract.WarehouseClient) error {
	status, err := wh.GetStatus(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStatus(status, cfg)
}
