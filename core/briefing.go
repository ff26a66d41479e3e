package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openforest/millpulse/schema"
)

// Per-domain fallback sentences when a window has no rows. Rendered instead
// of an error so the rest of the briefing still comes out.
const (
	noOperationsData = "- No operations data available for this period."
	noShipmentData   = "- No shipment data available for this period."
	noFinanceData    = "- No finance data available for this period."
)

// ComposeBriefing builds the daily briefing markdown: for each domain, the
// latest observation window compared against a rolling baseline. runDate
// only labels the header; the comparison anchors on the latest data in each
// view. Composing twice from identical data yields byte-identical output.
func ComposeBriefing(ctx context.Context, wh Warehouse, pol *Policy, runDate time.Time) (string, error) {
	production, err := wh.Production(ctx)
	if err != nil {
		return "", fmt.Errorf("briefing: production query: %w", err)
	}
	shipments, err := wh.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("briefing: shipments query: %w", err)
	}
	finance, err := wh.Finance(ctx)
	if err != nil {
		return "", fmt.Errorf("briefing: finance query: %w", err)
	}

	lines := []string{
		"# Daily BI Briefing",
		fmt.Sprintf("_Generated on %s_", runDate.Format("2006-01-02")),
		"",
		"**Data as of:**",
	}
	if latest, ok := LatestPeriod(production); ok {
		lines = append(lines, fmt.Sprintf("- Operations: %s", latest.Format("2006-01-02")))
	}
	if latest, ok := LatestPeriod(shipments); ok {
		lines = append(lines, fmt.Sprintf("- Supply Chain: %s", latest.Format("2006-01-02")))
	}
	if latest, ok := LatestPeriod(finance); ok {
		lines = append(lines, fmt.Sprintf("- Finance: %s", latest.Format("January 2006")))
	}
	lines = append(lines, "")

	lines = append(lines, "## 1. Operations – Mills & Yield")
	lines = appendOrFallback(lines, operationsSummary(production, pol), noOperationsData)
	lines = append(lines, "")

	lines = append(lines, "## 2. Supply Chain – OTIF & Lead Time")
	lines = appendOrFallback(lines, shipmentsSummary(shipments, pol), noShipmentData)
	lines = append(lines, "")

	lines = append(lines, "## 3. Finance – Revenue & Margins")
	lines = appendOrFallback(lines, financeSummary(finance, pol), noFinanceData)
	lines = append(lines, "")

	return strings.Join(lines, "\n"), nil
}

// appendOrFallback appends the section lines, or the fallback sentence when
// the narrator produced nothing.
func appendOrFallback(lines, section []string, fallback string) []string {
	if len(section) > 0 {
		return append(lines, section...)
	}
	return append(lines, fallback)
}

// operationsSummary compares the latest single day against the trailing
// 7-day mean.
func operationsSummary(ds schema.Dataset, pol *Policy) []string {
	latest, ok := LatestPeriod(ds)
	if !ok {
		return nil
	}
	current := Aggregate(ds, pol.ProductionSpecs, schema.SinglePeriod(latest))
	baseline := Aggregate(ds, pol.ProductionSpecs, schema.Interval(
		latest.AddDate(0, 0, -ProductionBaselineDays),
		latest.AddDate(0, 0, -1),
	))
	return Narrate(current, baseline, pol.ProductionSpecs)
}

// shipmentsSummary compares the trailing 30 days against the 30 days
// immediately before them.
func shipmentsSummary(ds schema.Dataset, pol *Policy) []string {
	latest, ok := LatestPeriod(ds)
	if !ok {
		return nil
	}
	current := Aggregate(ds, pol.ShipmentSpecs, schema.Interval(
		latest.AddDate(0, 0, -ShipmentWindowDays),
		latest,
	))
	baseline := Aggregate(ds, pol.ShipmentSpecs, schema.Interval(
		latest.AddDate(0, 0, -2*ShipmentWindowDays),
		latest.AddDate(0, 0, -(ShipmentWindowDays+1)),
	))
	return Narrate(current, baseline, pol.ShipmentSpecs)
}

// financeSummary compares the latest month against the mean of the three
// preceding months. Revenue is stated unconditionally when present; the
// margin metrics go through classification.
func financeSummary(ds schema.Dataset, pol *Policy) []string {
	latest, ok := LatestPeriod(ds)
	if !ok {
		return nil
	}

	baselineMonths := make([]time.Time, 0, FinanceBaselineMonths)
	for i := 1; i <= FinanceBaselineMonths; i++ {
		baselineMonths = append(baselineMonths, latest.AddDate(0, -i, 0))
	}

	current := Aggregate(ds, pol.FinanceSpecs, schema.SinglePeriod(latest))
	baseline := Aggregate(ds, pol.FinanceSpecs, schema.PeriodSet(baselineMonths...))

	var lines []string
	if revenue := current["revenue_nzd"]; revenue != nil {
		lines = append(lines, fmt.Sprintf(
			"- For %s, total revenue is $%s.",
			latest.Format("January 2006"), FormatThousands(*revenue),
		))
	}
	return append(lines, Narrate(current, baseline, pol.FinanceSpecs)...)
}
