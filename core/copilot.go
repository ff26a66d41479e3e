package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/openforest/millpulse/schema"
)

// ComposeCopilot builds the copilot report: a diagnostic section ranking
// entities inside trailing windows, a predictive section extrapolating
// trend lines, and a static prescriptive section. Each sentence degrades
// independently to a fallback when its data is missing.
func ComposeCopilot(ctx context.Context, wh Warehouse, pol *Policy) (string, error) {
	production, err := wh.Production(ctx)
	if err != nil {
		return "", fmt.Errorf("copilot: production query: %w", err)
	}
	shipments, err := wh.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("copilot: shipments query: %w", err)
	}
	finance, err := wh.Finance(ctx)
	if err != nil {
		return "", fmt.Errorf("copilot: finance query: %w", err)
	}

	lines := []string{
		"## AI Copilot – Diagnostic, Predictive, Prescriptive",
		"",
		"### 1. Diagnostic – What is driving performance?",
		diagnosticOperations(production),
		diagnosticShipments(shipments),
		diagnosticFinance(finance),
		"",
		"### 2. Predictive – Where are we heading?",
		predictiveOperations(production),
		predictiveShipments(shipments),
		predictiveFinance(finance),
		"",
		"### 3. Prescriptive – What should we do next?",
		strings.Join(prescriptiveActions, "\n"),
		"",
	}

	return strings.Join(lines, "\n"), nil
}

// trailingDays is the diagnostic window anchored on the latest period.
func trailingDays(latest schema.Dataset, days int) (schema.Window, bool) {
	end, ok := LatestPeriod(latest)
	if !ok {
		return schema.Window{}, false
	}
	return schema.Interval(end.AddDate(0, 0, -days), end), true
}

func diagnosticOperations(ds schema.Dataset) string {
	w, ok := trailingDays(ds, DiagnosticDays)
	if !ok {
		return "No recent operations data."
	}
	yieldRank, ok := RankEntities(ds, "yield_pct", w, true)
	if !ok {
		return "No recent operations data."
	}
	downtimeRank, ok := RankEntities(ds, "downtime_hours", w, false)
	if !ok {
		return "No recent operations data."
	}

	return fmt.Sprintf(
		"- Operations: Mill **%s** has the lowest yield (%.1f%% vs fleet avg %.1f%%) in the last %d days.\n"+
			"- Downtime: Mill **%s** carries the highest downtime (%.2f hrs/day vs avg %.2f hrs).",
		yieldRank.Worst.Entity, yieldRank.Worst.Value*100, yieldRank.CohortMean*100, DiagnosticDays,
		downtimeRank.Worst.Entity, downtimeRank.Worst.Value, downtimeRank.CohortMean,
	)
}

func diagnosticShipments(ds schema.Dataset) string {
	w, ok := trailingDays(ds, DiagnosticDays)
	if !ok {
		return "No recent shipment data."
	}
	otifRank, ok := RankEntities(ds, "otif_flag", w, true)
	if !ok {
		return "No recent shipment data."
	}

	return fmt.Sprintf(
		"- Supply chain: Customer **%s** has the weakest OTIF (%.1f%% vs overall %.1f%% in the last %d days).",
		otifRank.Worst.Entity, otifRank.Worst.Value*100, otifRank.CohortMean*100, DiagnosticDays,
	)
}

func diagnosticFinance(ds schema.Dataset) string {
	end, ok := LatestPeriod(ds)
	if !ok {
		return "No recent finance data."
	}
	w := schema.Interval(end.AddDate(0, -DiagnosticMonths, 0), end)
	marginRank, ok := RankEntities(ds, "gross_margin_pct", w, true)
	if !ok {
		return "No recent finance data."
	}

	return fmt.Sprintf(
		"- Finance: Region **%s** has the weakest gross margin (%.1f%% vs overall %.1f%% over the last %d months).",
		marginRank.Worst.Entity, marginRank.Worst.Value*100, marginRank.CohortMean*100, DiagnosticMonths,
	)
}

func predictiveOperations(ds schema.Dataset) string {
	series := SeriesByPeriod(ds, "yield_pct")
	if len(series) == 0 {
		return "No data to forecast operations."
	}
	forecast, err := Forecast(series, YieldHorizonSteps)
	if errors.Is(err, ErrInsufficientHistory) {
		return "Not enough history to forecast operations."
	}

	predicted := fmt.Sprintf("%.1f%%", forecast.Predicted*100)
	if forecast.DeltaPctVsLatest == nil {
		// Comparison clause suppressed when the latest observation is zero.
		return fmt.Sprintf(
			"- Operations forecast: trend model suggests fleet yield could move to %s over the next week.",
			predicted,
		)
	}

	delta := *forecast.DeltaPctVsLatest
	direction := "significantly"
	if math.Abs(delta) < 2 {
		direction = "slightly"
	}
	return fmt.Sprintf(
		"- Operations forecast: trend model suggests fleet yield could move to %s over the next week (%s change of %.1f%% vs today).",
		predicted, direction, delta,
	)
}

func predictiveShipments(ds schema.Dataset) string {
	series := SeriesByPeriod(ds, "otif_flag")
	if len(series) == 0 {
		return "No data to forecast OTIF."
	}
	forecast, err := Forecast(series, OtifHorizonSteps)
	if errors.Is(err, ErrInsufficientHistory) {
		return "Not enough history to forecast OTIF."
	}

	predicted := fmt.Sprintf("%.1f%%", forecast.Predicted*100)
	if forecast.DeltaPctVsLatest == nil {
		return fmt.Sprintf("- OTIF forecast: model points to around %s in ~1 month.", predicted)
	}
	return fmt.Sprintf(
		"- OTIF forecast: model points to around %s in ~1 month (%.1f%% vs the latest level).",
		predicted, *forecast.DeltaPctVsLatest,
	)
}

func predictiveFinance(ds schema.Dataset) string {
	series := SeriesByPeriod(ds, "gross_margin_pct")
	if len(series) == 0 {
		return "No data to forecast margins."
	}
	forecast, err := Forecast(series, MarginHorizonSteps)
	if errors.Is(err, ErrInsufficientHistory) {
		return "Not enough history to forecast margins."
	}

	predicted := fmt.Sprintf("%.1f%%", forecast.Predicted*100)
	if forecast.DeltaPctVsLatest == nil {
		return fmt.Sprintf("- Margin forecast: gross margin could trend toward %s in the next 3 months.", predicted)
	}
	return fmt.Sprintf(
		"- Margin forecast: gross margin could trend toward %s in the next 3 months (%.1f%% vs the latest month).",
		predicted, *forecast.DeltaPctVsLatest,
	)
}
