package core

import (
	"context"
	"fmt"
	"time"

	"github.com/openforest/millpulse/schema"
)

// BuildKpiRows computes the briefing comparisons for every domain and metric
// and returns them as rows instead of narrative sentences, for the tabular
// `kpi` command. Unlike the narrator, unknown comparisons are kept so the
// table shows which baselines are missing.
func BuildKpiRows(ctx context.Context, wh Warehouse, pol *Policy) ([]schema.KpiRow, error) {
	production, err := wh.Production(ctx)
	if err != nil {
		return nil, fmt.Errorf("kpi: production query: %w", err)
	}
	shipments, err := wh.Shipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("kpi: shipments query: %w", err)
	}
	finance, err := wh.Finance(ctx)
	if err != nil {
		return nil, fmt.Errorf("kpi: finance query: %w", err)
	}

	var rows []schema.KpiRow
	rows = append(rows, kpiRowsForDomain(schema.ProductionDomain, production, pol.ProductionSpecs, operationsWindows)...)
	rows = append(rows, kpiRowsForDomain(schema.ShipmentsDomain, shipments, pol.ShipmentSpecs, shipmentsWindows)...)
	rows = append(rows, kpiRowsForDomain(schema.FinanceDomain, finance, pol.FinanceSpecs, financeWindows)...)
	return rows, nil
}

// windowsFunc derives the (current, baseline) windows from a dataset's
// latest period, mirroring the briefing policy for that domain.
type windowsFunc func(ds schema.Dataset) (current, baseline schema.Window, ok bool)

func operationsWindows(ds schema.Dataset) (schema.Window, schema.Window, bool) {
	latest, ok := LatestPeriod(ds)
	if !ok {
		return schema.Window{}, schema.Window{}, false
	}
	current := schema.SinglePeriod(latest)
	baseline := schema.Interval(latest.AddDate(0, 0, -ProductionBaselineDays), latest.AddDate(0, 0, -1))
	return current, baseline, true
}

func shipmentsWindows(ds schema.Dataset) (schema.Window, schema.Window, bool) {
	latest, ok := LatestPeriod(ds)
	if !ok {
		return schema.Window{}, schema.Window{}, false
	}
	current := schema.Interval(latest.AddDate(0, 0, -ShipmentWindowDays), latest)
	baseline := schema.Interval(latest.AddDate(0, 0, -2*ShipmentWindowDays), latest.AddDate(0, 0, -(ShipmentWindowDays+1)))
	return current, baseline, true
}

func financeWindows(ds schema.Dataset) (schema.Window, schema.Window, bool) {
	latest, ok := LatestPeriod(ds)
	if !ok {
		return schema.Window{}, schema.Window{}, false
	}
	months := make([]time.Time, 0, FinanceBaselineMonths)
	for i := 1; i <= FinanceBaselineMonths; i++ {
		months = append(months, latest.AddDate(0, -i, 0))
	}
	return schema.SinglePeriod(latest), schema.PeriodSet(months...), true
}

func kpiRowsForDomain(domain schema.Domain, ds schema.Dataset, specs []schema.MetricSpec, windows windowsFunc) []schema.KpiRow {
	currentW, baselineW, ok := windows(ds)
	if !ok {
		return nil
	}
	current := Aggregate(ds, specs, currentW)
	baseline := Aggregate(ds, specs, baselineW)

	rows := make([]schema.KpiRow, 0, len(specs))
	for _, spec := range specs {
		row := schema.KpiRow{
			Domain:   domain,
			Metric:   spec.Name,
			Current:  current[spec.Column],
			Baseline: baseline[spec.Column],
		}
		if spec.Edge == 0 {
			// Report-only metrics keep the delta but skip classification.
			row.DeltaPct = PercentChange(row.Current, row.Baseline)
			row.Class = schema.UnknownChange
		} else {
			result := Classify(row.Current, row.Baseline, spec.Edge, spec.HigherIsBetter)
			row.DeltaPct = result.DeltaPct
			row.Class = result.Class
		}
		rows = append(rows, row)
	}
	return rows
}
