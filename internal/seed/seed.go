// Package seed generates the synthetic timber-company star schema: two years
// of daily mill production, a few thousand shipments and monthly finance
// actuals. Generation is deterministic for a given seed.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/openforest/millpulse/schema"
)

// Options controls the synthetic dataset shape.
type Options struct {
	Start     time.Time
	End       time.Time
	Seed      int64
	Shipments int
}

// Site types used by the generator.
const (
	siteTypeForest = "Forest"
	siteTypeMill   = "Mill"
	siteTypePort   = "Port"
)

// Product types used by the generator.
const (
	productTypeLog    = "Log"
	productTypeTimber = "Timber"
	productTypePulp   = "Pulp"
)

// Generate builds a complete seed bundle from the options.
func Generate(opts Options) *schema.SeedBundle {
	rng := rand.New(rand.NewSource(opts.Seed))

	bundle := &schema.SeedBundle{
		Dates:     generateDimDate(opts.Start, opts.End),
		Regions:   generateDimRegion(),
		Sites:     generateDimSite(),
		Products:  generateDimProduct(),
		Customers: generateDimCustomer(),
	}
	bundle.Production = generateFactProduction(rng, bundle.Dates, bundle.Sites, bundle.Products)
	bundle.Shipments = generateFactShipment(rng, opts.Shipments, bundle.Dates, bundle.Customers, bundle.Products, bundle.Sites)
	bundle.Finance = generateFactFinance(rng, opts.Start, opts.End, bundle.Products, bundle.Regions)
	return bundle
}

// dateKey encodes a calendar date as a YYYYMMDD integer.
func dateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// monthKey encodes a calendar month as a YYYYMM integer.
func monthKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// generateDimDate creates one row per day in [start, end].
func generateDimDate(start, end time.Time) []schema.DateRow {
	var rows []schema.DateRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		rows = append(rows, schema.DateRow{
			DateKey:   dateKey(d),
			Date:      d,
			Day:       d.Day(),
			Month:     int(d.Month()),
			MonthName: d.Month().String(),
			Quarter:   (int(d.Month())-1)/3 + 1,
			Year:      d.Year(),
			Weekday:   wd.String(),
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		})
	}
	return rows
}

// generateDimRegion returns the forestry and export regions.
func generateDimRegion() []schema.RegionRow {
	return []schema.RegionRow{
		{RegionKey: 1, RegionName: "Northland", Country: "New Zealand"},
		{RegionKey: 2, RegionName: "Hawke's Bay", Country: "New Zealand"},
		{RegionKey: 3, RegionName: "Waikato", Country: "New Zealand"},
		{RegionKey: 4, RegionName: "Vietnam", Country: "Export"},
		{RegionKey: 5, RegionName: "China", Country: "Export"},
		{RegionKey: 6, RegionName: "Japan", Country: "Export"},
	}
}

// generateDimSite returns the forests, mills and ports.
func generateDimSite() []schema.SiteRow {
	return []schema.SiteRow{
		{SiteKey: 1, SiteName: "Forest A", SiteType: siteTypeForest, RegionKey: 1, CapacityM3: 800},
		{SiteKey: 2, SiteName: "Forest B", SiteType: siteTypeForest, RegionKey: 2, CapacityM3: 900},
		{SiteKey: 3, SiteName: "Mill A", SiteType: siteTypeMill, RegionKey: 2, CapacityM3: 600},
		{SiteKey: 4, SiteName: "Mill B", SiteType: siteTypeMill, RegionKey: 3, CapacityM3: 700},
		{SiteKey: 5, SiteName: "Napier Port", SiteType: siteTypePort, RegionKey: 2, CapacityM3: 1200},
		{SiteKey: 6, SiteName: "Auckland Port", SiteType: siteTypePort, RegionKey: 1, CapacityM3: 1500},
	}
}

// generateDimProduct returns the forestry products.
func generateDimProduct() []schema.ProductRow {
	return []schema.ProductRow{
		{ProductKey: 1, ProductName: "Log A28", ProductType: productTypeLog, Grade: "A28", UnitOfMeasure: "m3"},
		{ProductKey: 2, ProductName: "Log B22", ProductType: productTypeLog, Grade: "B22", UnitOfMeasure: "m3"},
		{ProductKey: 3, ProductName: "Timber Premium", ProductType: productTypeTimber, Grade: "TP", UnitOfMeasure: "m3"},
		{ProductKey: 4, ProductName: "Timber Standard", ProductType: productTypeTimber, Grade: "TS", UnitOfMeasure: "m3"},
		{ProductKey: 5, ProductName: "Pulp High Grade", ProductType: productTypePulp, Grade: "PG", UnitOfMeasure: "tonne"},
		{ProductKey: 6, ProductName: "Pulp Low Grade", ProductType: productTypePulp, Grade: "PL", UnitOfMeasure: "tonne"},
	}
}

// generateDimCustomer returns the domestic and export customers.
func generateDimCustomer() []schema.CustomerRow {
	return []schema.CustomerRow{
		{CustomerKey: 1, CustomerName: "NZ Timber Co", Segment: "Domestic", RegionKey: 1},
		{CustomerKey: 2, CustomerName: "HB Lumber Ltd", Segment: "Domestic", RegionKey: 2},
		{CustomerKey: 3, CustomerName: "Saigon Builders", Segment: "Export", RegionKey: 4},
		{CustomerKey: 4, CustomerName: "Shanghai Wood Corp", Segment: "Export", RegionKey: 5},
		{CustomerKey: 5, CustomerName: "Tokyo Timber Group", Segment: "Export", RegionKey: 6},
	}
}

// seasonFactor dampens winter output and lifts summer output. Seasons are
// southern hemisphere: June to August is winter.
func seasonFactor(month int) float64 {
	switch month {
	case 6, 7, 8:
		return 0.7
	case 12, 1, 2:
		return 1.2
	default:
		return 1.0
	}
}

// generateFactProduction creates one row per day, mill and log or timber
// product. Volumes follow site capacity with seasonal swing and noise, and
// downtime carries rare large spikes.
func generateFactProduction(rng *rand.Rand, dates []schema.DateRow, sites []schema.SiteRow, products []schema.ProductRow) []schema.ProductionFact {
	var rows []schema.ProductionFact

	for _, site := range sites {
		if site.SiteType != siteTypeMill {
			continue
		}
		for _, product := range products {
			// Only logs and timber are processed in mills
			if product.ProductType != productTypeLog && product.ProductType != productTypeTimber {
				continue
			}

			for _, date := range dates {
				inputVol := rng.NormFloat64()*50 + site.CapacityM3*seasonFactor(date.Month)
				inputVol = max(inputVol, 100)

				yieldRate := 0.90
				if product.ProductType == productTypeLog {
					yieldRate = 0.85
				}
				outputVol := inputVol * yieldRate

				downtime := max(rng.NormFloat64()*0.5+1, 0)
				if rng.Float64() < 0.02 {
					downtime += 5 // big downtime spike
				}

				energy := outputVol * (rng.NormFloat64()*0.1 + 1.5)

				rows = append(rows, schema.ProductionFact{
					DateKey:        date.DateKey,
					SiteKey:        site.SiteKey,
					ProductKey:     product.ProductKey,
					InputVolumeM3:  round1(inputVol),
					OutputVolumeM3: round1(outputVol),
					DowntimeHours:  round2(downtime),
					ShiftHours:     24,
					EnergyKwh:      round2(energy),
				})
			}
		}
	}
	return rows
}

// generateFactShipment creates n orders with random ship and delivery
// offsets. An order is on time when delivery takes at most 10 days after
// shipping, and 5% of orders arrive incomplete.
func generateFactShipment(rng *rand.Rand, n int, dates []schema.DateRow, customers []schema.CustomerRow, products []schema.ProductRow, sites []schema.SiteRow) []schema.ShipmentFact {
	var ports []schema.SiteRow
	for _, site := range sites {
		if site.SiteType == siteTypePort {
			ports = append(ports, site)
		}
	}

	rows := make([]schema.ShipmentFact, 0, n)
	for i := 0; i < n; i++ {
		customer := customers[rng.Intn(len(customers))]
		product := products[rng.Intn(len(products))]
		port := ports[rng.Intn(len(ports))]
		orderDate := dates[rng.Intn(len(dates))]

		shipOffset := rng.Intn(7) + 1      // 1-7 days to ship
		deliveryOffset := rng.Intn(18) + 3 // 3-20 days in transit
		shipDate := orderDate.Date.AddDate(0, 0, shipOffset)
		deliveryDate := shipDate.AddDate(0, 0, deliveryOffset)

		onTime := 0
		if deliveryOffset <= 10 {
			onTime = 1
		}
		inFull := 1
		if rng.Float64() < 0.05 {
			inFull = 0
		}

		qty := max(rng.NormFloat64()*10+50, 10)

		rows = append(rows, schema.ShipmentFact{
			OrderID:         fmt.Sprintf("ORD%d", 100000+i),
			OrderDateKey:    orderDate.DateKey,
			ShipDateKey:     dateKey(shipDate),
			DeliveryDateKey: dateKey(deliveryDate),
			CustomerKey:     customer.CustomerKey,
			ProductKey:      product.ProductKey,
			SiteKey:         port.SiteKey,
			QtyM3:           round1(qty),
			OnTimeFlag:      onTime,
			InFullFlag:      inFull,
		})
	}
	return rows
}

// generateFactFinance creates one row per month, product and region.
// Revenue levels depend on the product type and budgets run slightly
// optimistic.
func generateFactFinance(rng *rand.Rand, start, end time.Time, products []schema.ProductRow, regions []schema.RegionRow) []schema.FinanceFact {
	var rows []schema.FinanceFact

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		for _, product := range products {
			for _, region := range regions {
				baseRev := 100000.0
				switch product.ProductType {
				case productTypeTimber:
					baseRev = 300000
				case productTypeLog:
					baseRev = 200000
				case productTypePulp:
					baseRev = 150000
				}

				revenue := rng.NormFloat64()*50000 + baseRev
				directCost := revenue * uniform(rng, 0.55, 0.75)
				opex := revenue * uniform(rng, 0.05, 0.15)

				budgetRev := baseRev * uniform(rng, 1.02, 1.07)
				budgetCost := budgetRev * uniform(rng, 0.6, 0.7)

				rows = append(rows, schema.FinanceFact{
					MonthKey:         monthKey(month),
					ProductKey:       product.ProductKey,
					RegionKey:        region.RegionKey,
					RevenueNZD:       round2(revenue),
					DirectCostNZD:    round2(directCost),
					OpexNZD:          round2(opex),
					BudgetRevenueNZD: round2(budgetRev),
					BudgetCostNZD:    round2(budgetCost),
				})
			}
		}
	}
	return rows
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
