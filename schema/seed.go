package schema

import "time"

// Dimension rows for the synthetic warehouse. The star schema follows the
// PanPac reporting model: dates, regions, sites, products and customers.

// DateRow is one row of dim_date.
type DateRow struct {
	DateKey   int
	Date      time.Time
	Day       int
	Month     int
	MonthName string
	Quarter   int
	Year      int
	Weekday   string
	IsWeekend bool
}

// RegionRow is one row of dim_region.
type RegionRow struct {
	RegionKey  int
	RegionName string
	Country    string
}

// SiteRow is one row of dim_site. Sites are forests, mills or ports;
// CapacityM3 drives the production volumes for mill sites.
type SiteRow struct {
	SiteKey    int
	SiteName   string
	SiteType   string
	RegionKey  int
	CapacityM3 float64
}

// ProductRow is one row of dim_product.
type ProductRow struct {
	ProductKey    int
	ProductName   string
	ProductType   string
	Grade         string
	UnitOfMeasure string
}

// CustomerRow is one row of dim_customer.
type CustomerRow struct {
	CustomerKey  int
	CustomerName string
	Segment      string
	RegionKey    int
}

// ProductionFact is one row of fact_production: one day of one product at
// one mill.
type ProductionFact struct {
	DateKey        int
	SiteKey        int
	ProductKey     int
	InputVolumeM3  float64
	OutputVolumeM3 float64
	DowntimeHours  float64
	ShiftHours     int
	EnergyKwh      float64
}

// ShipmentFact is one row of fact_shipment: a single customer order moving
// through a port.
type ShipmentFact struct {
	OrderID         string
	OrderDateKey    int
	ShipDateKey     int
	DeliveryDateKey int
	CustomerKey     int
	ProductKey      int
	SiteKey         int
	QtyM3           float64
	OnTimeFlag      int
	InFullFlag      int
}

// FinanceFact is one row of fact_finance: one month of one product in one
// region, with actuals and budget.
type FinanceFact struct {
	MonthKey         int
	ProductKey       int
	RegionKey        int
	RevenueNZD       float64
	DirectCostNZD    float64
	OpexNZD          float64
	BudgetRevenueNZD float64
	BudgetCostNZD    float64
}

// SeedBundle is a complete synthetic dataset ready to load into the
// warehouse.
type SeedBundle struct {
	Dates     []DateRow
	Regions   []RegionRow
	Sites     []SiteRow
	Products  []ProductRow
	Customers []CustomerRow

	Production []ProductionFact
	Shipments  []ShipmentFact
	Finance    []FinanceFact
}
