package schema

// Custom string types for type safety.
type (
	// Domain represents a business domain served by the warehouse.
	Domain string

	// AggKind represents how a metric column is aggregated over a window.
	AggKind string

	// Classification represents the outcome of a change comparison.
	Classification string

	// OutputMode represents the format of the output.
	OutputMode string

	// WarehouseBackend represents the database backend for the warehouse.
	WarehouseBackend string

	// ViewName represents a semantic view exposed by the warehouse.
	ViewName string
)

// All business domains.
const (
	ProductionDomain Domain = "production"
	ShipmentsDomain  Domain = "shipments"
	FinanceDomain    Domain = "finance"
)

// All aggregation kinds.
const (
	MeanAgg AggKind = "mean"
	SumAgg  AggKind = "sum"
)

// All change classifications.
const (
	ImprovedChange Classification = "improved"
	StableChange   Classification = "stable"
	DegradedChange Classification = "degraded"
	UnknownChange  Classification = "unknown"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All warehouse backends supported.
const (
	SQLiteBackend     WarehouseBackend = "sqlite" // default
	MySQLBackend      WarehouseBackend = "mysql"
	PostgreSQLBackend WarehouseBackend = "postgresql"
)

// All semantic views exposed by the warehouse.
const (
	ProductionView ViewName = "vw_production"
	ShipmentsView  ViewName = "vw_shipments"
	FinanceView    ViewName = "vw_finance"
)

// Metric names used in spec tables, threshold overrides and KPI rows.
const (
	YieldMetric        = "yield"
	OutputMetric       = "output"
	DowntimeMetric     = "downtime"
	OtifMetric         = "otif"
	LeadTimeMetric     = "lead-time"
	RevenueMetric      = "revenue"
	GrossMarginMetric  = "gross-margin"
	EbitdaMarginMetric = "ebitda-margin"
)

// AllDomains lists the domains in report order.
var AllDomains = []Domain{ProductionDomain, ShipmentsDomain, FinanceDomain}

// AllViews lists the semantic views in report order.
var AllViews = []ViewName{ProductionView, ShipmentsView, FinanceView}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidWarehouseBackends lists all valid warehouse backends.
var ValidWarehouseBackends = map[WarehouseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidViews lists all valid semantic views.
var ValidViews = map[ViewName]struct{}{
	ProductionView: {},
	ShipmentsView:  {},
	FinanceView:    {},
}
