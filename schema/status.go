package schema

// WarehouseStatus represents the status of the warehouse store.
type WarehouseStatus struct {
	Backend    string           `json:"backend"`
	Connected  bool             `json:"connected"`
	TableRows  map[string]int64 `json:"table_rows"`
	TotalRows  int64            `json:"total_rows"`
	ViewsReady bool             `json:"views_ready"`
}

// ProductionViewRow is one row of vw_production: daily per-mill,
// per-product output with the derived yield percentage.
type ProductionViewRow struct {
	Date           string   `json:"date"`
	SiteName       string   `json:"site_name"`
	ProductName    string   `json:"product_name"`
	InputVolumeM3  float64  `json:"input_volume_m3"`
	OutputVolumeM3 float64  `json:"output_volume_m3"`
	YieldPct       *float64 `json:"yield_pct"`
	DowntimeHours  float64  `json:"downtime_hours"`
	EnergyKwh      float64  `json:"energy_kwh"`
}

// ShipmentViewRow is one row of vw_shipments: one order with its derived
// OTIF flag and lead time.
type ShipmentViewRow struct {
	OrderID      string   `json:"order_id"`
	OrderDate    string   `json:"order_date"`
	DeliveryDate string   `json:"delivery_date"`
	CustomerName string   `json:"customer_name"`
	ProductName  string   `json:"product_name"`
	QtyM3        float64  `json:"qty_m3"`
	OnTimeFlag   int      `json:"on_time_flag"`
	InFullFlag   int      `json:"in_full_flag"`
	OtifFlag     int      `json:"otif_flag"`
	LeadTimeDays *float64 `json:"lead_time_days"`
}

// FinanceViewRow is one row of vw_finance: one month of one product in one
// region with the derived margin percentages.
type FinanceViewRow struct {
	MonthKey        int      `json:"month_key"`
	RegionName      string   `json:"region_name"`
	ProductName     string   `json:"product_name"`
	RevenueNZD      float64  `json:"revenue_nzd"`
	DirectCostNZD   float64  `json:"direct_cost_nzd"`
	OpexNZD         float64  `json:"opex_nzd"`
	GrossMarginPct  *float64 `json:"gross_margin_pct"`
	EbitdaMarginPct *float64 `json:"ebitda_margin_pct"`
}
