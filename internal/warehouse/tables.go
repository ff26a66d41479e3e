package warehouse

import (
	"database/sql"
	"fmt"

	"github.com/openforest/millpulse/schema"
)

// createWarehouseTables creates the star schema tables.
func createWarehouseTables(db *sql.DB, backend schema.WarehouseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{dimDateTable, getCreateDimDateQuery(backend)},
		{dimRegionTable, getCreateDimRegionQuery(backend)},
		{dimSiteTable, getCreateDimSiteQuery(backend)},
		{dimProductTable, getCreateDimProductQuery(backend)},
		{dimCustomerTable, getCreateDimCustomerQuery(backend)},
		{factProductionTable, getCreateFactProductionQuery(backend)},
		{factShipmentTable, getCreateFactShipmentQuery(backend)},
		{factFinanceTable, getCreateFactFinanceQuery(backend)},
		{reportsTable, getCreateReportsQuery(backend)},
	}

	for _, table := range tables {
		if err := validateTableName(table.name); err != nil {
			return err
		}
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// createSemanticViews creates the three reporting views on top of the star
// schema. Views are dropped and recreated so schema changes propagate.
func createSemanticViews(db *sql.DB, backend schema.WarehouseBackend) error {
	views := []struct {
		name  schema.ViewName
		query string
	}{
		{schema.ProductionView, getCreateProductionViewQuery(backend)},
		{schema.ShipmentsView, getCreateShipmentsViewQuery(backend)},
		{schema.FinanceView, getCreateFinanceViewQuery(backend)},
	}

	for _, view := range views {
		if _, err := db.Exec(fmt.Sprintf("DROP VIEW IF EXISTS %s", quoteTableName(string(view.name), backend))); err != nil {
			return fmt.Errorf("failed to drop view %s: %w", view.name, err)
		}
		if _, err := db.Exec(view.query); err != nil {
			return fmt.Errorf("failed to create view %s: %w", view.name, err)
		}
	}

	return nil
}

// typeNames returns the column type spellings for the given backend.
// SQLite stores dates as TEXT and booleans as INTEGER.
func typeNames(backend schema.WarehouseBackend) (dateType, boolType, floatType string) {
	switch backend {
	case schema.MySQLBackend:
		return "DATE", "TINYINT(1)", "DOUBLE"
	case schema.PostgreSQLBackend:
		return "DATE", "BOOLEAN", "DOUBLE PRECISION"
	default: // SQLite
		return "TEXT", "INTEGER", "REAL"
	}
}

// textType returns the variable-length string type for the given backend.
// MySQL needs a sized VARCHAR for indexed/keyed columns.
func textType(backend schema.WarehouseBackend) string {
	if backend == schema.MySQLBackend {
		return "VARCHAR(255)"
	}
	return "TEXT"
}

func getCreateDimDateQuery(backend schema.WarehouseBackend) string {
	dateType, boolType, _ := typeNames(backend)
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			date_key INTEGER PRIMARY KEY,
			date %s NOT NULL,
			day INTEGER NOT NULL,
			month INTEGER NOT NULL,
			month_name %s NOT NULL,
			quarter INTEGER NOT NULL,
			year INTEGER NOT NULL,
			weekday %s NOT NULL,
			is_weekend %s NOT NULL
		);
	`, quoteTableName(dimDateTable, backend), dateType, textType(backend), textType(backend), boolType)
}

func getCreateDimRegionQuery(backend schema.WarehouseBackend) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			region_key INTEGER PRIMARY KEY,
			region_name %s NOT NULL,
			country %s NOT NULL
		);
	`, quoteTableName(dimRegionTable, backend), textType(backend), textType(backend))
}

func getCreateDimSiteQuery(backend schema.WarehouseBackend) string {
	_, _, floatType := typeNames(backend)
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			site_key INTEGER PRIMARY KEY,
			site_name %s NOT NULL,
			site_type %s NOT NULL,
			region_key INTEGER NOT NULL,
			capacity_m3 %s NOT NULL
		);
	`, quoteTableName(dimSiteTable, backend), textType(backend), textType(backend), floatType)
}

func getCreateDimProductQuery(backend schema.WarehouseBackend) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			product_key INTEGER PRIMARY KEY,
			product_name %s NOT NULL,
			product_type %s NOT NULL,
			grade %s NOT NULL,
			unit_of_measure %s NOT NULL
		);
	`, quoteTableName(dimProductTable, backend), textType(backend), textType(backend), textType(backend), textType(backend))
}

func getCreateDimCustomerQuery(backend schema.WarehouseBackend) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			customer_key INTEGER PRIMARY KEY,
			customer_name %s NOT NULL,
			segment %s NOT NULL,
			region_key INTEGER NOT NULL
		);
	`, quoteTableName(dimCustomerTable, backend), textType(backend), textType(backend))
}

func getCreateFactProductionQuery(backend schema.WarehouseBackend) string {
	_, _, floatType := typeNames(backend)
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			date_key INTEGER NOT NULL,
			site_key INTEGER NOT NULL,
			product_key INTEGER NOT NULL,
			input_volume_m3 %s NOT NULL,
			output_volume_m3 %s NOT NULL,
			downtime_hours %s NOT NULL,
			shift_hours INTEGER NOT NULL,
			energy_kwh %s NOT NULL
		);
	`, quoteTableName(factProductionTable, backend), floatType, floatType, floatType, floatType)
}

func getCreateFactShipmentQuery(backend schema.WarehouseBackend) string {
	_, _, floatType := typeNames(backend)
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			order_id %s PRIMARY KEY,
			order_date_key INTEGER NOT NULL,
			ship_date_key INTEGER NOT NULL,
			delivery_date_key INTEGER NOT NULL,
			customer_key INTEGER NOT NULL,
			product_key INTEGER NOT NULL,
			site_key INTEGER NOT NULL,
			qty_m3 %s NOT NULL,
			on_time_flag INTEGER NOT NULL,
			in_full_flag INTEGER NOT NULL
		);
	`, quoteTableName(factShipmentTable, backend), textType(backend), floatType)
}

func getCreateFactFinanceQuery(backend schema.WarehouseBackend) string {
	_, _, floatType := typeNames(backend)
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			month_key INTEGER NOT NULL,
			product_key INTEGER NOT NULL,
			region_key INTEGER NOT NULL,
			revenue_nzd %s NOT NULL,
			direct_cost_nzd %s NOT NULL,
			opex_nzd %s NOT NULL,
			budget_revenue_nzd %s NOT NULL,
			budget_cost_nzd %s NOT NULL
		);
	`, quoteTableName(factFinanceTable, backend), floatType, floatType, floatType, floatType, floatType)
}

func getCreateReportsQuery(backend schema.WarehouseBackend) string {
	quotedTableName := quoteTableName(reportsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				kind VARCHAR(32) NOT NULL,
				run_date VARCHAR(10) NOT NULL,
				body MEDIUMTEXT NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id BIGSERIAL PRIMARY KEY,
				kind TEXT NOT NULL,
				run_date TEXT NOT NULL,
				body TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id INTEGER PRIMARY KEY AUTOINCREMENT,
				kind TEXT NOT NULL,
				run_date TEXT NOT NULL,
				body TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

func getCreateProductionViewQuery(backend schema.WarehouseBackend) string {
	return fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT
			d.date AS date,
			s.site_name AS site_name,
			p.product_name AS product_name,
			f.input_volume_m3 AS input_volume_m3,
			f.output_volume_m3 AS output_volume_m3,
			CASE WHEN f.input_volume_m3 > 0
				THEN f.output_volume_m3 / f.input_volume_m3
			END AS yield_pct,
			f.downtime_hours AS downtime_hours,
			f.energy_kwh AS energy_kwh
		FROM %s f
		JOIN %s d ON d.date_key = f.date_key
		JOIN %s s ON s.site_key = f.site_key
		JOIN %s p ON p.product_key = f.product_key
	`,
		quoteTableName(string(schema.ProductionView), backend),
		quoteTableName(factProductionTable, backend),
		quoteTableName(dimDateTable, backend),
		quoteTableName(dimSiteTable, backend),
		quoteTableName(dimProductTable, backend),
	)
}

func getCreateShipmentsViewQuery(backend schema.WarehouseBackend) string {
	// Lead time arithmetic differs per engine. Deliveries past the end of
	// dim_date join to nothing, so delivery_date and lead_time_days go NULL.
	var leadTimeExpr string
	switch backend {
	case schema.MySQLBackend:
		leadTimeExpr = "DATEDIFF(d2.date, d1.date)"
	case schema.PostgreSQLBackend:
		leadTimeExpr = "(d2.date - d1.date)"
	default: // SQLite
		leadTimeExpr = "julianday(d2.date) - julianday(d1.date)"
	}

	return fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT
			f.order_id AS order_id,
			d1.date AS order_date,
			d2.date AS delivery_date,
			c.customer_name AS customer_name,
			p.product_name AS product_name,
			f.qty_m3 AS qty_m3,
			f.on_time_flag AS on_time_flag,
			f.in_full_flag AS in_full_flag,
			f.on_time_flag * f.in_full_flag AS otif_flag,
			%s AS lead_time_days
		FROM %s f
		JOIN %s d1 ON d1.date_key = f.order_date_key
		LEFT JOIN %s d2 ON d2.date_key = f.delivery_date_key
		JOIN %s c ON c.customer_key = f.customer_key
		JOIN %s p ON p.product_key = f.product_key
	`,
		quoteTableName(string(schema.ShipmentsView), backend),
		leadTimeExpr,
		quoteTableName(factShipmentTable, backend),
		quoteTableName(dimDateTable, backend),
		quoteTableName(dimDateTable, backend),
		quoteTableName(dimCustomerTable, backend),
		quoteTableName(dimProductTable, backend),
	)
}

func getCreateFinanceViewQuery(backend schema.WarehouseBackend) string {
	return fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT
			f.month_key AS month_key,
			r.region_name AS region_name,
			p.product_name AS product_name,
			f.revenue_nzd AS revenue_nzd,
			f.direct_cost_nzd AS direct_cost_nzd,
			f.opex_nzd AS opex_nzd,
			CASE WHEN f.revenue_nzd <> 0
				THEN (f.revenue_nzd - f.direct_cost_nzd) / f.revenue_nzd
			END AS gross_margin_pct,
			CASE WHEN f.revenue_nzd <> 0
				THEN (f.revenue_nzd - f.direct_cost_nzd - f.opex_nzd) / f.revenue_nzd
			END AS ebitda_margin_pct
		FROM %s f
		JOIN %s r ON r.region_key = f.region_key
		JOIN %s p ON p.product_key = f.product_key
	`,
		quoteTableName(string(schema.FinanceView), backend),
		quoteTableName(factFinanceTable, backend),
		quoteTableName(dimRegionTable, backend),
		quoteTableName(dimProductTable, backend),
	)
}
