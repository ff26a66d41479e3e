package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openforest/millpulse/core"
	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/internal/warehouse"
	"github.com/openforest/millpulse/schema"
)

// warehouseMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func warehouseMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get warehouse-related config values
	backend := schema.WarehouseBackend(viper.GetString("warehouse-backend"))
	connStr := viper.GetString("warehouse-db-connect")

	if _, ok := schema.ValidWarehouseBackends[backend]; !ok {
		return fmt.Errorf("invalid warehouse backend '%s'. must be sqlite, mysql, postgresql", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetWarehouseDBFilePath()
	}

	cfg.WarehouseBackend = backend
	cfg.WarehouseDBConnect = connStr

	return nil
}

// warehouseMigrateSetupWrapper wraps warehouseMigrateSetup to provide PreRunE for migrate command.
func warehouseMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return warehouseMigrateSetup()
}

// warehouseCmd focused on warehouse data management.
var warehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Manage the warehouse database and stored reports",
	Long: `Manage the star-schema warehouse that backs all reports.

The warehouse holds five dimensions (date, region, site, product,
customer), three fact tables (production, shipment, finance) and the
semantic views the reports read from.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show backend details and per-table row counts
  migrate - Run database schema migrations
  reports - List reports persisted with --persist

Examples:
  # Check warehouse health
  millpulse warehouse status

  # Same against a shared PostgreSQL instance
  millpulse warehouse status --warehouse-backend postgresql \
    --warehouse-db-connect "host=db.internal port=5432 user=bi dbname=millpulse"`,
}

// warehouseStatusCmd shows warehouse status.
var warehouseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display warehouse statistics and connection details",
	Long: `Show detailed information about the warehouse database.

Displays:
- Backend type and connection status
- Whether the semantic views are queryable
- Row counts for every dimension and fact table

Use this to:
- Verify the warehouse is reachable before a scheduled run
- Confirm a seed or load completed
- Check database connection health

Examples:
  # Check warehouse status
  millpulse warehouse status

  # Status as JSON for monitoring
  millpulse warehouse status --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWarehouseStatus(rootCtx, cfg, warehouseClient); err != nil {
			contract.LogFatal("Failed to get warehouse status", err)
		}
	},
}

// warehouseMigrateCmd runs database migrations for the warehouse.
var warehouseMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the warehouse.

Migrations allow:
- Upgrading to new schema versions when MillPulse is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  millpulse warehouse migrate

  # Migrate to specific version
  millpulse warehouse migrate --target-version 1

  # Rollback to previous version
  millpulse warehouse migrate --target-version 0`,
	PreRunE: warehouseMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := warehouse.MigrateWarehouse(cfg.WarehouseBackend, cfg.WarehouseDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// warehouseReportsCmd lists persisted reports.
var warehouseReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports saved into the warehouse",
	Long: `Show the reports persisted by 'briefing --persist' and 'copilot --persist'.

Each entry shows the report id, kind, run date and creation timestamp,
newest first. Use this to audit what was sent out on a given day.

Examples:
  # The ten most recent reports
  millpulse warehouse reports

  # Go further back
  millpulse warehouse reports --limit 50`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, ok := warehouseClient.(*warehouse.Store)
		if !ok {
			contract.LogFatal("Cannot list reports", fmt.Errorf("unexpected warehouse client type %T", warehouseClient))
		}
		records, err := store.ListReports(rootCtx, viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list reports", err)
		}
		if len(records) == 0 {
			fmt.Println("No stored reports. Run 'millpulse briefing --persist' to keep one.")
			return
		}
		for _, rec := range records {
			fmt.Printf("%6d  %-10s  run=%s  saved=%s\n", rec.ReportID, rec.Kind, rec.RunDate, rec.CreatedAt)
		}
	},
}
