// Package cmd defines the command-line interface for millpulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openforest/millpulse/internal/contract"
	"github.com/openforest/millpulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(briefingCmd)
	rootCmd.AddCommand(copilotCmd)
	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(warehouseCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the warehouse subcommands to the parent warehouse command
	warehouseCmd.AddCommand(warehouseStatusCmd)
	warehouseCmd.AddCommand(warehouseMigrateCmd)
	warehouseCmd.AddCommand(warehouseReportsCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("run-date", "", "Report date in YYYY-MM-DD (defaults to today)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("warehouse-backend", string(schema.SQLiteBackend), "Warehouse backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("warehouse-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Bool("persist", false, "Save rendered briefing/copilot reports back into the warehouse")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of seedCmd to Viper
	seedCmd.Flags().Int64("seed", contract.DefaultSeed, "Random seed for the synthetic dataset")
	seedCmd.Flags().String("seed-start", contract.DefaultSeedStart, "First calendar day of the dataset (YYYY-MM-DD)")
	seedCmd.Flags().String("seed-end", contract.DefaultSeedEnd, "Last calendar day of the dataset (YYYY-MM-DD)")
	seedCmd.Flags().Int("shipments", contract.DefaultShipments, "Number of shipment orders to generate")
	if err := viper.BindPFlags(seedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding seed flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("view", "", "Semantic view to export: vw_production, vw_shipments, vw_finance")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of warehouseMigrateCmd to Viper
	warehouseMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(warehouseMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding warehouse migrate flags", err)
	}

	// Bind all flags of warehouseReportsCmd to Viper
	warehouseReportsCmd.Flags().Int("limit", 10, "Number of stored reports to list")
	if err := viper.BindPFlags(warehouseReportsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding warehouse reports flags", err)
	}
}
