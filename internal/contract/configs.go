package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/openforest/millpulse/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	DefaultSeed      = 42
	DefaultShipments = 4000
)

// Default seed date range, matching two full calendar years of history.
const (
	DefaultSeedStart = "2024-01-01"
	DefaultSeedEnd   = "2025-12-31"
)

// DateFormat is the calendar date representation used on flags and in
// report headers.
const DateFormat = "2006-01-02"

// EdgesRawInput holds per-metric classification edge overrides from the
// YAML config file. Only classified metrics are included. Use float64
// pointers so an absent key keeps the default.
type EdgesRawInput struct {
	Yield        *float64 `mapstructure:"yield"`
	Output       *float64 `mapstructure:"output"`
	Downtime     *float64 `mapstructure:"downtime"`
	Otif         *float64 `mapstructure:"otif"`
	LeadTime     *float64 `mapstructure:"lead-time"`
	GrossMargin  *float64 `mapstructure:"gross-margin"`
	EbitdaMargin *float64 `mapstructure:"ebitda-margin"`
}

// Config holds the runtime configuration for a report run.
// This struct remains the "final, validated" config.
type Config struct {
	RunDate    time.Time
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	WarehouseBackend   schema.WarehouseBackend
	WarehouseDBConnect string // Please use env var as this is plaintext

	View schema.ViewName

	Seed          int64
	SeedStart     time.Time
	SeedEnd       time.Time
	SeedShipments int

	Persist bool // Save rendered reports back into the warehouse

	// Edges is a mapping of [MetricName] = classification edge override
	Edges map[string]float64

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	RunDate            string `mapstructure:"run-date"`
	Output             string `mapstructure:"output"`
	OutputFile         string `mapstructure:"output-file"`
	Precision          int    `mapstructure:"precision"`
	Width              int    `mapstructure:"width"`
	Color              string `mapstructure:"color"`
	WarehouseBackend   string `mapstructure:"warehouse-backend"`
	WarehouseDBConnect string `mapstructure:"warehouse-db-connect"`

	// --- Fields from exportCmd.Flags() ---
	View string `mapstructure:"view"`

	// --- Fields from seedCmd.Flags() ---
	Seed      int64  `mapstructure:"seed"`
	SeedStart string `mapstructure:"seed-start"`
	SeedEnd   string `mapstructure:"seed-end"`
	Shipments int    `mapstructure:"shipments"`

	// --- Persist flag shared by briefingCmd/copilotCmd ---
	Persist bool `mapstructure:"persist"`

	// --- Edge overrides from config file ---
	Edges EdgesRawInput `mapstructure:"edges"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRunDate(cfg, input); err != nil {
		return err
	}
	if err := processSeedInputs(cfg, input); err != nil {
		return err
	}
	cfg.Edges = ProcessEdgesRawInput(input.Edges)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.WarehouseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("warehouse-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("warehouse-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-date related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Persist = input.Persist

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 2. Backend Validation ---
	cfg.WarehouseBackend = schema.WarehouseBackend(strings.ToLower(input.WarehouseBackend))
	if _, ok := schema.ValidWarehouseBackends[cfg.WarehouseBackend]; !ok {
		return fmt.Errorf("invalid warehouse backend '%s'. must be sqlite, mysql, postgresql", input.WarehouseBackend)
	}
	cfg.WarehouseDBConnect = input.WarehouseDBConnect
	if err := ValidateDatabaseConnectionString(cfg.WarehouseBackend, cfg.WarehouseDBConnect); err != nil {
		return err
	}

	// --- 3. View Validation ---
	if input.View != "" {
		cfg.View = schema.ViewName(strings.ToLower(input.View))
		if _, ok := schema.ValidViews[cfg.View]; !ok {
			return fmt.Errorf("invalid view '%s'. must be vw_production, vw_shipments, vw_finance", input.View)
		}
	}

	return nil
}

// processRunDate handles the report date override. An empty value means
// "today" so that scheduled runs need no flag.
func processRunDate(cfg *Config, input *ConfigRawInput) error {
	if input.RunDate == "" {
		now := time.Now()
		cfg.RunDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}
	t, err := time.Parse(DateFormat, input.RunDate)
	if err != nil {
		return fmt.Errorf("invalid run date format for '%s'. Expected YYYY-MM-DD: %w", input.RunDate, err)
	}
	cfg.RunDate = t
	return nil
}

// processSeedInputs handles the synthetic dataset parameters.
func processSeedInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Seed = input.Seed

	if input.Shipments <= 0 {
		return fmt.Errorf("shipments must be greater than 0 (received %d)", input.Shipments)
	}
	cfg.SeedShipments = input.Shipments

	start, err := time.Parse(DateFormat, input.SeedStart)
	if err != nil {
		return fmt.Errorf("invalid seed start date for '%s'. Expected YYYY-MM-DD: %w", input.SeedStart, err)
	}
	end, err := time.Parse(DateFormat, input.SeedEnd)
	if err != nil {
		return fmt.Errorf("invalid seed end date for '%s'. Expected YYYY-MM-DD: %w", input.SeedEnd, err)
	}
	if start.After(end) {
		return fmt.Errorf("seed start (%s) cannot be after seed end (%s)", input.SeedStart, input.SeedEnd)
	}
	cfg.SeedStart = start
	cfg.SeedEnd = end

	return nil
}

// ProcessEdgesRawInput converts EdgesRawInput into the final edges map.
// Absent keys are skipped so the policy defaults stay in force.
func ProcessEdgesRawInput(edges EdgesRawInput) map[string]float64 {
	result := make(map[string]float64)

	values := map[string]*float64{
		schema.YieldMetric:        edges.Yield,
		schema.OutputMetric:       edges.Output,
		schema.DowntimeMetric:     edges.Downtime,
		schema.OtifMetric:         edges.Otif,
		schema.LeadTimeMetric:     edges.LeadTime,
		schema.GrossMarginMetric:  edges.GrossMargin,
		schema.EbitdaMarginMetric: edges.EbitdaMargin,
	}
	for name, v := range values {
		if v != nil {
			result[name] = *v
		}
	}
	return result
}
