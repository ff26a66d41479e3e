package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/openforest/millpulse/schema"
)

// Classification label constants.
const (
	ImprovedValue = "Improved" // Metric moved in the good direction
	StableValue   = "Stable"   // Metric stayed inside the band
	DegradedValue = "Degraded" // Metric moved in the bad direction
	UnknownValue  = "Unknown"  // No usable baseline
)

// Color variables for console output.
var (
	ImprovedColor = color.New(color.FgGreen, color.Bold) // improvedColor represents a positive move.
	StableColor   = color.New(color.FgCyan)              // stableColor represents an in-band reading.
	DegradedColor = color.New(color.FgRed, color.Bold)   // degradedColor represents a negative move.
	UnknownColor  = color.New(color.FgYellow)            // unknownColor represents a missing baseline.
)

// GetPlainLabel returns a plain text label for a change classification.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(class schema.Classification) string {
	switch class {
	case schema.ImprovedChange:
		return ImprovedValue
	case schema.StableChange:
		return StableValue
	case schema.DegradedChange:
		return DegradedValue
	default:
		return UnknownValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(class schema.Classification) string {
	text := GetPlainLabel(class)

	switch text {
	case ImprovedValue:
		return ImprovedColor.Sprint(text)
	case StableValue:
		return StableColor.Sprint(text)
	case DegradedValue:
		return DegradedColor.Sprint(text)
	default: // "Unknown"
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetWarehouseDBFilePath returns the path to the SQLite DB file for the warehouse.
func GetWarehouseDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".millpulse_warehouse.db"
	}
	return filepath.Join(homeDir, ".millpulse_warehouse.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
