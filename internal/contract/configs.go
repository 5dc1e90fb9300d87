package contract

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hpmalabs/hpma/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 4
	MaxWorkers       = 256
)

// StdinPath is the input path that reads responses from standard input.
const StdinPath = "-"

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for scoring and reporting.
// This struct remains the "final, validated" config.
type Config struct {
	InputPaths []string
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Format     schema.ReportFormat
	Width      int // Terminal width override (0 = auto-detect)

	ContentDir     string // Overrides the embedded content bundle when set
	FaultOnInvalid bool   // Random or inattentive responding faults the roster
	Strict         bool   // Reject out-of-range ratings instead of dropping them

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// ThresholdOverrides replace named rule thresholds of the content bundle.
	ThresholdOverrides map[string]float64

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStrs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Workers          int    `mapstructure:"workers"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	ContentDir       string `mapstructure:"content-dir"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from scoreCmd/reportCmd flags ---
	FaultOnInvalid string `mapstructure:"fault-on-invalid"`
	Strict         bool   `mapstructure:"strict"`

	// --- Fields from reportCmd.Flags() ---
	Format        string `mapstructure:"format"`
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Rule thresholds from config file ---
	Thresholds map[string]float64 `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.InputPaths != nil {
		clone.InputPaths = slices.Clone(c.InputPaths)
	}
	if c.ThresholdOverrides != nil {
		clone.ThresholdOverrides = maps.Clone(c.ThresholdOverrides)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processInputPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
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

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.ContentDir = strings.TrimSpace(input.ContentDir)
	cfg.Strict = input.Strict
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.FaultOnInvalid = true
	if input.FaultOnInvalid != "" {
		fault, err := ParseBoolString(input.FaultOnInvalid)
		if err != nil {
			return fmt.Errorf("invalid --fault-on-invalid value: %w", err)
		}
		cfg.FaultOnInvalid = fault
	}

	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	format := input.Format
	if format == "" {
		format = string(schema.MarkdownReport)
	}
	cfg.Format = schema.ReportFormat(strings.ToLower(format))
	if _, ok := schema.ValidReportFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid report format '%s'. must be markdown, html, json", input.Format)
	}

	if cfg.ContentDir != "" {
		info, err := os.Stat(cfg.ContentDir)
		if err != nil {
			return fmt.Errorf("content directory %q: %w", cfg.ContentDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("content directory %q is not a directory", cfg.ContentDir)
		}
	}

	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// Cache and history must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}

	return nil
}

// processThresholds merges config file thresholds with the command-line override.
// The --thresholds-override flag takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[string]float64)
	maps.Copy(thresholds, input.Thresholds)

	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for name, v := range thresholds {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("threshold %s must be a finite number", name)
		}
	}

	if len(thresholds) > 0 {
		cfg.ThresholdOverrides = thresholds
	}
	return nil
}

// processInputPaths expands globs and checks that every response file exists.
func processInputPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPaths = nil
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		cfg.InputPaths = append(cfg.InputPaths, p)
	}

	for _, raw := range input.InputPathStrs {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		if p == StdinPath {
			add(p)
			continue
		}
		if strings.ContainsAny(p, "*?[") {
			matches, err := filepath.Glob(p)
			if err != nil {
				return fmt.Errorf("invalid input pattern %q: %w", p, err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("input pattern %q matched no files", p)
			}
			for _, m := range matches {
				add(filepath.Clean(m))
			}
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("input file %q: %w", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("input %q is a directory", p)
		}
		add(filepath.Clean(p))
	}

	return nil
}

// parseThresholdsString parses a string like "high:6,low:2.5" into a map of
// threshold name to value.
func parseThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	if s == "" {
		return thresholds, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'name:value'", part)
		}

		name := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])
		if name == "" {
			return nil, fmt.Errorf("threshold name is empty in '%s'", part)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, name, err)
		}

		thresholds[name] = value
	}

	return thresholds, nil
}
