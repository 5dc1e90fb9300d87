package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/hpmalabs/hpma/schema"
)

// Validity label constants.
const (
	FlaggedValue = "FLAGGED"
	OKValue      = "OK"
)

// Color variables for console output.
var (
	HighColor    = color.New(color.FgGreen, color.Bold) // HighColor marks a confident classification.
	MediumColor  = color.New(color.FgYellow)            // MediumColor marks a classification near a boundary.
	LowColor     = color.New(color.FgRed, color.Bold)   // LowColor marks a fragile or faulted classification.
	FlaggedColor = color.New(color.FgRed)               // FlaggedColor marks a raised validity flag.
	OKColor      = color.New(color.FgCyan)              // OKColor marks a clean validity check.
)

// GetPlainConfidenceLabel returns the plain text of a confidence level.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainConfidenceLabel(level schema.ConfidenceLevel) string {
	if level == "" {
		return string(schema.LowConfidence)
	}
	return string(level)
}

// GetColorConfidenceLabel returns a colored confidence label for console output (table).
func GetColorConfidenceLabel(level schema.ConfidenceLevel) string {
	text := GetPlainConfidenceLabel(level)

	switch schema.ConfidenceLevel(text) {
	case schema.HighConfidence:
		return HighColor.Sprint(text)
	case schema.MediumConfidence:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// GetPlainValidityLabel returns FLAGGED or OK.
func GetPlainValidityLabel(flagged bool) string {
	if flagged {
		return FlaggedValue
	}
	return OKValue
}

// GetColorValidityLabel returns a colored validity label for console output (table).
func GetColorValidityLabel(flagged bool) string {
	if flagged {
		return FlaggedColor.Sprint(FlaggedValue)
	}
	return OKColor.Sprint(OKValue)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for the profile cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hpma_cache.db"
	}
	return filepath.Join(homeDir, ".hpma_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for assessment history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hpma_history.db"
	}
	return filepath.Join(homeDir, ".hpma_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateText shortens text to a maximum width with an ellipsis suffix.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
