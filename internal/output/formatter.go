package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/itax/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.TaxReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.TaxReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.TaxReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file with extension.
func WriteFormatted(f Formatter, report *domain.TaxReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	HTMLFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"table":           "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
	"csv-summary":     "csv",
	"html-report":     "html",
	"json-pretty":     "json",
	"yml":             "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extension returns the file extension conventionally used for a formatter's output
func Extension(name string) string {
	switch NormalizeFormatName(name) {
	case "html":
		return "html"
	case "json":
		return "json"
	case "yaml":
		return "yaml"
	case "csv":
		return "csv"
	}
	return "txt"
}
