// Package export writes habit statistics as CSV or JSON.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected csv or json)", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// DefaultFileName returns habits_export_YYYYMMDD.<format>.
func DefaultFileName(format Format, now time.Time) string {
	return fmt.Sprintf("habits_export_%s.%s", now.Format("20060102"), format)
}

// WriteFile writes stats to path in the given format.
func WriteFile(path string, format Format, stats []models.HabitStats, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s file: %w", format, err)
	}

	switch format {
	case FormatJSON:
		err = ToJSON(f, stats, now)
	default:
		err = ToCSV(f, stats)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
