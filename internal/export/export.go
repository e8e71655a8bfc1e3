// Package export builds the budget snapshot bundle and writes it out as a
// downloadable JSON file.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/bplan/internal/model"
)

// TimestampLayout formats exportDate as an ISO-8601 UTC instant with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Bundle is the exported document.
type Bundle struct {
	Budget     model.Budget          `json:"budget"`
	Analytics  model.BudgetAnalytics `json:"analytics"`
	ExportDate string                `json:"exportDate"`
}

// NewBundle stamps b and a with the export time.
func NewBundle(b model.Budget, a model.BudgetAnalytics, now time.Time) Bundle {
	return Bundle{
		Budget:     b,
		Analytics:  a,
		ExportDate: now.UTC().Format(TimestampLayout),
	}
}

// Encode renders the bundle as two-space indented JSON.
func (b Bundle) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// FileName returns budget-export-<YYYY-MM-DD>.json for the local date of now.
func FileName(now time.Time) string {
	return "budget-export-" + now.Format("2006-01-02") + ".json"
}

// Downloader hands a finished file to the user and reports where it went.
type Downloader interface {
	Download(name string, data []byte) (string, error)
}

// DirDownloader writes files into Dir, creating it if needed.
// An empty Dir means the working directory.
type DirDownloader struct {
	Dir string
}

// Download writes data to Dir/name, replacing any earlier export of the
// same day.
func (d DirDownloader) Download(name string, data []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
