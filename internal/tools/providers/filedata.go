package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
	"insight-engine/pkg/tabular"
)

// FileDataProvider serves tabular data from CSV files under a fixed data
// directory. Paths are confined to that directory.
type FileDataProvider struct {
	dir string
}

// NewFileDataProvider creates a provider rooted at dir.
func NewFileDataProvider(dir string) *FileDataProvider {
	return &FileDataProvider{dir: dir}
}

func (p *FileDataProvider) Name() string { return "file_data" }

func (p *FileDataProvider) Keywords() []string {
	return []string{"file", "csv", "dataset", "upload", "spreadsheet"}
}

func (p *FileDataProvider) Affinities() map[insight.IntentCategory]float64 {
	return map[insight.IntentCategory]float64{
		insight.IntentDescriptive: 0.7,
		insight.IntentComparative: 0.6,
		insight.IntentTrend:       0.6,
		insight.IntentAnomaly:     0.6,
	}
}

func (p *FileDataProvider) Class() tools.TimeoutClass { return tools.TimeoutMedium }

// Invoke supports "read" with a "file" parameter naming a CSV inside the
// data directory.
func (p *FileDataProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if method != "read" {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	name, _ := params["file"].(string)
	if name == "" {
		return nil, fmt.Errorf("file parameter is required")
	}

	// Confine reads to the data directory.
	clean := filepath.Clean(name)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid file path %q", name)
	}

	data, err := os.ReadFile(filepath.Join(p.dir, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	table, err := tabular.ParseCSV(data)
	if err != nil {
		return nil, err
	}

	return TabularPayload{Headers: table.Headers, Rows: table.Rows}, nil
}
