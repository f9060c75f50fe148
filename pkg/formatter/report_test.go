package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/initcost/internal/models"
	"github.com/younsl/initcost/pkg/coldstart"
	"github.com/younsl/initcost/pkg/pricing"
)

// stubLogs serves fixed init events per log group.
type stubLogs struct {
	groups []string
	events map[string][]string
}

func (s stubLogs) LogGroups(_ context.Context, _ string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, g := range s.groups {
			if !yield(g, nil) {
				return
			}
		}
	}
}

func (s stubLogs) InitEvents(_ context.Context, logGroup string, _ models.ScanWindow) ([]string, error) {
	return s.events[logGroup], nil
}

// stubFunctions serves fixed function configurations.
type stubFunctions map[string]models.FunctionConfig

func (s stubFunctions) FunctionConfig(_ context.Context, name string) (models.FunctionConfig, error) {
	cfg, ok := s[name]
	if !ok {
		return models.FunctionConfig{}, models.ErrNotFound
	}
	return cfg, nil
}

func initLines(ms string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "REPORT RequestId: 1\tDuration: 3.10 ms\tInit Duration: " + ms + " ms\t"
	}
	return lines
}

func TestAnalyzerReportCSV(t *testing.T) {
	logs := stubLogs{
		groups: []string{"/aws/lambda/thumbnailer", "/aws/lambda/orders-api"},
		events: map[string][]string{
			"/aws/lambda/thumbnailer": initLines("250", 4),
			"/aws/lambda/orders-api":  initLines("500", 12),
		},
	}
	functions := stubFunctions{
		"thumbnailer": {Name: "thumbnailer", PackageType: models.PackageTypeZip, Runtime: "nodejs20.x", MemoryMB: 128},
		"orders-api":  {Name: "orders-api", PackageType: models.PackageTypeZip, Runtime: "python3.12", MemoryMB: 1024},
	}

	analyzer := coldstart.NewAnalyzer(logs, functions, coldstart.Options{
		Window:           models.ScanWindow{StartMillis: 1_700_000_000_000, EndMillis: 1_702_592_000_000},
		PricePerGBSecond: pricing.DefaultPricePerGBSecond(),
	})
	result, err := analyzer.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result.Records, result.Total))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// 12 x 0.5s x 1GB and 4 x 0.25s x 0.125GB at 0.0000166667 per GB-second
	assert.Equal(t, []string{"orders-api", "12", "500.00", "1024", "0.000100"}, rows[1])
	assert.Equal(t, []string{"thumbnailer", "4", "250.00", "128", "0.000002"}, rows[2])
	assert.Equal(t, []string{"", "", "", TotalLabel, "0.000102"}, rows[3])
	assert.Equal(t, "0.0001020835375", result.Total.String())
}
