package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/internal/models"
)

// CSVHeader is the report header. Keep it stable so reports stay diffable across runs.
var CSVHeader = []string{
	"Function Name",
	"Cold Start Count",
	"Avg Init Duration (ms)",
	"Memory (MB)",
	"Monthly Init Cost (USD)",
}

// TotalLabel labels the trailing total row
const TotalLabel = "Total Monthly INIT Cost (USD)"

// FormatUSD rounds a cost half-up to 6 decimal places
func FormatUSD(d decimal.Decimal) string {
	return d.StringFixed(6)
}

// FormatMillis rounds a duration in milliseconds to 2 decimal places
func FormatMillis(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// WriteCSV writes the header, one row per record in the given order, and the total row
func WriteCSV(w io.Writer, records []models.FunctionColdStartRecord, total decimal.Decimal) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.FunctionName,
			strconv.Itoa(r.ColdStartCount),
			FormatMillis(r.AvgInitDurationMs),
			strconv.Itoa(int(r.MemoryMB)),
			FormatUSD(r.MonthlyCostUSD),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row for %s: %w", r.FunctionName, err)
		}
	}

	if err := writer.Write([]string{"", "", "", TotalLabel, FormatUSD(total)}); err != nil {
		return fmt.Errorf("error writing CSV total: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the report to path, replacing any existing file
func WriteCSVFile(path string, records []models.FunctionColdStartRecord, total decimal.Decimal) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing report file: %w", cerr)
		}
	}()

	return WriteCSV(f, records, total)
}
