package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/internal/models"
	"github.com/younsl/initcost/pkg/pricing"
	"github.com/younsl/initcost/pkg/utils"
)

// PrintScanHeader prints the region, window and price a scan uses
func PrintScanHeader(out io.Writer, region string, window models.ScanWindow, price decimal.Decimal, source pricing.PricingSource) {
	fmt.Fprintf(out, "Region:  %s\n", region)
	fmt.Fprintf(out, "Window:  %s (%d days)\n", utils.FormatWindow(window), utils.WindowDays(window))
	fmt.Fprintf(out, "Price:   $%s per GB-second (%s)\n", price.String(), source)
}

// PrintTimestamp prints the scan timestamp and duration
func PrintTimestamp(out io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	// Format the scan time
	timeStr := scanStartTime.Format("2006-01-02 15:04:05")

	// Format the duration
	durationStr := fmt.Sprintf("%.2fs", scanDuration.Seconds())

	fmt.Fprintf(out, "Scan completed at %s (took %s)\n", timeStr, durationStr)
}
