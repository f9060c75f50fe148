package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/younsl/initcost/internal/config"
	"github.com/younsl/initcost/internal/logging"
	"github.com/younsl/initcost/internal/models"
	"github.com/younsl/initcost/internal/version"
	"github.com/younsl/initcost/pkg/aws"
	"github.com/younsl/initcost/pkg/coldstart"
	"github.com/younsl/initcost/pkg/formatter"
	"github.com/younsl/initcost/pkg/pricing"
	"github.com/younsl/initcost/pkg/utils"
)

// exitInterrupted is the conventional exit code after SIGINT
const exitInterrupted = 130

var (
	region          string
	days            int
	outfile         string
	price           string
	logGroupPrefix  string
	concurrency     int
	maxRetries      int
	timeout         string
	maxEvents       int
	usePricingAPI   bool
	withInvocations bool
	configDir       string
	verbose         bool
	showVersion     bool
)

// startSpinner creates and starts a spinner with the given message
func startSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "initcost",
		Short: "Estimate the cost of Lambda cold start init duration",
		Long: `initcost scans CloudWatch Logs for Lambda "Init Duration" events and estimates
the monthly cost of cold-start initialization for every ZIP-packaged function
in a region. Container image functions and custom runtimes are excluded.

The report is written as CSV sorted by cost, highest first, with a total row.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(version.Get())
				return nil
			}

			logging.Init(verbose)

			cfg, settings, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return run(ctx, cfg, settings)
		},
	}

	rootCmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (falls back to $AWS_REGION, the AWS profile, or EC2 instance metadata)")
	rootCmd.Flags().IntVarP(&days, "days", "d", config.DefaultDays, "How many days back to scan CloudWatch Logs")
	rootCmd.Flags().StringVarP(&outfile, "outfile", "o", config.DefaultOutfile, "Destination CSV file")
	rootCmd.Flags().StringVar(&price, "price", pricing.DefaultPricePerGBSecondText, "Lambda price in USD per GB-second")
	rootCmd.Flags().StringVar(&logGroupPrefix, "log-group-prefix", models.DefaultLogGroupPrefix, "Log group name prefix to scan")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", config.DefaultConcurrency, "Number of functions analyzed in parallel")
	rootCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Maximum attempts per AWS API call (0 uses the SDK default)")
	rootCmd.Flags().StringVar(&timeout, "timeout", "", "Timeout per AWS API call, e.g. 30s (empty disables)")
	rootCmd.Flags().IntVar(&maxEvents, "max-events", 0, "Cap on init events read per function (0 reads all)")
	rootCmd.Flags().BoolVar(&usePricingAPI, "pricing-api", false, "Look up the regional GB-second price from the AWS Pricing API (ignored when --price or price_per_gb_second is set)")
	rootCmd.Flags().BoolVar(&withInvocations, "invocations", false, "Fetch invocation counts from CloudWatch to show cold start rates")
	rootCmd.Flags().StringVar(&configDir, "config-dir", ".", "Directory containing .initcost.yaml")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted by user - exiting")
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies any flag the user set explicitly and parses the result
func loadConfig(cmd *cobra.Command) (config.Config, config.Settings, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return config.Config{}, config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("region") {
		cfg.Region = region
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("outfile") {
		cfg.Outfile = outfile
	}
	if flags.Changed("price") {
		cfg.PricePerGBSecond = price
	}
	if flags.Changed("log-group-prefix") {
		cfg.LogGroupPrefix = logGroupPrefix
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = maxRetries
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("max-events") {
		cfg.MaxEvents = maxEvents
	}
	if flags.Changed("pricing-api") {
		cfg.PricingAPI = usePricingAPI
	}
	if flags.Changed("invocations") {
		cfg.Invocations = withInvocations
	}

	settings, err := cfg.Settings()
	if err != nil {
		return config.Config{}, config.Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, settings, nil
}

// run executes one scan and writes the report
func run(ctx context.Context, cfg config.Config, settings config.Settings) error {
	resolvedRegion, source, err := aws.ResolveRegion(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("%w\nSupply --region, set $AWS_REGION, or configure a default region in the AWS CLI", err)
	}
	if !utils.IsKnownRegion(resolvedRegion) {
		fmt.Fprintf(os.Stderr, "Warning: region '%s' (from %s) is not in the known region list\n", resolvedRegion, source)
	}

	window, err := utils.NewScanWindow(time.Now(), cfg.Days)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning region %s for the past %d day(s). Output → %s\n", resolvedRegion, cfg.Days, cfg.Outfile)

	clientOpts := aws.ClientOptions{
		Region:      resolvedRegion,
		MaxRetries:  cfg.MaxRetries,
		CallTimeout: settings.CallTimeout,
		MaxEvents:   cfg.MaxEvents,
	}
	awsCfg, err := aws.LoadConfig(ctx, clientOpts)
	if err != nil {
		return err
	}

	pricePerGBSecond, priceSource := settings.Price, settings.PriceSource
	switch {
	case cfg.PricingAPI && priceSource == pricing.PricingSourceConfig:
		fmt.Fprintln(os.Stderr, "Note: a price was set by flag or config file, skipping the Pricing API lookup")
	case cfg.PricingAPI:
		client, err := pricing.NewClient(ctx, cfg.MaxRetries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v. Using default price.\n", err)
		} else {
			var lookup pricing.Lookup = client
			s := startSpinner(fmt.Sprintf("Retrieving Lambda pricing from %s", client.Endpoint()))
			pricePerGBSecond, priceSource = pricing.Resolve(ctx, lookup, resolvedRegion, "x86_64", pricePerGBSecond, priceSource)
			s.Stop()
		}
	}

	formatter.PrintScanHeader(os.Stdout, resolvedRegion, window, pricePerGBSecond, priceSource)

	analyzer := coldstart.NewAnalyzer(
		aws.NewLogsClient(awsCfg, clientOpts),
		aws.NewLambdaClient(awsCfg, clientOpts),
		coldstart.Options{
			LogGroupPrefix:   cfg.LogGroupPrefix,
			Window:           window,
			PricePerGBSecond: pricePerGBSecond,
			Concurrency:      cfg.Concurrency,
		},
	)
	if cfg.Invocations {
		analyzer.SetInvocationSource(aws.NewMetricsClient(awsCfg, clientOpts))
	}

	scanStartTime := time.Now()

	// Verbose mode logs every function, so the spinner would only get in the way
	var s *spinner.Spinner
	if !verbose {
		s = startSpinner("Listing CloudWatch log groups ...")
		analyzer.SetProgressFn(func(p coldstart.Progress) {
			s.Lock()
			s.Suffix = fmt.Sprintf(" [%d analyzed, %d with cold starts] Last: %s", p.Processed, p.Records, p.Current)
			s.Unlock()
		})
	}

	result, err := analyzer.Run(ctx)
	scanDuration := time.Since(scanStartTime)
	if s != nil {
		if err == nil {
			s.FinalMSG = fmt.Sprintf("✓ [%d log groups, %d functions with cold starts] Completed in %.2f seconds\n",
				result.LogGroups, len(result.Records), scanDuration.Seconds())
		}
		s.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Println("Writing CSV output ...")
	if err := formatter.WriteCSVFile(cfg.Outfile, result.Records, result.Total); err != nil {
		return err
	}

	fmt.Println()
	formatter.PrintColdStartTable(os.Stdout, result)
	formatter.PrintSkippedSummary(os.Stdout, result.Skipped)
	fmt.Println()
	formatter.PrintTimestamp(os.Stdout, scanStartTime, scanDuration)
	fmt.Printf("Report saved to %s. Total cost USD %s\n", cfg.Outfile, formatter.FormatUSD(result.Total))

	return nil
}
