package coldstart

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"sync"

	"github.com/aws/smithy-go"
	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/internal/models"
	"golang.org/x/sync/errgroup"
)

// LogSource discovers log groups and returns their Init Duration events.
type LogSource interface {
	LogGroups(ctx context.Context, prefix string) iter.Seq2[string, error]
	InitEvents(ctx context.Context, logGroup string, window models.ScanWindow) ([]string, error)
}

// FunctionSource looks up Lambda function configuration.
type FunctionSource interface {
	FunctionConfig(ctx context.Context, functionName string) (models.FunctionConfig, error)
}

// InvocationSource counts function invocations within a window.
type InvocationSource interface {
	Invocations(ctx context.Context, functionName string, window models.ScanWindow) (int64, error)
}

// Options configures a scan.
type Options struct {
	LogGroupPrefix   string
	Window           models.ScanWindow
	PricePerGBSecond decimal.Decimal
	Concurrency      int // 1 or less scans one function at a time
}

// Progress is reported after each log group is analyzed.
type Progress struct {
	Processed int
	Records   int
	Skipped   int
	Current   string
}

// Result holds the outcome of a completed scan.
type Result struct {
	Records          []models.FunctionColdStartRecord // sorted by cost descending
	Skipped          []models.SkippedFunction         // in discovery order
	Total            decimal.Decimal
	LogGroups        int
	Window           models.ScanWindow
	PricePerGBSecond decimal.Decimal
}

// Analyzer runs the cold start cost pipeline over every log group under a prefix.
type Analyzer struct {
	logs        LogSource
	functions   FunctionSource
	invocations InvocationSource
	opts        Options
	progressFn  func(Progress)
}

// NewAnalyzer creates an analyzer over the given sources.
func NewAnalyzer(logs LogSource, functions FunctionSource, opts Options) *Analyzer {
	if opts.LogGroupPrefix == "" {
		opts.LogGroupPrefix = models.DefaultLogGroupPrefix
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Analyzer{
		logs:      logs,
		functions: functions,
		opts:      opts,
	}
}

// SetInvocationSource enables per-function invocation counts.
func (a *Analyzer) SetInvocationSource(src InvocationSource) {
	a.invocations = src
}

// SetProgressFn sets a callback for progress updates.
func (a *Analyzer) SetProgressFn(fn func(Progress)) {
	a.progressFn = fn
}

// Run scans every log group and returns the aggregated result.
// A failure to enumerate log groups aborts the run with an error wrapping
// models.ErrEnumeration and no partial result; per-function failures are skipped.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	if !a.opts.Window.Valid() {
		return nil, fmt.Errorf("invalid scan window %d-%d", a.opts.Window.StartMillis, a.opts.Window.EndMillis)
	}
	if a.opts.PricePerGBSecond.IsNegative() {
		return nil, fmt.Errorf("price per GB-second must not be negative: %s", a.opts.PricePerGBSecond)
	}

	var (
		mu       sync.Mutex
		records  []models.FunctionColdStartRecord
		skipped  []indexedSkip
		progress Progress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)

	var enumErr error
	discovered := 0
	for logGroup, err := range a.logs.LogGroups(ctx, a.opts.LogGroupPrefix) {
		if err != nil {
			enumErr = err
			break
		}
		if ctx.Err() != nil {
			break
		}

		order := discovered
		discovered++
		g.Go(func() error {
			record, skip := a.analyzeLogGroup(gctx, order, logGroup)

			mu.Lock()
			defer mu.Unlock()
			progress.Processed++
			progress.Current = logGroup
			if record != nil {
				records = append(records, *record)
				progress.Records++
			}
			if skip != nil {
				skipped = append(skipped, indexedSkip{order: order, skip: *skip})
				progress.Skipped++
			}
			if a.progressFn != nil {
				a.progressFn(progress)
			}
			return nil
		})
	}
	_ = g.Wait()

	if enumErr != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrEnumeration, enumErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted, total := Aggregate(records)

	sort.Slice(skipped, func(i, j int) bool {
		return skipped[i].order < skipped[j].order
	})
	skips := make([]models.SkippedFunction, 0, len(skipped))
	for _, s := range skipped {
		skips = append(skips, s.skip)
	}

	return &Result{
		Records:          sorted,
		Skipped:          skips,
		Total:            total,
		LogGroups:        discovered,
		Window:           a.opts.Window,
		PricePerGBSecond: a.opts.PricePerGBSecond,
	}, nil
}

type indexedSkip struct {
	order int
	skip  models.SkippedFunction
}

// analyzeLogGroup gathers one function's data in full and returns either its record or why it was skipped
func (a *Analyzer) analyzeLogGroup(ctx context.Context, order int, logGroup string) (*models.FunctionColdStartRecord, *models.SkippedFunction) {
	functionName, ok := FunctionNameFromLogGroup(a.opts.LogGroupPrefix, logGroup)
	if !ok {
		return nil, skip(logGroup, logGroup, models.SkipUnmappable, "log group name does not map to a function name")
	}
	slog.Debug("Analyzing function", "function", functionName)

	// Configuration comes first so excluded functions never cost a log query
	cfg, err := a.functions.FunctionConfig(ctx, functionName)
	if err != nil {
		return nil, skipForError(functionName, logGroup, err)
	}
	if reason, detail, excluded := Exclusion(cfg); excluded {
		return nil, skip(functionName, logGroup, reason, detail)
	}

	messages, err := a.logs.InitEvents(ctx, logGroup, a.opts.Window)
	if err != nil {
		return nil, skipForError(functionName, logGroup, err)
	}

	durations := ParseInitDurations(messages)
	if unparsed := len(messages) - len(durations); unparsed > 0 {
		slog.Debug("Ignored events without a parsable init duration", "function", functionName, "count", unparsed)
	}
	if len(durations) == 0 {
		return nil, skip(functionName, logGroup, models.SkipNoColdStarts, "")
	}
	slog.Debug("Cold starts found", "function", functionName, "count", len(durations))

	avg := Mean(durations)
	record := &models.FunctionColdStartRecord{
		FunctionName:      functionName,
		ColdStartCount:    len(durations),
		AvgInitDurationMs: avg,
		MemoryMB:          cfg.MemoryMB,
		MonthlyCostUSD:    MonthlyCost(avg, cfg.MemoryMB, len(durations), a.opts.PricePerGBSecond),
		Runtime:           cfg.Runtime,
		Invocations:       -1,
		Order:             order,
	}
	if len(cfg.Architectures) > 0 {
		record.Architecture = cfg.Architectures[0]
	}

	if a.invocations != nil {
		n, err := a.invocations.Invocations(ctx, functionName, a.opts.Window)
		if err != nil {
			slog.Warn("Could not retrieve invocation count", "function", functionName, "error", err)
		} else {
			record.Invocations = n
		}
	}

	return record, nil
}

func skipForError(functionName, logGroup string, err error) *models.SkippedFunction {
	if errors.Is(err, models.ErrNotFound) {
		return skip(functionName, logGroup, models.SkipNotFound, errorCode(err))
	}
	slog.Warn("API call failed", "function", functionName, "error", err)
	return skip(functionName, logGroup, models.SkipAPIError, errorCode(err))
}

func skip(functionName, logGroup string, reason models.SkipReason, detail string) *models.SkippedFunction {
	slog.Info("Skipping function", "function", functionName, "reason", reason, "detail", detail)
	return &models.SkippedFunction{
		FunctionName: functionName,
		LogGroup:     logGroup,
		Reason:       reason,
		Detail:       detail,
	}
}

// errorCode returns the AWS error code if err carries one, otherwise its message
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return err.Error()
}
