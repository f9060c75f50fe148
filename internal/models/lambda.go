package models

import "github.com/shopspring/decimal"

// Lambda package types and runtime prefixes relevant to cold-start pricing
const (
	PackageTypeZip        = "Zip"
	PackageTypeImage      = "Image"
	CustomRuntimePrefix   = "provided" // provided, provided.al2, provided.al2023
	DefaultMemorySizeMB   = 128
	DefaultLogGroupPrefix = "/aws/lambda/"
)

// FunctionConfig holds the subset of a Lambda function configuration used for cost estimation
type FunctionConfig struct {
	Name          string   // Lambda function name
	PackageType   string   // Zip or Image
	Runtime       string   // Runtime identifier (e.g., python3.12, provided.al2)
	MemoryMB      int32    // Memory allocation in MB
	Architectures []string // x86_64 and/or arm64
}

// FunctionColdStartRecord is the per-function result of an init cost scan
type FunctionColdStartRecord struct {
	FunctionName      string          // Lambda function name
	ColdStartCount    int             // Number of parsed Init Duration events
	AvgInitDurationMs decimal.Decimal // Mean init duration in milliseconds
	MemoryMB          int32           // Memory allocation in MB
	MonthlyCostUSD    decimal.Decimal // Unrounded init cost over the scan window
	Runtime           string          // Runtime identifier
	Architecture      string          // First listed architecture
	Invocations       int64           // Invocations in the scan window, -1 if not collected
	Order             int             // Discovery order of the log group
}

// ColdStartRate returns cold starts as a percentage of invocations, or false if unknown
func (r FunctionColdStartRecord) ColdStartRate() (decimal.Decimal, bool) {
	if r.Invocations <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(r.ColdStartCount)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(r.Invocations), 2), true
}
