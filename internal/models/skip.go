package models

// SkipReason explains why a function produced no cost record
type SkipReason string

const (
	SkipNotFound      SkipReason = "not-found"
	SkipAPIError      SkipReason = "api-error"
	SkipNoColdStarts  SkipReason = "no-cold-starts"
	SkipPackageType   SkipReason = "package-type"
	SkipCustomRuntime SkipReason = "custom-runtime"
	SkipUnmappable    SkipReason = "unmappable"
)

// SkippedFunction records a function excluded from the report
type SkippedFunction struct {
	FunctionName string
	LogGroup     string
	Reason       SkipReason
	Detail       string // API error code or package type, if any
}
