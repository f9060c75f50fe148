package coldstart

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// initDurationPattern captures the number between "Init Duration:" and "ms" in a REPORT line
var initDurationPattern = regexp.MustCompile(`Init Duration:\s*([0-9]+(?:\.[0-9]+)?)\s*ms`)

// ParseInitDuration extracts the init duration in milliseconds from a Lambda REPORT line
func ParseInitDuration(message string) (decimal.Decimal, bool) {
	m := initDurationPattern.FindStringSubmatch(message)
	if m == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseInitDurations returns the durations of every message that carries one, in input order
func ParseInitDurations(messages []string) []decimal.Decimal {
	durations := make([]decimal.Decimal, 0, len(messages))
	for _, msg := range messages {
		if d, ok := ParseInitDuration(msg); ok {
			durations = append(durations, d)
		}
	}
	return durations
}

// FunctionNameFromLogGroup strips the log group prefix to get the function name.
// Lambda function names never contain '/', so a remainder with one is not invertible and is rejected.
func FunctionNameFromLogGroup(prefix, logGroup string) (string, bool) {
	name, ok := strings.CutPrefix(logGroup, prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
