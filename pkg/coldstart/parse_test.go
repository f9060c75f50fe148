package coldstart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseInitDuration(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantOK  bool
	}{
		{"report line", reportLine("245.67"), "245.67", true},
		{"integer value", "Init Duration: 300 ms", "300", true},
		{"no space before ms", "Init Duration: 181.5ms", "181.5", true},
		{"no init duration", "REPORT RequestId: x\tDuration: 1.00 ms", "0", false},
		{"filter hit without number", "Init Duration: unknown", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInitDuration(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseInitDurations_SkipsUnparsable(t *testing.T) {
	got := ParseInitDurations([]string{reportLine("100.5"), "Init Duration: n/a", reportLine("200")})
	assert.Len(t, got, 2)
	assert.Equal(t, "100.5", got[0].String())
	assert.Equal(t, "200", got[1].String())
}

func TestFunctionNameFromLogGroup(t *testing.T) {
	tests := []struct {
		logGroup string
		want     string
		wantOK   bool
	}{
		{"/aws/lambda/orders-api", "orders-api", true},
		{"/aws/lambda/", "", false},
		{"/aws/lambda/us-east-1.edge-fn/extra", "", false},
		{"/ecs/service", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.logGroup, func(t *testing.T) {
			got, ok := FunctionNameFromLogGroup("/aws/lambda/", tt.logGroup)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
