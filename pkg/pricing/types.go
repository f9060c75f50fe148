package pricing

import "github.com/shopspring/decimal"

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceConfig indicates the price was set by flag or config file
	PricingSourceConfig PricingSource = "Config"

	// PricingSourceDefault indicates the built-in price was used
	PricingSourceDefault PricingSource = "Default"
)

// DefaultPricePerGBSecondText is the x86 Lambda compute price in USD per GB-second (2025-07 AWS Lambda pricing)
const DefaultPricePerGBSecondText = "0.0000166667"

// DefaultPricePerGBSecond returns the built-in Lambda compute price
func DefaultPricePerGBSecond() decimal.Decimal {
	return decimal.RequireFromString(DefaultPricePerGBSecondText)
}

// Lambda duration usage groups in the AWS Pricing API
const (
	lambdaServiceCode = "AWSLambda"
	durationGroupX86  = "AWS-Lambda-Duration"
	durationGroupArm  = "AWS-Lambda-Duration-ARM"
	architectureArm64 = "arm64"
)
