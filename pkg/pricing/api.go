package pricing

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/pkg/utils"
)

// pricingRegion is where the AWS Pricing API is served (us-east-1 and ap-south-1 only)
const pricingRegion = "us-east-1"

type productsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Client looks up Lambda prices from the AWS Pricing API
type Client struct {
	api productsAPI
}

// NewClient initializes the AWS pricing client
func NewClient(ctx context.Context, maxRetries int) (*Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(pricingRegion)}
	if maxRetries > 0 {
		opts = append(opts, config.WithRetryMaxAttempts(maxRetries))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}
	return &Client{api: pricing.NewFromConfig(cfg)}, nil
}

// Endpoint describes where prices are fetched from
func (c *Client) Endpoint() string {
	return fmt.Sprintf("https://api.pricing.%s.amazonaws.com", pricingRegion)
}

// LambdaPricePerGBSecond returns the first-tier on-demand duration price for a region and architecture
func (c *Client) LambdaPricePerGBSecond(ctx context.Context, region, architecture string) (decimal.Decimal, error) {
	location, ok := utils.GetRegionDescriptiveName(region)
	if !ok {
		return decimal.Zero, fmt.Errorf("no pricing location known for region %s", region)
	}

	group := durationGroupX86
	if architecture == architectureArm64 {
		group = durationGroupArm
	}

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(location),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("group"),
			Value: aws.String(group),
		},
	}

	resp, err := c.api.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String(lambdaServiceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(1),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	if len(resp.PriceList) == 0 {
		return decimal.Zero, fmt.Errorf("no pricing found for %s in region %s", group, region)
	}

	return ExtractOnDemandPrice(resp.PriceList[0])
}
