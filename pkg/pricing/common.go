package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/pkg/utils"
)

// Lookup fetches a live Lambda duration price
type Lookup interface {
	LambdaPricePerGBSecond(ctx context.Context, region, architecture string) (decimal.Decimal, error)
}

// Resolve returns the live price when lookup succeeds, otherwise the fallback price.
// A price set by flag or config file always wins over the API, and a nil lookup always yields the fallback.
func Resolve(ctx context.Context, lookup Lookup, region, architecture string, fallback decimal.Decimal, fallbackSource PricingSource) (decimal.Decimal, PricingSource) {
	if lookup == nil || fallbackSource == PricingSourceConfig {
		return fallback, fallbackSource
	}

	price, err := lookup.LambdaPricePerGBSecond(ctx, region, architecture)
	if err != nil {
		slog.Warn("Falling back to configured Lambda price", "region", region, "error", err)
		return fallback, fallbackSource
	}
	if !price.IsPositive() {
		slog.Warn("Ignoring non-positive Lambda price from API", "region", region, "price", price)
		return fallback, fallbackSource
	}
	return price, PricingSourceAPI
}

// ExtractOnDemandPrice extracts the first-tier on-demand USD price from a Pricing API product document.
// Lambda duration is tiered; the tier with beginRange "0" is the one most accounts pay.
func ExtractOnDemandPrice(priceJSON string) (decimal.Decimal, error) {
	priceData, err := utils.ParseJSON(priceJSON)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing pricing data: %w", err)
	}

	onDemand, err := utils.GetNestedMap(priceData, "terms", "OnDemand")
	if err != nil {
		return decimal.Zero, fmt.Errorf("OnDemand field not found or invalid: %w", err)
	}

	// Extract the first skuOffer
	skuOffer, err := utils.GetFirstMapValue(onDemand)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no SKU offer found")
	}

	skuOfferMap, ok := skuOffer.(map[string]interface{})
	if !ok {
		return decimal.Zero, fmt.Errorf("SKU offer is not a map")
	}

	priceDimensions, ok := skuOfferMap["priceDimensions"].(map[string]interface{})
	if !ok || len(priceDimensions) == 0 {
		return decimal.Zero, fmt.Errorf("priceDimensions field not found or invalid")
	}

	dimension, err := firstTier(priceDimensions)
	if err != nil {
		return decimal.Zero, err
	}

	pricePerUnit, ok := dimension["pricePerUnit"].(map[string]interface{})
	if !ok {
		return decimal.Zero, fmt.Errorf("pricePerUnit field not found or invalid")
	}

	usd, ok := pricePerUnit["USD"].(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("USD price not found or invalid")
	}

	price, err := decimal.NewFromString(usd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing price: %w", err)
	}

	return price, nil
}

// firstTier picks the price dimension starting at 0, falling back to the first one
func firstTier(priceDimensions map[string]interface{}) (map[string]interface{}, error) {
	for _, d := range priceDimensions {
		dm, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		if begin, _ := dm["beginRange"].(string); begin == "0" {
			return dm, nil
		}
	}

	dimension, err := utils.GetFirstMapValue(priceDimensions)
	if err != nil {
		return nil, fmt.Errorf("no price dimension found")
	}
	dm, ok := dimension.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("price dimension is not a map")
	}
	return dm, nil
}
