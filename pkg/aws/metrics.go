package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/initcost/internal/models"
)

type cloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// MetricsClient reads AWS/Lambda metrics from CloudWatch
type MetricsClient struct {
	client      cloudWatchAPI
	callTimeout time.Duration
}

// NewMetricsClient creates a new MetricsClient
func NewMetricsClient(cfg aws.Config, opts ClientOptions) *MetricsClient {
	return &MetricsClient{
		client:      cloudwatch.NewFromConfig(cfg),
		callTimeout: opts.CallTimeout,
	}
}

// Invocations returns the total invocation count of a function within the window
func (c *MetricsClient) Invocations(ctx context.Context, functionName string, window models.ScanWindow) (int64, error) {
	callCtx, cancel := callContext(ctx, c.callTimeout)
	defer cancel()

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/Lambda"),
		MetricName: aws.String("Invocations"),
		Dimensions: []cwTypes.Dimension{
			{
				Name:  aws.String("FunctionName"),
				Value: aws.String(functionName),
			},
		},
		StartTime:  aws.Time(window.Start()),
		EndTime:    aws.Time(window.End()),
		Period:     aws.Int32(86400), // 1 day
		Statistics: []cwTypes.Statistic{cwTypes.StatisticSum},
	}

	result, err := c.client.GetMetricStatistics(callCtx, input)
	if err != nil {
		return 0, wrapAPIError("GetMetricStatistics", functionName, err)
	}

	var total int64
	for _, datapoint := range result.Datapoints {
		if datapoint.Sum != nil {
			total += int64(*datapoint.Sum)
		}
	}
	return total, nil
}
