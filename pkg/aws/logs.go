package aws

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/younsl/initcost/internal/models"
)

// InitDurationFilterPattern matches the REPORT lines Lambda writes after a cold start
const InitDurationFilterPattern = `"Init Duration"`

// filterPageSize is the FilterLogEvents page size
const filterPageSize = 1000

type logsAPI interface {
	cloudwatchlogs.DescribeLogGroupsAPIClient
	cloudwatchlogs.FilterLogEventsAPIClient
}

// LogsClient wraps CloudWatch Logs for log group discovery and init event scanning
type LogsClient struct {
	client      logsAPI
	region      string
	callTimeout time.Duration
	maxEvents   int
}

// NewLogsClient creates a new LogsClient
func NewLogsClient(cfg aws.Config, opts ClientOptions) *LogsClient {
	return newLogsClient(cloudwatchlogs.NewFromConfig(cfg), cfg.Region, opts)
}

func newLogsClient(client logsAPI, region string, opts ClientOptions) *LogsClient {
	return &LogsClient{
		client:      client,
		region:      region,
		callTimeout: opts.CallTimeout,
		maxEvents:   opts.MaxEvents,
	}
}

// LogGroups lazily yields every log group name under prefix.
// Pages are fetched on demand; a failed page yields a single error and ends the sequence.
func (c *LogsClient) LogGroups(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		input := &cloudwatchlogs.DescribeLogGroupsInput{}
		if prefix != "" {
			input.LogGroupNamePrefix = aws.String(prefix)
		}
		paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(c.client, input)

		pageCount := 0
		for paginator.HasMorePages() {
			pageCount++
			callCtx, cancel := callContext(ctx, c.callTimeout)
			output, err := paginator.NextPage(callCtx)
			cancel()
			if err != nil {
				yield("", fmt.Errorf("error fetching log groups page %d in %s: %w", pageCount, c.region, err))
				return
			}

			for _, lg := range output.LogGroups {
				if !yield(aws.ToString(lg.LogGroupName), nil) {
					return
				}
			}
		}
	}
}

// InitEvents returns the message of every "Init Duration" event in the log group within the window.
// All pages are drained unless a MaxEvents cap was configured.
func (c *LogsClient) InitEvents(ctx context.Context, logGroup string, window models.ScanWindow) ([]string, error) {
	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:  aws.String(logGroup),
		FilterPattern: aws.String(InitDurationFilterPattern),
		StartTime:     aws.Int64(window.StartMillis),
		EndTime:       aws.Int64(window.EndMillis),
		Limit:         aws.Int32(filterPageSize),
	}
	paginator := cloudwatchlogs.NewFilterLogEventsPaginator(c.client, input)

	var messages []string
	for paginator.HasMorePages() {
		callCtx, cancel := callContext(ctx, c.callTimeout)
		output, err := paginator.NextPage(callCtx)
		cancel()
		if err != nil {
			return nil, wrapAPIError("FilterLogEvents", logGroup, err)
		}

		for _, event := range output.Events {
			messages = append(messages, aws.ToString(event.Message))
			if c.maxEvents > 0 && len(messages) >= c.maxEvents {
				return messages, nil
			}
		}
	}

	return messages, nil
}
