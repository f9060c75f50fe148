package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logsTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// fakeLogsAPI is a test double for logsAPI. Pages are keyed by the request token ("" for the first page).
type fakeLogsAPI struct {
	groupPages    map[string]fakeGroupPage
	groupErrAt    string // token whose DescribeLogGroups call fails
	eventPages    map[string]fakeEventPage
	filterErr     error
	describeCalls []*cloudwatchlogs.DescribeLogGroupsInput
	filterCalls   []*cloudwatchlogs.FilterLogEventsInput
}

type fakeGroupPage struct {
	names []string
	next  string
}

type fakeEventPage struct {
	messages []string
	next     string
}

func (f *fakeLogsAPI) DescribeLogGroups(_ context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	f.describeCalls = append(f.describeCalls, params)
	token := aws.ToString(params.NextToken)
	if f.groupErrAt != "" && token == f.groupErrAt {
		return nil, &logsTypes.ServiceUnavailableException{Message: aws.String("unavailable")}
	}

	page := f.groupPages[token]
	out := &cloudwatchlogs.DescribeLogGroupsOutput{}
	for _, name := range page.names {
		out.LogGroups = append(out.LogGroups, logsTypes.LogGroup{LogGroupName: aws.String(name)})
	}
	if page.next != "" {
		out.NextToken = aws.String(page.next)
	}
	return out, nil
}

func (f *fakeLogsAPI) FilterLogEvents(_ context.Context, params *cloudwatchlogs.FilterLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error) {
	f.filterCalls = append(f.filterCalls, params)
	if f.filterErr != nil {
		return nil, f.filterErr
	}

	page := f.eventPages[aws.ToString(params.NextToken)]
	out := &cloudwatchlogs.FilterLogEventsOutput{}
	for _, msg := range page.messages {
		out.Events = append(out.Events, logsTypes.FilteredLogEvent{Message: aws.String(msg)})
	}
	if page.next != "" {
		out.NextToken = aws.String(page.next)
	}
	return out, nil
}

// fakeLambdaAPI is a test double for lambdaAPI.
type fakeLambdaAPI struct {
	outputs map[string]*lambda.GetFunctionConfigurationOutput
	err     error
}

func (f *fakeLambdaAPI) GetFunctionConfiguration(_ context.Context, params *lambda.GetFunctionConfigurationInput, _ ...func(*lambda.Options)) (*lambda.GetFunctionConfigurationOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.outputs[aws.ToString(params.FunctionName)], nil
}
