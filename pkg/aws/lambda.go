package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/younsl/initcost/internal/models"
)

type lambdaAPI interface {
	GetFunctionConfiguration(ctx context.Context, params *lambda.GetFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionConfigurationOutput, error)
}

// LambdaClient struct for Lambda client
type LambdaClient struct {
	client      lambdaAPI
	region      string
	callTimeout time.Duration
}

// NewLambdaClient creates a new LambdaClient
func NewLambdaClient(cfg aws.Config, opts ClientOptions) *LambdaClient {
	return newLambdaClient(lambda.NewFromConfig(cfg), cfg.Region, opts)
}

func newLambdaClient(client lambdaAPI, region string, opts ClientOptions) *LambdaClient {
	return &LambdaClient{
		client:      client,
		region:      region,
		callTimeout: opts.CallTimeout,
	}
}

// FunctionConfig returns the package type, runtime and memory size of a function
func (c *LambdaClient) FunctionConfig(ctx context.Context, functionName string) (models.FunctionConfig, error) {
	callCtx, cancel := callContext(ctx, c.callTimeout)
	defer cancel()

	output, err := c.client.GetFunctionConfiguration(callCtx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(functionName),
	})
	if err != nil {
		return models.FunctionConfig{}, wrapAPIError("GetFunctionConfiguration", functionName, err)
	}

	fc := models.FunctionConfig{
		Name:        functionName,
		PackageType: string(output.PackageType),
		Runtime:     string(output.Runtime),
		MemoryMB:    models.DefaultMemorySizeMB,
	}

	// Handle pointer values
	if output.MemorySize != nil {
		fc.MemoryMB = *output.MemorySize
	}

	for _, arch := range output.Architectures {
		fc.Architectures = append(fc.Architectures, string(arch))
	}

	return fc, nil
}
