package aws

import (
	"errors"
	"fmt"

	logsTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/younsl/initcost/internal/models"
)

// wrapAPIError annotates an SDK error and marks missing resources with models.ErrNotFound
func wrapAPIError(operation, resource string, err error) error {
	var logsNotFound *logsTypes.ResourceNotFoundException
	var lambdaNotFound *lambdaTypes.ResourceNotFoundException
	if errors.As(err, &logsNotFound) || errors.As(err, &lambdaNotFound) {
		return fmt.Errorf("%s failed for %s: %w: %w", operation, resource, models.ErrNotFound, err)
	}
	return fmt.Errorf("%s failed for %s: %w", operation, resource, err)
}
