package aws

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/younsl/initcost/pkg/utils"
)

// Region sources reported by ResolveRegion
const (
	RegionSourceFlag    = "flag"
	RegionSourceEnv     = "env"
	RegionSourceProfile = "profile"
	RegionSourceIMDS    = "imds"
)

// ErrRegionNotSet is returned when no region source yields a value
var ErrRegionNotSet = errors.New("AWS region not set")

const imdsTimeout = 2 * time.Second

// regionResolver tries each region source in order
type regionResolver struct {
	env     func() string
	profile func(ctx context.Context) (string, error)
	imds    func(ctx context.Context) (string, error)
}

// ResolveRegion picks the region from the flag, environment, shared AWS profile, or EC2 instance metadata
func ResolveRegion(ctx context.Context, flagRegion string) (string, string, error) {
	r := regionResolver{
		env:     utils.RegionFromEnv,
		profile: profileRegion,
		imds:    imdsRegion,
	}
	return r.resolve(ctx, flagRegion)
}

func (r regionResolver) resolve(ctx context.Context, flagRegion string) (string, string, error) {
	if flagRegion != "" {
		return flagRegion, RegionSourceFlag, nil
	}
	if region := r.env(); region != "" {
		return region, RegionSourceEnv, nil
	}
	if region, err := r.profile(ctx); err == nil && region != "" {
		return region, RegionSourceProfile, nil
	}
	if region, err := r.imds(ctx); err == nil && region != "" {
		return region, RegionSourceIMDS, nil
	}
	return "", "", ErrRegionNotSet
}

func profileRegion(ctx context.Context) (string, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	return cfg.Region, nil
}

func imdsRegion(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
	defer cancel()

	client := imds.New(imds.Options{})
	output, err := client.GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return "", err
	}
	return output.Region, nil
}
