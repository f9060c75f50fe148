package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubResolver(env, profile, imds string) regionResolver {
	return regionResolver{
		env: func() string { return env },
		profile: func(context.Context) (string, error) {
			if profile == "" {
				return "", errors.New("no profile region")
			}
			return profile, nil
		},
		imds: func(context.Context) (string, error) {
			if imds == "" {
				return "", errors.New("not on EC2")
			}
			return imds, nil
		},
	}
}

func TestResolveRegion_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		resolver   regionResolver
		wantRegion string
		wantSource string
	}{
		{"flag wins", "eu-west-1", stubResolver("us-east-1", "us-west-2", "ap-northeast-2"), "eu-west-1", RegionSourceFlag},
		{"env before profile", "", stubResolver("us-east-1", "us-west-2", "ap-northeast-2"), "us-east-1", RegionSourceEnv},
		{"profile before imds", "", stubResolver("", "us-west-2", "ap-northeast-2"), "us-west-2", RegionSourceProfile},
		{"imds last", "", stubResolver("", "", "ap-northeast-2"), "ap-northeast-2", RegionSourceIMDS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, source, err := tt.resolver.resolve(context.Background(), tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRegion, region)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestResolveRegion_NotSet(t *testing.T) {
	_, _, err := stubResolver("", "", "").resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrRegionNotSet)
}
