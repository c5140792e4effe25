package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/younsl/keyaudit/pkg/utils"
)

// Session holds the resolved AWS configuration and the identity of the
// audited account.
type Session struct {
	Config    aws.Config
	AccountID string
	Profile   string
}

// Connect resolves AWS credentials for the given profile (empty string
// means the default credential chain) and verifies them by fetching the
// caller identity. Any failure is reported as *AuthError.
func Connect(ctx context.Context, profile, region string) (*Session, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &AuthError{Profile: profile, Err: err}
	}

	// GetCallerIdentity doubles as a credential check: it fails fast when
	// the chain resolved nothing usable.
	identity, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, &AuthError{Profile: profile, Err: err}
	}

	return &Session{
		Config:    cfg,
		AccountID: utils.SafeDeref(identity.Account),
		Profile:   profile,
	}, nil
}
