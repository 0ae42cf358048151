// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/diffai/internal/log"
)

// DefaultMaxAttempts bounds retries of a single artifact request. Checkpoint
// listings and tensor downloads are large enough that throttling is common.
const DefaultMaxAttempts = 5

// options holds the overrides for reaching an artifact bucket.
type options struct {
	profile     string
	region      string
	maxAttempts int
	retryer     func() awsv2.Retryer
}

// Option customizes how the artifact store client is configured. With no
// options the usual AWS chain applies (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// LoadAWSConfig resolves the AWS config used to read s3:// model artifacts.
// A standard retryer capped at DefaultMaxAttempts is used unless WithRetryer
// or WithMaxAttempts says otherwise.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := options{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryer(o.newRetryer),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("artifact store config (profile=%q region=%q): %w", o.profile, o.region, err)
	}
	log.Debugf("artifact store config: profile=%q region=%s attempts=%d", o.profile, cfg.Region, o.maxAttempts)
	return cfg, nil
}

func (o options) newRetryer() awsv2.Retryer {
	if o.retryer != nil {
		return o.retryer()
	}
	return retry.NewStandard(func(so *retry.StandardOptions) {
		so.MaxAttempts = o.maxAttempts
	})
}

// NewS3 builds the client that lists and downloads artifacts.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithProfile selects the shared config profile holding artifact credentials.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion pins the artifact bucket region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithMaxAttempts changes the retry budget per request. Values below 1 keep
// the default.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxAttempts = n
		}
	}
}

// WithRetryer replaces the standard retryer entirely.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithEndpoint points the client at an S3-compatible artifact store such as
// MinIO. Path-style addressing is forced since those stores rarely serve
// virtual host buckets.
func WithEndpoint(url string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if url == "" {
			return
		}
		o.BaseEndpoint = awsv2.String(url)
		o.UsePathStyle = true
	}
}
