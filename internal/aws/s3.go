// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/diffai/internal/log"
)

// Scheme prefixes every S3 location.
const Scheme = "s3://"

// ErrInvalidURI is returned for malformed s3:// locations.
var ErrInvalidURI = errors.New("invalid s3 uri")

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	GetObject(context.Context, *s3v2.GetObjectInput, ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	s3v2.ListObjectsV2APIClient
}

// Location is a parsed s3://bucket/key.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return Scheme + l.Bucket + "/" + l.Key
}

// IsPrefix reports whether the location names a "directory": an empty key or
// one ending in a slash.
func (l Location) IsPrefix() bool {
	return l.Key == "" || strings.HasSuffix(l.Key, "/")
}

// IsURI reports whether path uses the s3:// scheme.
func IsURI(path string) bool {
	return strings.HasPrefix(path, Scheme)
}

// ParseURI splits s3://bucket/key.
func ParseURI(uri string) (Location, error) {
	if !IsURI(uri) {
		return Location{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, Scheme)
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: missing bucket in %s", ErrInvalidURI, uri)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// ReadObject fetches the whole object body.
func ReadObject(ctx context.Context, api ObjectAPI, loc Location) ([]byte, error) {
	log.Debugf("s3 get: %s", loc)
	out, err := api.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", loc, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}
	return data, nil
}

// Object is one listed key with its entity tag.
type Object struct {
	Key  string
	ETag string
}

// ListObjects returns every object under the location's prefix, in the order
// S3 lists them (lexicographic). Folder markers are skipped.
func ListObjects(ctx context.Context, api ObjectAPI, loc Location) ([]Object, error) {
	paginator := s3v2.NewListObjectsV2Paginator(api, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(loc.Bucket),
		Prefix: awsv2.String(loc.Key),
	})

	var objects []Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", loc, err)
		}
		for _, obj := range page.Contents {
			key := awsv2.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, Object{Key: key, ETag: strings.Trim(awsv2.ToString(obj.ETag), `"`)})
		}
	}
	log.Debugf("s3 list: %s keys=%d", loc, len(objects))
	return objects, nil
}
