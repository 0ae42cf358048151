// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory and lists them two keys per page.
type fakeS3 struct {
	objects map[string]string
	keys    []string
	calls   int
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	body, ok := f.objects[awsv2.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3v2.ListObjectsV2Input, _ ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	f.calls++
	var matched []string
	for _, k := range f.keys {
		if strings.HasPrefix(k, awsv2.ToString(in.Prefix)) {
			matched = append(matched, k)
		}
	}

	start := 0
	if in.ContinuationToken != nil {
		for i, k := range matched {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := min(start+2, len(matched))

	out := &s3v2.ListObjectsV2Output{IsTruncated: awsv2.Bool(end < len(matched))}
	for _, k := range matched[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: awsv2.String(k), ETag: awsv2.String(`"` + k + `-etag"`)})
	}
	if end < len(matched) {
		out.NextContinuationToken = awsv2.String(matched[end])
	}
	return out, nil
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		in     string
		want   Location
		prefix bool
		err    bool
	}{
		{in: "s3://bucket/models/a.safetensors", want: Location{Bucket: "bucket", Key: "models/a.safetensors"}},
		{in: "s3://bucket/models/", want: Location{Bucket: "bucket", Key: "models/"}, prefix: true},
		{in: "s3://bucket", want: Location{Bucket: "bucket"}, prefix: true},
		{in: "s3:///key", err: true},
		{in: "/local/path", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseURI(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.prefix, got.IsPrefix())
		})
	}
}

func TestReadObject(t *testing.T) {
	api := &fakeS3{objects: map[string]string{"cfg.json": `{"lr": 0.1}`}}

	data, err := ReadObject(context.Background(), api, Location{Bucket: "b", Key: "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, `{"lr": 0.1}`, string(data))

	_, err = ReadObject(context.Background(), api, Location{Bucket: "b", Key: "missing"})
	assert.ErrorContains(t, err, "failed to get s3://b/missing")
}

func keysOf(objects []Object) []string {
	keys := make([]string, len(objects))
	for i, o := range objects {
		keys[i] = o.Key
	}
	return keys
}

func TestListObjectsPaginates(t *testing.T) {
	api := &fakeS3{keys: []string{"run/", "run/a.json", "run/b.json", "run/c/d.yaml", "other.json"}}

	objects, err := ListObjects(context.Background(), api, Location{Bucket: "b", Key: "run/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"run/a.json", "run/b.json", "run/c/d.yaml"}, keysOf(objects))
	assert.Equal(t, 2, api.calls)
}

func TestListObjectsStripsETagQuotes(t *testing.T) {
	api := &fakeS3{keys: []string{"run/a.json", "run/b.json", "run/c.json"}}

	objects, err := ListObjects(context.Background(), api, Location{Bucket: "b", Key: "run/"})
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, Object{Key: "run/a.json", ETag: "run/a.json-etag"}, objects[0])
}
