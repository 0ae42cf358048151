// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"

	awsx "github.com/tfctl/diffai/internal/aws"
	"github.com/tfctl/diffai/internal/cacheutil"
	"github.com/tfctl/diffai/internal/value"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformed         = errors.New("malformed file")
)

// Parser turns raw file content into a canonical value.
type Parser func(name string, data []byte) (value.Value, error)

// parsers maps lower-case extensions to their parser.
var parsers = map[string]Parser{
	".json":        ParseJSON,
	".yaml":        ParseYAML,
	".yml":         ParseYAML,
	".hcl":         ParseHCL,
	".tfvars":      ParseHCL,
	".npy":         ParseNPY,
	".safetensors": ParseSafetensors,
}

// Supported reports whether name has a loadable extension.
func Supported(name string) bool {
	_, ok := parsers[strings.ToLower(path.Ext(name))]
	return ok
}

// Parse dispatches on the extension of name.
func Parse(name string, data []byte) (value.Value, error) {
	ext := strings.ToLower(path.Ext(name))
	p, ok := parsers[ext]
	if !ok {
		return value.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	v, err := p(name, data)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return v, nil
}

// Loader resolves local and s3:// paths. The zero value loads local paths and
// builds an S3 client on first use.
type Loader struct {
	s3       awsx.ObjectAPI
	s3Opts   []awsx.Option
	endpoint string
	noCache  bool

	once  sync.Once
	s3Err error
}

// Option configures a Loader.
type Option func(*Loader)

// WithObjectAPI supplies the S3 client used for s3:// paths.
func WithObjectAPI(api awsx.ObjectAPI) Option {
	return func(l *Loader) { l.s3 = api }
}

// WithAWS passes config options to the lazily built S3 client.
func WithAWS(opts ...awsx.Option) Option {
	return func(l *Loader) { l.s3Opts = append(l.s3Opts, opts...) }
}

// WithS3Endpoint targets an S3-compatible store.
func WithS3Endpoint(url string) Option {
	return func(l *Loader) { l.endpoint = url }
}

// WithoutCache always fetches S3 objects, bypassing the on-disk cache.
func WithoutCache() Option {
	return func(l *Loader) { l.noCache = true }
}

// New returns a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads p, which is a local file, a local directory or an s3:// URI.
func (l *Loader) Load(ctx context.Context, p string) (value.Value, error) {
	log.Debugf("loader: load %s", p)

	if awsx.IsURI(p) {
		return l.loadS3(ctx, p)
	}

	info, err := os.Stat(p)
	if err != nil {
		return value.Value{}, err
	}
	if info.IsDir() {
		return l.loadDir(ctx, p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return value.Value{}, err
	}
	return Parse(p, data)
}

func (l *Loader) loadDir(ctx context.Context, root string) (value.Value, error) {
	var rels []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !Supported(p) {
			log.Debugf("loader: skip %s", p)
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return value.Value{}, err
	}
	sort.Strings(rels)

	members := make([]value.Member, 0, len(rels))
	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			return value.Value{}, err
		}
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return value.Value{}, err
		}
		v, err := Parse(rel, data)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Field(rel, v))
	}
	return value.Object(members...), nil
}

func (l *Loader) loadS3(ctx context.Context, uri string) (value.Value, error) {
	loc, err := awsx.ParseURI(uri)
	if err != nil {
		return value.Value{}, err
	}
	api, err := l.objectAPI(ctx)
	if err != nil {
		return value.Value{}, err
	}

	if !loc.IsPrefix() {
		data, err := awsx.ReadObject(ctx, api, loc)
		if err != nil {
			return value.Value{}, err
		}
		return Parse(loc.Key, data)
	}

	objects, err := awsx.ListObjects(ctx, api, loc)
	if err != nil {
		return value.Value{}, err
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	members := make([]value.Member, 0, len(objects))
	for _, obj := range objects {
		if !Supported(obj.Key) {
			continue
		}
		data, err := l.readObject(ctx, api, loc.Bucket, obj)
		if err != nil {
			return value.Value{}, err
		}
		rel := strings.TrimPrefix(obj.Key, loc.Key)
		v, err := Parse(rel, data)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Field(rel, v))
	}
	return value.Object(members...), nil
}

// readObject fetches one listed object. Bodies are cached on disk under their
// entity tag, so a changed object is always fetched again.
func (l *Loader) readObject(ctx context.Context, api awsx.ObjectAPI, bucket string, obj awsx.Object) ([]byte, error) {
	loc := awsx.Location{Bucket: bucket, Key: obj.Key}
	fetch := func() ([]byte, error) { return awsx.ReadObject(ctx, api, loc) }
	if obj.ETag == "" || l.noCache {
		return fetch()
	}
	return cacheutil.Fetch([]string{"s3", bucket}, obj.Key+"@"+obj.ETag, fetch)
}

func (l *Loader) objectAPI(ctx context.Context) (awsx.ObjectAPI, error) {
	l.once.Do(func() {
		if l.s3 != nil {
			return
		}
		cfg, err := awsx.LoadAWSConfig(ctx, l.s3Opts...)
		if err != nil {
			l.s3Err = fmt.Errorf("failed to load aws config: %w", err)
			return
		}
		l.s3 = awsx.NewS3(cfg, awsx.WithEndpoint(l.endpoint))
	})
	return l.s3, l.s3Err
}
