// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package loader

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/diffai/internal/cacheutil"
	"github.com/tfctl/diffai/internal/tensor"
	"github.com/tfctl/diffai/internal/value"
)

func encode(t *testing.T, v value.Value) string {
	t.Helper()
	b, err := v.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}

func TestParseJSONKeepsOrder(t *testing.T) {
	v, err := Parse("cfg.JSON", []byte(`{"z": 1, "a": [1.5]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":[1.5]}`, encode(t, v))

	_, err = Parse("bad.json", []byte(`{`))
	assert.ErrorIs(t, err, value.ErrInvalidJSON)
}

func TestParseYAML(t *testing.T) {
	src := `
base: &base
  lr: 0.01
  optimizer: adam
model:
  <<: *base
  layers: [64, 32]
  dropout: .5
  name: ~
  enabled: yes
  seed: 0x10
`
	v, err := Parse("cfg.yml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t,
		`{"base":{"lr":0.01,"optimizer":"adam"},"model":{"lr":0.01,"optimizer":"adam","layers":[64,32],"dropout":0.5,"name":null,"enabled":"yes","seed":16}}`,
		encode(t, v))

	empty, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.True(t, empty.IsNull())
}

func TestParseHCL(t *testing.T) {
	src := `
learning_rate = 0.001
epochs        = 10
name          = upper("resnet")
layers        = [64, 32]
tags          = { team = "ml", env = "dev" }

optimizer "adam" {
  beta1 = 0.9
}

scheduler {
  kind = "cosine"
}
`
	v, err := Parse("train.tfvars", []byte(src))
	require.NoError(t, err)
	assert.Equal(t,
		`{"learning_rate":0.001,"epochs":10,"name":"RESNET","layers":[64,32],"tags":{"env":"dev","team":"ml"},"optimizer":{"adam":{"beta1":0.9}},"scheduler":{"kind":"cosine"}}`,
		encode(t, v))

	_, err = Parse("bad.hcl", []byte(`x = `))
	assert.Error(t, err)

	_, err = Parse("ref.hcl", []byte(`x = var.y`))
	assert.Error(t, err)
}

func npyBytes(descr, shape string, payload []byte) []byte {
	header := "{'descr': '" + descr + "', 'fortran_order': False, 'shape': (" + shape + "), }"
	pad := 64 - (10+len(header)+1)%64
	header += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	buf.Write(payload)
	return buf.Bytes()
}

func floats32(order binary.ByteOrder, fs ...float32) []byte {
	var buf bytes.Buffer
	for _, f := range fs {
		binary.Write(&buf, order, f)
	}
	return buf.Bytes()
}

func TestParseNPY(t *testing.T) {
	v, err := Parse("w.npy", npyBytes("<f4", "2, 2", floats32(binary.LittleEndian, 1, 2, 3, 4)))
	require.NoError(t, err)

	tn, ok := tensor.Recognize(v)
	require.True(t, ok)
	assert.Equal(t, []int64{2, 2}, tn.Stats.Shape)
	assert.Equal(t, "float32", tn.Stats.Dtype)
	assert.Equal(t, int64(4), tn.Stats.ElementCount)
	assert.InDelta(t, 2.5, tn.Stats.Mean, 1e-9)

	v, err = Parse("b.npy", npyBytes(">f4", "3,", floats32(binary.BigEndian, -1, 0, 1)))
	require.NoError(t, err)
	tn, _ = tensor.Recognize(v)
	assert.Equal(t, -1.0, tn.Stats.Min)
	assert.Equal(t, 1.0, tn.Stats.Max)

	_, err = Parse("s.npy", npyBytes("<U8", "1,", make([]byte, 32)))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("short.npy", npyBytes("<f8", "4,", make([]byte, 8)))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Parse("junk.npy", []byte("not numpy at all"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func safetensorsBytes(header string, payload []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(payload)
	return buf.Bytes()
}

func TestParseSafetensors(t *testing.T) {
	payload := append(floats32(binary.LittleEndian, 1, 3), 0x00, 0x3c, 0x00, 0xc0) // F16 1.0, -2.0
	header := `{"__metadata__":{"format":"pt"},"w":{"dtype":"F32","shape":[2],"data_offsets":[0,8]},"h":{"dtype":"F16","shape":[2],"data_offsets":[8,12]}}`

	v, err := Parse("model.safetensors", safetensorsBytes(header, payload))
	require.NoError(t, err)

	keys := []string{}
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"__metadata__", "w", "h"}, keys)

	w, _ := v.Get("w")
	tw, ok := tensor.Recognize(w)
	require.True(t, ok)
	assert.Equal(t, 2.0, tw.Stats.Mean)
	assert.Equal(t, "F32", tw.Stats.Dtype)

	h, _ := v.Get("h")
	th, ok := tensor.Recognize(h)
	require.True(t, ok)
	assert.Equal(t, -0.5, th.Stats.Mean)

	bad := `{"w":{"dtype":"F32","shape":[3],"data_offsets":[0,8]}}`
	_, err = Parse("bad.safetensors", safetensorsBytes(bad, payload))
	assert.ErrorIs(t, err, ErrMalformed)

	f8 := `{"w":{"dtype":"F8_E4M3","shape":[1],"data_offsets":[0,1]}}`
	_, err = Parse("f8.safetensors", safetensorsBytes(f8, payload))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("tiny.safetensors", []byte{1, 2})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHalfToFloat32(t *testing.T) {
	assert.Equal(t, float32(1), halfToFloat32(0x3c00))
	assert.Equal(t, float32(-2), halfToFloat32(0xc000))
	assert.Equal(t, float32(math.Ldexp(1, -24)), halfToFloat32(0x0001))
	assert.True(t, math.IsInf(float64(halfToFloat32(0x7c00)), 1))
	assert.Equal(t, float32(0), halfToFloat32(0))
}

func TestParseUnsupported(t *testing.T) {
	for _, name := range []string{"model.pt", "weights.mat", "README"} {
		_, err := Parse(name, []byte("x"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"x": 1}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.yaml"), []byte("y: 2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.json"), []byte("{}"), 0o600))

	v, err := New().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, `{"b.json":{"x":1},"sub/a.yaml":{"y":2}}`, encode(t, v))

	f, err := New().Load(context.Background(), filepath.Join(dir, "b.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, encode(t, f))

	_, err = New().Load(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type memS3 map[string]string

func (m memS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	body, ok := m[awsv2.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (m memS3) ListObjectsV2(_ context.Context, in *s3v2.ListObjectsV2Input, _ ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	out := &s3v2.ListObjectsV2Output{IsTruncated: awsv2.Bool(false)}
	for k := range m {
		if strings.HasPrefix(k, awsv2.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: awsv2.String(k)})
		}
	}
	return out, nil
}

func TestLoadS3(t *testing.T) {
	api := memS3{
		"runs/1/config.json": `{"lr": 0.1}`,
		"runs/1/a/b.yaml":    `k: v`,
		"runs/1/log.txt":     `ignored`,
	}
	l := New(WithObjectAPI(api))

	v, err := l.Load(context.Background(), "s3://bucket/runs/1/config.json")
	require.NoError(t, err)
	assert.Equal(t, `{"lr":0.1}`, encode(t, v))

	v, err = l.Load(context.Background(), "s3://bucket/runs/1/")
	require.NoError(t, err)
	assert.Equal(t, `{"a/b.yaml":{"k":"v"},"config.json":{"lr":0.1}}`, encode(t, v))

	_, err = l.Load(context.Background(), "s3://bucket/runs/1/missing.json")
	assert.Error(t, err)
}

// taggedS3 lists entity tags and counts body fetches.
type taggedS3 struct {
	memS3
	etag string
	gets int
}

func (m *taggedS3) GetObject(ctx context.Context, in *s3v2.GetObjectInput, opts ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	m.gets++
	return m.memS3.GetObject(ctx, in, opts...)
}

func (m *taggedS3) ListObjectsV2(ctx context.Context, in *s3v2.ListObjectsV2Input, opts ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	out, err := m.memS3.ListObjectsV2(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	for i := range out.Contents {
		out.Contents[i].ETag = awsv2.String(`"` + m.etag + `"`)
	}
	return out, nil
}

func TestLoadS3PrefixUsesCache(t *testing.T) {
	t.Setenv(cacheutil.EnvDir, t.TempDir())
	t.Setenv(cacheutil.EnvEnabled, "")

	api := &taggedS3{memS3: memS3{"ckpt/config.json": `{"lr": 0.1}`}, etag: "v1"}

	for range 2 {
		v, err := New(WithObjectAPI(api)).Load(context.Background(), "s3://bucket/ckpt/")
		require.NoError(t, err)
		assert.Equal(t, `{"config.json":{"lr":0.1}}`, encode(t, v))
	}
	assert.Equal(t, 1, api.gets)

	api.memS3["ckpt/config.json"] = `{"lr": 0.2}`
	api.etag = "v2"
	v, err := New(WithObjectAPI(api)).Load(context.Background(), "s3://bucket/ckpt/")
	require.NoError(t, err)
	assert.Equal(t, `{"config.json":{"lr":0.2}}`, encode(t, v))
	assert.Equal(t, 2, api.gets)

	_, err = New(WithObjectAPI(api), WithoutCache()).Load(context.Background(), "s3://bucket/ckpt/")
	require.NoError(t, err)
	assert.Equal(t, 3, api.gets)
}
