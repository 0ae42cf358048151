// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/value"
)

// ErrDeltaShape is returned by Delta when the two roots are not both objects
// or both arrays.
var ErrDeltaShape = errors.New("delta needs two objects or two arrays")

// Delta renders a side-by-side ASCII delta of oldV and newV. Keys matched by
// opts.IgnoreKeysRegex are dropped from both sides first. An empty string
// means the two values are identical.
func Delta(oldV, newV value.Value, opts options.DiffOptions, coloring bool) (string, error) {
	log.Debugf(">> differ.Delta()")

	left, err := plain(strip(oldV, opts))
	if err != nil {
		return "", err
	}
	right, err := plain(strip(newV, opts))
	if err != nil {
		return "", err
	}

	differ := gojsondiff.New()

	var delta gojsondiff.Diff
	switch l := left.(type) {
	case map[string]interface{}:
		r, ok := right.(map[string]interface{})
		if !ok {
			return "", ErrDeltaShape
		}
		delta = differ.CompareObjects(l, r)
	case []interface{}:
		r, ok := right.([]interface{})
		if !ok {
			return "", ErrDeltaShape
		}
		delta = differ.CompareArrays(l, r)
	default:
		return "", ErrDeltaShape
	}

	if !delta.Modified() {
		return "", nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	}

	out, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return "", fmt.Errorf("failed to format delta: %w", err)
	}
	return out, nil
}

// plain converts v into the encoding/json tree gojsondiff walks.
func plain(v value.Value) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func strip(v value.Value, opts options.DiffOptions) value.Value {
	if opts.IgnoreKeysRegex == nil {
		return v
	}
	switch v.Kind() {
	case value.KindObject:
		members := make([]value.Member, 0, v.Len())
		for _, m := range v.Members() {
			if opts.Ignored(m.Key) {
				continue
			}
			members = append(members, value.Field(m.Key, strip(m.Value, opts)))
		}
		return value.Object(members...)
	case value.KindArray:
		items := make([]value.Value, v.Len())
		for i, item := range v.Items() {
			items[i] = strip(item, opts)
		}
		return value.Array(items...)
	}
	return v
}
