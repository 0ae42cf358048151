// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/tensor"
	"github.com/tfctl/diffai/internal/value"
)

// ErrInvalidEpsilon is returned when the epsilon option is negative or NaN.
var ErrInvalidEpsilon = errors.New("epsilon must be a non-negative number")

// SignificantChange is the |Δmean|+|Δstd| above which a tensor stats change
// also reports WeightSignificantChange.
const SignificantChange = 0.1

// Compare reports the differences between oldV and newV in walk order.
func Compare(oldV, newV value.Value, opts options.DiffOptions) ([]result.DiffResult, error) {
	c := &comparer{opts: opts}
	if opts.Epsilon != nil {
		if *opts.Epsilon < 0 || math.IsNaN(*opts.Epsilon) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEpsilon, *opts.Epsilon)
		}
		c.eps = *opts.Epsilon
	}

	c.walk("", "", oldV, newV)
	log.Debugf("differ: %d raw results", len(c.out))

	if opts.PathFilter == nil || *opts.PathFilter == "" {
		return c.out, nil
	}

	filtered := c.out[:0]
	for _, r := range c.out {
		if strings.Contains(r.Location(), *opts.PathFilter) {
			filtered = append(filtered, r)
		}
	}
	log.Debugf("differ: %d results after path filter %q", len(filtered), *opts.PathFilter)
	return filtered, nil
}

type comparer struct {
	opts options.DiffOptions
	eps  float64
	out  []result.DiffResult
}

func (c *comparer) emit(r result.DiffResult) {
	c.out = append(c.out, r)
}

// walk compares a and b at path. key is the nearest enclosing object key and
// drives the ML-aware classification of scalar changes.
func (c *comparer) walk(path, key string, a, b value.Value) {
	if at, ok := tensor.Recognize(a); ok {
		if bt, ok := tensor.Recognize(b); ok {
			c.tensor(path, at, bt)
			c.members(path, a, b, func(k string) bool { return tensorFields[k] || c.opts.Ignored(k) })
			return
		}
	}

	if a.Kind() != b.Kind() {
		c.emit(result.TypeChanged{Path: path, OldValue: a, NewValue: b})
		return
	}

	switch a.Kind() {
	case value.KindObject:
		c.object(path, a, b)
	case value.KindArray:
		c.array(path, key, a, b)
	case value.KindNumber:
		if !c.numberEqual(a, b) {
			c.scalar(path, key, a, b)
		}
	default:
		if !a.Equal(b) {
			c.scalar(path, key, a, b)
		}
	}
}

// tensorFields are the members summarized by tensor results. Any other member
// of a tensor object is compared like a plain object member.
var tensorFields = map[string]bool{
	"shape": true, "dtype": true, "data": true,
	"mean": true, "std": true, "min": true, "max": true, "element_count": true,
}

func (c *comparer) object(path string, a, b value.Value) {
	c.members(path, a, b, c.opts.Ignored)
}

// members reports removed, changed and added members of two objects, skipping
// keys for which skip is true.
func (c *comparer) members(path string, a, b value.Value, skip func(string) bool) {
	bIndex := index(b)
	aIndex := index(a)
	bm := b.Members()

	for _, m := range a.Members() {
		if _, ok := bIndex[m.Key]; ok || skip(m.Key) {
			continue
		}
		c.emit(result.Removed{Path: childPath(path, m.Key), Value: m.Value})
	}

	for _, m := range a.Members() {
		if skip(m.Key) {
			continue
		}
		if j, ok := bIndex[m.Key]; ok {
			c.walk(childPath(path, m.Key), m.Key, m.Value, bm[j].Value)
		}
	}

	for _, m := range bm {
		if _, ok := aIndex[m.Key]; ok || skip(m.Key) {
			continue
		}
		c.emit(result.Added{Path: childPath(path, m.Key), Value: m.Value})
	}
}

func index(obj value.Value) map[string]int {
	out := make(map[string]int, obj.Len())
	for i, m := range obj.Members() {
		out[m.Key] = i
	}
	return out
}

func (c *comparer) array(path, key string, a, b value.Value) {
	if c.opts.ArrayIDKey != nil {
		if aIDs, ok := ids(a, *c.opts.ArrayIDKey); ok {
			if bIDs, ok := ids(b, *c.opts.ArrayIDKey); ok {
				c.arrayByID(path, key, a, b, aIDs, bIDs)
				return
			}
		}
	}

	ai, bi := a.Items(), b.Items()
	n := min(len(ai), len(bi))
	for i := 0; i < n; i++ {
		c.walk(indexPath(path, i), key, ai[i], bi[i])
	}
	for i := n; i < len(ai); i++ {
		c.emit(result.Removed{Path: indexPath(path, i), Value: ai[i]})
	}
	for i := n; i < len(bi); i++ {
		c.emit(result.Added{Path: indexPath(path, i), Value: bi[i]})
	}
}

func (c *comparer) arrayByID(path, key string, a, b value.Value, aIDs, bIDs []string) {
	idKey := *c.opts.ArrayIDKey
	bIndex := make(map[string]int, len(bIDs))
	for i, id := range bIDs {
		bIndex[id] = i
	}
	aIndex := make(map[string]int, len(aIDs))
	for i, id := range aIDs {
		aIndex[id] = i
	}

	ai, bi := a.Items(), b.Items()
	for i, id := range aIDs {
		if _, ok := bIndex[id]; !ok {
			c.emit(result.Removed{Path: idPath(path, idKey, id), Value: ai[i]})
		}
	}
	for i, id := range aIDs {
		if j, ok := bIndex[id]; ok {
			c.walk(idPath(path, idKey, id), key, ai[i], bi[j])
		}
	}
	for j, id := range bIDs {
		if _, ok := aIndex[id]; !ok {
			c.emit(result.Added{Path: idPath(path, idKey, id), Value: bi[j]})
		}
	}
}

// ids returns the rendered id of every element, or false when an element is
// not an object carrying idKey or two elements share an id.
func ids(arr value.Value, idKey string) ([]string, bool) {
	out := make([]string, 0, arr.Len())
	seen := make(map[string]bool, arr.Len())
	for _, item := range arr.Items() {
		if item.Kind() != value.KindObject {
			return nil, false
		}
		idV, ok := item.Get(idKey)
		if !ok {
			return nil, false
		}
		id := render(idV)
		if seen[id] {
			return nil, false
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, true
}

func (c *comparer) numberEqual(a, b value.Value) bool {
	if ai, ok := a.AsInt(); ok {
		if bi, ok := b.AsInt(); ok && c.eps == 0 {
			return ai == bi
		}
	}
	af, _ := a.AsFloat()
	bf, _ := b.AsFloat()
	return c.floatEqual(af, bf)
}

func (c *comparer) floatEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= c.eps
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func idPath(parent, idKey, id string) string {
	return parent + "[" + idKey + "=" + id + "]"
}

// render prints an id value: strings bare, everything else as JSON.
func render(v value.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return v.Kind().String()
	}
	return string(b)
}
