// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"

	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
)

// SortResults orders results in place by a comma separated list of encoded
// record fields, e.g. "type,-path". A leading "-" sorts descending and a
// leading "!" makes string comparison case sensitive. Numbers compare
// numerically; anything else compares by its compact JSON text. The sort is
// stable, so an empty spec keeps the diff order.
func SortResults(results []result.DiffResult, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}
	fields := strings.Split(spec, ",")

	records := make([]value.Value, len(results))
	for i, r := range results {
		records[i] = result.Encode(r)
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue, _ := records[order[one]].Get(field)
			twoValue, _ := records[order[two]].Get(field)

			oneNum, oneOk := oneValue.AsFloat()
			twoNum, twoOk := twoValue.AsFloat()
			if oneOk && twoOk {
				if oneNum != twoNum {
					return (oneNum < twoNum) == ascending
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := fieldString(oneValue)
			twoStr := fieldString(twoValue)
			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				return (oneStr < twoStr) == ascending
			}
		}
		return false
	})

	sorted := make([]result.DiffResult, len(results))
	for i, idx := range order {
		sorted[i] = results[idx]
	}
	copy(results, sorted)
}

func fieldString(v value.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	if v.IsNull() {
		return ""
	}
	return compact(v)
}
