// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a field name with an optional
// "[N]" index or a bare "[]".
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)?\])?$`)

// Driller navigates JSON using a dot path. A segment may index into an array
// ("shape[1]"). An array reached without an index collapses to its single
// element when it has exactly one, otherwise the whole array is returned.
// Invalid segments and out of range indexes yield an empty result.
func Driller(jsonData string, path string) gjson.Result {
	return Drill(gjson.Parse(jsonData), path)
}

// Drill is Driller over an already parsed document.
func Drill(current gjson.Result, path string) gjson.Result {
	if path == "" {
		return current
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{}
		}

		index := -1
		if matches[3] != "" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return gjson.Result{}
			}
			index = i
		}

		val := current.Get(matches[1])
		if !val.Exists() {
			return gjson.Result{}
		}

		if val.IsArray() {
			arr := val.Array()
			switch {
			case index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
			case index < len(arr):
				val = arr[index]
			default:
				return gjson.Result{}
			}
		} else if index >= 0 {
			return gjson.Result{}
		}

		current = val
	}

	return current
}
