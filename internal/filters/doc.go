// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects diff results with --filter expressions.
//
// Each expression is evaluated against the result's encoded record, the same
// object the json output emits, so keys are record fields: "type", "path",
// "value", "old_value", "new_stats.mean", "old_shape[0]" and so on. Nested
// fields are reached with dotted paths (see the driller package).
//
// Operators:
//
//   - = : exact match, numeric when the field is a number (negate with !=)
//   - ~ : case-insensitive equality (negate with !~)
//   - ^ : prefix match (negate with !^)
//   - < : less than, numeric or lexical
//   - > : greater than, numeric or lexical
//   - @ : contains, substring for strings and membership for arrays (negate with !@)
//   - / : regular expression match (negate with !/)
//
// Examples:
//
//   - "type=Modified" : only value modifications
//   - "path^layers." : results under the layers object
//   - "new_value>0.5" : results whose new value exceeds 0.5
//   - "type!~added,path/weight$" : everything but additions whose path ends in weight
//
// Expressions are combined with a comma, or with the delimiter named by
// DIFFAI_FILTER_DELIM when values contain commas. A result must match every
// expression. Malformed expressions are logged and skipped so the rest of the
// set still applies. A record without the filtered field never matches.
package filters
