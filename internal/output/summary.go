// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/diffai/internal/result"
)

// Summary renders a borderless two column table counting results per kind, in
// kind declaration order. Kinds with no results are omitted. When color is
// set, the header and warning rows are styled from the palette.
func Summary(results []result.DiffResult, color bool, p Palette) string {
	counts := map[result.Kind]int64{}
	for _, r := range results {
		counts[r.Kind()]++
	}

	var (
		kinds []result.Kind
		rows  [][]string
	)
	for _, k := range result.Kinds {
		if counts[k] == 0 {
			continue
		}
		kinds = append(kinds, k)
		rows = append(rows, []string{string(k), humanize.Comma(counts[k])})
	}
	rows = append(rows, []string{"Total", humanize.Comma(int64(len(results)))})

	var (
		headerStyle = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle   = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		warnStyle   = cellStyle
	)
	if color {
		headerStyle = headerStyle.Foreground(p.Changed)
		warnStyle = warnStyle.Foreground(p.Warning)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row < len(kinds) && isWarning(kinds[row]):
				style = warnStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2)
			}
			return style
		}).
		Headers("KIND", "COUNT").
		BorderHeader(false).
		Rows(rows...)

	return t.String()
}

func isWarning(k result.Kind) bool {
	return k == result.KindTypeChanged || k == result.KindWeightSignificantChange
}
