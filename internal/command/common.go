// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/differ"
	"github.com/tfctl/diffai/internal/filters"
	"github.com/tfctl/diffai/internal/meta"
	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/output"
	"github.com/tfctl/diffai/internal/result"
	"github.com/tfctl/diffai/internal/value"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildOptions merges the config file options section with the comparison
// flags and builds DiffOptions. Flags that were set win over the file.
func BuildOptions(cmd *cli.Command) (options.DiffOptions, error) {
	cfg := map[string]any{}

	defaults, err := config.GetMap("options")
	if err != nil {
		return options.DiffOptions{}, err
	}
	for k, v := range defaults {
		cfg[k] = v
	}

	for flag, key := range optionFlags {
		if !cmd.IsSet(flag) {
			continue
		}
		if flag == "epsilon" {
			cfg[key] = cmd.Float(flag)
		} else {
			cfg[key] = cmd.String(flag)
		}
	}
	log.Debugf("options config: %v", cfg)

	return options.Build(cfg)
}

// Emit filters, sorts and renders results to the command's output. With
// --delta the structural delta of the inputs is printed first.
func Emit(cmd *cli.Command, oldV, newV value.Value, results []result.DiffResult, opts options.DiffOptions) error {
	m := GetMeta(cmd)
	w := m.Out()
	color := colorEnabled(cmd, w)

	if cmd.Bool("delta") {
		delta, err := differ.Delta(oldV, newV, opts, color)
		if err != nil {
			return err
		}
		if delta != "" {
			fmt.Fprintln(w, delta)
		}
	}

	results = filters.FilterResults(results, cmd.String("filter"))
	output.SortResults(results, cmd.String("sort"))

	out, err := output.Render(results, opts.Format(), output.WithColor(color))
	if err != nil {
		return fmt.Errorf("format error: %w", err)
	}
	fmt.Fprintln(w, out)

	if cmd.Bool("summary") {
		var p output.Palette
		if color {
			p = output.LoadPalette()
		}
		fmt.Fprintln(w, output.Summary(results, color, p))
	}
	return nil
}

// colorEnabled honors --color only when w is a terminal.
func colorEnabled(cmd *cli.Command, w io.Writer) bool {
	if !cmd.Bool("color") {
		return false
	}
	return isTerminal(w)
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
