// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/diffai"
	"github.com/tfctl/diffai/internal/meta"
	"github.com/tfctl/diffai/internal/value"
)

// formatCommandAction is the action handler for the "format" subcommand. It
// re-renders a JSON array of result records, as written by --output json,
// from a file or stdin.
func formatCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.SetNamespace("format")

	var (
		data []byte
		err  error
	)
	switch src := cmd.Args().First(); src {
	case "", "-":
		data, err = io.ReadAll(m.In())
	default:
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}

	host, err := value.ParseJSON(data)
	if err != nil {
		return err
	}

	var records []any
	switch h := host.(type) {
	case []any:
		records = h
	default:
		records = []any{h}
	}

	format := cmd.String("output")
	if format == "" {
		format, _ = config.GetString("options.output_format", "diffai")
	}

	out, err := diffai.FormatOutput(records, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.Out(), out)
	return nil
}

// formatCommandBuilder constructs the "format" subcommand.
func formatCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "render saved JSON results as diffai text, JSON or YAML",
		UsageText: "diffai format [--output FORMAT] [FILE|-]",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format (diffai, json, yaml)",
				Sources: cli.EnvVars("DIFFAI_OUTPUT"),
				Validator: func(value string) error {
					return FlagValidators(value, OutputValidator)
				},
			},
		},
		Action: formatCommandAction,
	}
}
