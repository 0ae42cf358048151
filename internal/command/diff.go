// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/diffai"
	"github.com/tfctl/diffai/internal/loader"
	"github.com/tfctl/diffai/internal/meta"
	"github.com/tfctl/diffai/internal/value"
)

// ErrUsage reports missing or conflicting positional arguments.
var ErrUsage = errors.New("usage error")

// diffCommandAction is the action handler for the "diff" subcommand. Each
// side is "-" for stdin, a JSON/YAML/HCL file, or an inline JSON document.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.SetNamespace("diff")

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("%w: diff needs OLD and NEW, got %d argument(s)", ErrUsage, len(args))
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: only one side can read stdin", ErrUsage)
	}

	opts, err := BuildOptions(cmd)
	if err != nil {
		return err
	}

	oldV, err := readInput(m, args[0])
	if err != nil {
		return err
	}
	newV, err := readInput(m, args[1])
	if err != nil {
		return err
	}

	// Canonical values pass through Lower untouched.
	results, err := diffai.Compare(oldV, newV, opts)
	if err != nil {
		return err
	}

	return Emit(cmd, oldV, newV, results, opts)
}

// readInput resolves one diff operand.
func readInput(m meta.Meta, arg string) (value.Value, error) {
	if arg == "-" {
		data, err := io.ReadAll(m.In())
		if err != nil {
			return value.Value{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return parseDocument(data)
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return value.Value{}, err
		}
		if loader.Supported(arg) {
			return loader.Parse(arg, data)
		}
		return parseDocument(data)
	}

	v, err := value.ParseJSONValue([]byte(arg))
	if err != nil {
		return value.Value{}, fmt.Errorf("%q is neither a readable file nor inline JSON", arg)
	}
	return v, nil
}

// parseDocument reads JSON, falling back to YAML for anything else.
func parseDocument(data []byte) (value.Value, error) {
	if v, err := value.ParseJSONValue(data); err == nil {
		return v, nil
	}
	return loader.ParseYAML("-", data)
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two JSON/YAML documents",
		UsageText: "diffai diff [options] OLD NEW\n\nOLD and NEW are files, inline JSON, or - for stdin.",
		Metadata:  map[string]any{"meta": m},
		Flags: append(NewOptionFlags(),
			NewGlobalFlags("diff", m.Config.Source)...),
		Action: diffCommandAction,
	}
}
