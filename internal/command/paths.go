// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/diffai/internal/aws"
	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/diffai"
	"github.com/tfctl/diffai/internal/loader"
	"github.com/tfctl/diffai/internal/meta"
	"github.com/tfctl/diffai/internal/picker"
)

// ErrNotInteractive is returned by --pick without a terminal on stdin.
var ErrNotInteractive = errors.New("--pick needs an interactive terminal")

// pathsCommandAction is the action handler for the "paths" subcommand. It
// loads two files, directories or s3:// URIs, or lets the user pick two files
// under a directory with --pick.
func pathsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.SetNamespace("paths")

	args := cmd.Args().Slice()
	if dir := cmd.String("pick"); dir != "" {
		picked, err := pickPaths(m, dir)
		if err != nil {
			return err
		}
		if picked == nil {
			log.Debug("picker cancelled")
			return nil
		}
		args = picked
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: paths needs OLD and NEW, got %d argument(s)", ErrUsage, len(args))
	}

	opts, err := BuildOptions(cmd)
	if err != nil {
		return err
	}

	oldV, newV, err := diffai.LoadPair(ctx, args[0], args[1], loaderOptions(cmd)...)
	if err != nil {
		return err
	}

	results, err := diffai.Compare(oldV, newV, opts)
	if err != nil {
		return err
	}

	return Emit(cmd, oldV, newV, results, opts)
}

// pickPaths runs the picker over dir. A nil slice means the user quit.
func pickPaths(m meta.Meta, dir string) ([]string, error) {
	in := m.In()
	if m.Stdin == nil && !isTerminal(in) {
		return nil, ErrNotInteractive
	}

	items, err := picker.Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: %s holds fewer than two files", ErrUsage, dir)
	}

	chosen, err := picker.SelectFiles(items, in, m.Out())
	if err != nil || len(chosen) != 2 {
		return nil, err
	}
	return []string{chosen[0].Path, chosen[1].Path}, nil
}

func loaderOptions(cmd *cli.Command) []loader.Option {
	var awsOpts []awsx.Option
	if p := cmd.String("profile"); p != "" {
		awsOpts = append(awsOpts, awsx.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		awsOpts = append(awsOpts, awsx.WithRegion(r))
	}
	// s3.max_attempts in the config file sets the retry budget per request.
	if n, _ := config.GetFloat("s3.max_attempts", 0); n > 0 {
		awsOpts = append(awsOpts, awsx.WithMaxAttempts(int(n)))
	}
	return []loader.Option{
		loader.WithAWS(awsOpts...),
		loader.WithS3Endpoint(cmd.String("s3-endpoint")),
	}
}

// pathsCommandBuilder constructs the "paths" subcommand.
func pathsCommandBuilder(m meta.Meta) *cli.Command {
	flags := append(NewOptionFlags(), NewGlobalFlags("paths", m.Config.Source)...)
	flags = append(flags, NewS3Flags("paths", m.Config.Source)...)

	return &cli.Command{
		Name:  "paths",
		Usage: "compare two model, tensor or config files",
		UsageText: "diffai paths [options] OLD NEW\n" +
			"diffai paths --pick DIR\n\n" +
			"OLD and NEW are files, directories or s3:// URIs. Supported formats:\n" +
			".json .yaml .yml .hcl .tfvars .npy .safetensors",
		Metadata: map[string]any{"meta": m},
		Flags: append(flags, &cli.StringFlag{
			Name:  "pick",
			Usage: "interactively pick two files under this directory",
		}),
		Action: pathsCommandAction,
	}
}
