// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/meta"
)

// InitApp loads the user configuration, namespaced by the subcommand in
// args[1], and builds the command tree on the process streams.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// args[1] is the subcommand and also the namespace used when retrieving
	// config values. It could be -h/--help, so ignore it if it is a flag.
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		config.SetNamespace(args[1])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}

	return NewApp(meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}), nil
}

// NewApp builds the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "diffai",
		Usage: "structural diff for AI/ML models, tensors and configs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "diffai version info",
				HideDefault: true,
			},
		},
		Reader:    m.In(),
		Writer:    m.Out(),
		ErrWriter: m.Err(),
	}

	app.Commands = append(app.Commands,
		diffCommandBuilder(m),
		pathsCommandBuilder(m),
		formatCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
