// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/diffai/internal/options"
)

// optionFlags maps comparison flags to their options.Build keys.
var optionFlags = map[string]string{
	"epsilon":           options.KeyEpsilon,
	"array-id-key":      options.KeyArrayIDKey,
	"ignore-keys-regex": options.KeyIgnoreKeysRegex,
	"path-filter":       options.KeyPathFilter,
	"output":            options.KeyOutputFormat,
}

// NewOptionFlags returns the flags that feed options.Build. Values come from
// the command line or DIFFAI_* environment variables; config file defaults
// are merged later from the options section.
func NewOptionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:    "epsilon",
			Aliases: []string{"e"},
			Usage:   "tolerance for numeric comparison",
			Sources: cli.EnvVars("DIFFAI_EPSILON"),
		},
		&cli.StringFlag{
			Name:    "array-id-key",
			Aliases: []string{"k"},
			Usage:   "match array elements by this object key",
			Sources: cli.EnvVars("DIFFAI_ARRAY_ID_KEY"),
		},
		&cli.StringFlag{
			Name:    "ignore-keys-regex",
			Aliases: []string{"i"},
			Usage:   "skip object keys matching this regular expression",
			Sources: cli.EnvVars("DIFFAI_IGNORE_KEYS_REGEX"),
		},
		&cli.StringFlag{
			Name:    "path-filter",
			Aliases: []string{"p"},
			Usage:   "only report paths containing this text",
			Sources: cli.EnvVars("DIFFAI_PATH_FILTER"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (diffai, json, yaml)",
			Sources: cli.EnvVars("DIFFAI_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
	}
}

// NewGlobalFlags returns the presentation flags shared by every diff command.
// When cfgFile is set, each flag also reads <ns>.<flag> and then <flag> from
// it.
func NewGlobalFlags(ns string, cfgFile string) []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output on a terminal",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:  "delta",
			Usage: "print a structural delta of the two inputs before the results",
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of result fields to sort by",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "print a count of results per kind after the results",
			Value: false,
		},
	}

	if cfgFile == "" {
		return flags
	}
	for _, f := range flags {
		switch flag := f.(type) {
		case *cli.BoolFlag:
			flag.Sources = configSources(ns, flag.Name, cfgFile)
		case *cli.StringFlag:
			flag.Sources = configSources(ns, flag.Name, cfgFile)
		}
	}
	return flags
}

// NewS3Flags returns the flags used to reach s3:// inputs.
func NewS3Flags(ns string, cfgFile string) []cli.Flag {
	flags := []*cli.StringFlag{
		{
			Name:    "profile",
			Usage:   "AWS shared config profile for s3:// inputs",
			Sources: cli.EnvVars("AWS_PROFILE"),
		},
		{
			Name:    "region",
			Usage:   "AWS region for s3:// inputs",
			Sources: cli.EnvVars("AWS_REGION", "AWS_DEFAULT_REGION"),
		},
		{
			Name:    "s3-endpoint",
			Usage:   "custom S3 endpoint URL, e.g. a local object store",
			Sources: cli.EnvVars("DIFFAI_S3_ENDPOINT"),
		},
	}

	out := make([]cli.Flag, len(flags))
	for i, flag := range flags {
		if cfgFile != "" {
			flag = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, flag)
		}
		out[i] = flag
	}
	return out
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, flag.Name, path).Chain...)
	return flag
}

func configSources(ns, name, path string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	)
}
