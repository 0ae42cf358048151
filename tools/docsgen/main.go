// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes per-command reference pages for the diffai CLI from its
// command tree, so the docs never drift from the flags.
//
//	go run ./tools/docsgen <docs-dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/diffai/internal/command"
	"github.com/tfctl/diffai/internal/meta"
	"github.com/tfctl/diffai/internal/version"
)

type Subcommand struct {
	ID          string `yaml:"id"`
	Short       string `yaml:"short"`
	Description string `yaml:"description,omitempty"`
	Usage       string `yaml:"usage"`
	Flags       []Flag `yaml:"flags"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const markdownTmpl = `# diffai {{.ID}}

{{.Short}}

## Usage

    {{.Usage}}
{{- if .Description}}

{{.Description}}
{{- end}}

## Flags

| Flag | Description |
|------|-------------|
{{- range .Flags}}
| ` + "`{{.Syntax}}`" + ` | {{.Description}} |
{{- end}}

_diffai {{.Version}}, generated {{.Date}}_
`

const manTmpl = `.TH DIFFAI-{{.IDUpper}} 1 "{{.Date}}" "diffai {{.Version}}"
.SH NAME
diffai-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
.SH OPTIONS
{{- range .Flags}}
.TP
.B {{.Syntax}}
{{.Description}}
{{- end}}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	app := command.NewApp(meta.Meta{})
	subs := subcommands(app)

	types := []Outputs{
		{Template: markdownTmpl, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTmpl, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "diffai-", Suffix: ".1"},
	}

	date := time.Now().Format("January 2, 2006")
	for _, sub := range subs {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       date,
			Version:    version.Version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := render(t, metadata); err != nil {
				panic(err)
			}
		}
	}

	index, err := yaml.Marshal(map[string][]Subcommand{"subcommands": subs})
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(docs, "commands.yaml"), index, 0o644); err != nil { //nolint:mnd
		panic(err)
	}
}

func render(t Outputs, data TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil { //nolint:mnd
		return err
	}

	tmpl, err := template.New(data.ID).Parse(t.Template)
	if err != nil {
		return err
	}

	name := filepath.Join(t.Folder, t.Prefix+data.ID+t.Suffix)
	fmt.Println("Generating", name)
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// subcommands flattens the top level commands of app, flags sorted by name.
func subcommands(app *cli.Command) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}

		usage := cmd.UsageText
		if usage == "" {
			usage = strings.TrimSpace("diffai " + cmd.Name + " [options] " + cmd.ArgsUsage)
		}

		sub := Subcommand{
			ID:          cmd.Name,
			Short:       cmd.Usage,
			Description: cmd.Description,
			Usage:       usage,
		}
		for _, f := range cmd.Flags {
			sub.Flags = append(sub.Flags, describeFlag(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs
}

func describeFlag(f cli.Flag) Flag {
	names := f.Names()
	syntax := make([]string, len(names))
	for i, n := range names {
		if len(n) == 1 {
			syntax[i] = "-" + n
		} else {
			syntax[i] = "--" + n
		}
	}

	var usage string
	if u, ok := f.(interface{ GetUsage() string }); ok {
		usage = u.GetUsage()
	}

	return Flag{
		ID:          names[0],
		Syntax:      strings.Join(syntax, ", "),
		Description: usage,
	}
}
