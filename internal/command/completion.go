// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/diffai/internal/meta"
)

const bashCompletionScript = `# bash completion for diffai
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_diffai()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff paths format completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local options="--epsilon -e --array-id-key -k --ignore-keys-regex -i --path-filter -p --output -o"
    local common="$options --color -c --delta --filter -f --sort -s --summary"

    case "$cmd" in
        diff)
            local opts="$common"
            ;;
        paths)
            local opts="$common --pick --profile --region --s3-endpoint"
            ;;
        format)
            local opts="--output -o"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "diffai json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--pick" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -o filenames -F _diffai diffai
`

const zshCompletionScript = `#compdef diffai

_diffai() {
  local -a cmds
  cmds=(
    'diff:compare two JSON/YAML documents'
    'paths:compare two model, tensor or config files'
    'format:render saved JSON results'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-e --epsilon)'{-e,--epsilon}'[numeric tolerance]:epsilon'
  '(-k --array-id-key)'{-k,--array-id-key}'[array element id key]:key'
  '(-i --ignore-keys-regex)'{-i,--ignore-keys-regex}'[ignored key regex]:regex'
  '(-p --path-filter)'{-p,--path-filter}'[path filter]:text'
  '(-o --output)'{-o,--output}'[output format]:format:(diffai json yaml)'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--delta[print structural delta]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-s --sort)'{-s,--sort}'[sort fields]:fields'
  '--summary[print per-kind counts]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'diffai commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C $common '*:file:_files'
      ;;
    paths)
      _arguments -C \
        $common \
        '--pick[pick two files]:directory:_directories' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--s3-endpoint[S3 endpoint URL]:url' \
        '*:file:_files'
      ;;
    format)
      _arguments -C \
        '(-o --output)'{-o,--output}'[output format]:format:(diffai json yaml)' \
        '1:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _diffai diffai
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	w := m.Out()

	shell := cmd.Args().First()
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(m.Err(), "usage: diffai completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "diffai completion [bash|zsh]",
		Metadata:  map[string]any{"meta": m},
		Action:    completionCommandAction,
	}
}
