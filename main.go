// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tfctl/diffai/internal/cacheutil"
	"github.com/tfctl/diffai/internal/command"
	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/log"
	"github.com/tfctl/diffai/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the argument after them is positional.
var boolFlags = map[string]bool{
	"--color": true, "-c": true,
	"--delta":   true,
	"--summary": true,
	"--help":    true, "-h": true,
	"--version": true, "-v": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedup: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	// cache.clean is the age in hours past which cached S3 bodies are removed.
	if hours, _ := config.GetFloat("cache.clean", 0); hours > 0 {
		if err := cacheutil.Purge(int(hours)); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an explicit @set argument, found after the command,
// with the <command>.<set> string list from the config file. Each entry is
// split on whitespace.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			idx := 2 + i
			base := append(append([]string{}, args[:idx]...), args[idx+1:]...)
			return injectConfigSet(base, args[1]+"."+a[1:], idx)
		}
	}
	return args
}

// injectConfigSet splices the entries of the config string list at key into
// args at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key, nil)
	if err != nil {
		log.Warnf("ignoring set %s: %v", key, err)
		return args
	}
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops earlier occurrences of repeated flags so the last one
// wins, which lets command line flags override those expanded from a set.
// args[0] and args[1] are never touched and order is otherwise preserved.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		name  string
		parts []string
	}

	var tokens []token
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if !isFlag(a) {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		t := token{name: name, parts: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(rest) && !isFlag(rest[i+1]) {
			t.parts = append(t.parts, rest[i+1])
			i++
		}
		tokens = append(tokens, t)
	}

	last := map[string]int{}
	for i, t := range tokens {
		if t.name != "" {
			last[t.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, t := range tokens {
		if t.name != "" && last[t.name] != i {
			continue
		}
		out = append(out, t.parts...)
	}
	return out
}

// isFlag reports whether a looks like a flag. "-" (stdin) and negative
// numbers are values.
func isFlag(a string) bool {
	if len(a) < 2 || a[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(a, 64); err == nil {
		return false
	}
	return true
}
