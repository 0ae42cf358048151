// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/diffai/internal/loader"
)

// Item is one selectable file.
type Item struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Scan lists the loadable files under root, sorted by path. Hidden entries
// and files without a supported extension are skipped.
func Scan(root string) ([]Item, error) {
	var items []Item
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !loader.Supported(p) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		items = append(items, Item{Path: p, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// SelectFiles runs the picker on in/out and returns the two chosen items in
// selection order, or nil when the user quits.
func SelectFiles(items []Item, in io.Reader, out io.Writer) ([]Item, error) {
	p := tea.NewProgram(model{items: items}, tea.WithInput(in), tea.WithOutput(out))
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}
	return m.(model).selected, nil
}

type model struct {
	items    []Item
	cursor   int
	selected []Item
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if len(m.items) == 0 {
				break
			}
			if i := m.indexOf(m.items[m.cursor]); i >= 0 {
				m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			} else if len(m.selected) < 2 {
				m.selected = append(m.selected, m.items[m.cursor])
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("Select two files to compare:\n\n")
	for i, it := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.indexOf(it) >= 0 {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %-40s %8s %s\n", cursor, mark, it.Path, humanize.Bytes(uint64(it.Size)), humanize.Time(it.ModTime))
	}
	b.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

func (m model) indexOf(it Item) int {
	for i, s := range m.selected {
		if s.Path == it.Path {
			return i
		}
	}
	return -1
}
