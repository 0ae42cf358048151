// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/diffai/internal/config"
)

// Palette holds the foreground colors of the diffai text markers.
type Palette struct {
	Added   color.Color
	Removed color.Color
	Changed color.Color
	Warning color.Color
}

// DefaultPalette returns colors readable on a dark or light background.
func DefaultPalette(isDark bool) Palette {
	pick := func(light, dark string) color.Color {
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}
	return Palette{
		Added:   pick("#1a7f37", "#3fb950"),
		Removed: pick("#cf222e", "#f85149"),
		Changed: pick("#0088a0", "#00c8f0"),
		Warning: pick("#b08800", "#f6be00"),
	}
}

// LoadPalette resolves each color from config colors.<name> and falls back to
// a default chosen by the terminal background.
func LoadPalette() Palette {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
	return resolvePalette("colors", DefaultPalette(isDark))
}

// resolvePalette uses the explicit color if found in the config and leaves it
// up to the user to choose colors that suit their theme.
func resolvePalette(key string, defaults Palette) Palette {
	resolveColor := func(name string, fallback color.Color) color.Color {
		c, err := config.GetString(key + "." + name)
		if err == nil && c != "" {
			return lipgloss.Color(c)
		}
		return fallback
	}

	return Palette{
		Added:   resolveColor("added", defaults.Added),
		Removed: resolveColor("removed", defaults.Removed),
		Changed: resolveColor("changed", defaults.Changed),
		Warning: resolveColor("warning", defaults.Warning),
	}
}

func (p Palette) styles() map[string]lipgloss.Style {
	base := lipgloss.NewStyle()
	return map[string]lipgloss.Style{
		MarkAdded:   base.Foreground(p.Added),
		MarkRemoved: base.Foreground(p.Removed),
		MarkChanged: base.Foreground(p.Changed),
		MarkWarning: base.Foreground(p.Warning).Bold(true),
	}
}
