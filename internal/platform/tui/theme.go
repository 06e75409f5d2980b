package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles for the viewer.
type Theme struct {
	// Grid cell styles
	Empty    lipgloss.Style
	Wall     lipgloss.Style
	Obstacle lipgloss.Style
	Trail    lipgloss.Style
	Guard    lipgloss.Style
	Start    lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style

	// End-of-patrol banners
	Exited lipgloss.Style
	Looped lipgloss.Style

	// Picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) Theme {
	switch name {
	case "neon":
		return NeonTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Wall:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		Obstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true), // Orange
		Trail:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),             // Blue
		Guard:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Yellow
		Start:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),             // Green

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Exited: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Looped: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NeonTheme returns a high-contrast theme.
func NeonTheme() Theme {
	t := DefaultTheme()
	t.Empty = lipgloss.NewStyle().Foreground(lipgloss.Color("54"))
	t.Wall = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	t.Obstacle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	t.Trail = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	t.Guard = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	t.Start = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	t.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	t.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	return t
}

// MonoTheme returns a theme without colors.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := lipgloss.NewStyle().Bold(true)
	return Theme{
		Empty:    plain.Faint(true),
		Wall:     bold,
		Obstacle: bold.Underline(true),
		Trail:    plain,
		Guard:    bold.Reverse(true),
		Start:    plain,

		HUDTitle:     bold,
		HUDValue:     plain,
		HUDSeparator: plain.Faint(true),
		HUDControls:  plain.Faint(true),

		Exited: bold,
		Looped: bold.Reverse(true),

		MenuTitle:       bold,
		MenuItemNormal:  plain,
		MenuItemActive:  bold.Reverse(true),
		MenuDescription: plain.Faint(true),
	}
}
