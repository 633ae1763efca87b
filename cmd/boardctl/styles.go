package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/estateflow/backend/internal/domain/property"
)

var (
	ColorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	// ColorMuted is used for secondary text and sold units
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	ColorHold   = lipgloss.AdaptiveColor{Light: "#a37acc", Dark: "#d2a6ff"}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
	TreeLast = "└─ "
)

var statusColors = map[property.UnitStatus]lipgloss.AdaptiveColor{
	property.UnitStatusAvailable:   ColorPass,
	property.UnitStatusOccupied:    ColorAccent,
	property.UnitStatusMaintenance: ColorWarn,
	property.UnitStatusReserved:    ColorHold,
	property.UnitStatusSold:        ColorMuted,
	property.UnitStatusBlocked:     ColorFail,
}

// ColumnStyle returns the header style of a board column
func ColumnStyle(s property.UnitStatus) lipgloss.Style {
	c, ok := statusColors[s]
	if !ok {
		c = ColorMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
