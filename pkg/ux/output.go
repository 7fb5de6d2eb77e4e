// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the PulmoScreen CLI.
package ux

import (
	"github.com/charmbracelet/lipgloss"
)

// Aurora Care palette - clinical greens and calm blues
var (
	// Primary palette
	ColorMintBright  = lipgloss.Color("#4FD1A5") // Bright mint - highlights, success
	ColorMintPrimary = lipgloss.Color("#38B289") // Primary mint - main brand color
	ColorSkyBlue     = lipgloss.Color("#4FB0D1") // Sky blue - interactive elements
	ColorSteelBlue   = lipgloss.Color("#3A7FA0") // Steel blue - secondary elements
	ColorPineDeep    = lipgloss.Color("#1F6E55") // Deep pine - borders, accents

	// Semantic colors
	ColorSuccess = lipgloss.Color("#4FD1A5") // Mint for success
	ColorWarning = lipgloss.Color("#F4D03F") // Amber for warnings and retries
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
	ColorHigh    = lipgloss.Color("#E74C3C") // High risk
	ColorMedium  = lipgloss.Color("#F4D03F") // Medium risk
	ColorLow     = lipgloss.Color("#4FD1A5") // Low risk
	ColorMuted   = lipgloss.Color("#5C7078") // Slate for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box        lipgloss.Style
	WarningBox lipgloss.Style
	ReportBox  lipgloss.Style

	RiskLow    lipgloss.Style
	RiskMedium lipgloss.Style
	RiskHigh   lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorMintBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorMintPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorMintBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPineDeep).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
	ReportBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSteelBlue).
		Padding(0, 2),

	RiskLow:    lipgloss.NewStyle().Bold(true).Foreground(ColorLow),
	RiskMedium: lipgloss.NewStyle().Bold(true).Foreground(ColorMedium),
	RiskHigh:   lipgloss.NewStyle().Bold(true).Foreground(ColorHigh),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconHeart   Icon = "♥"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// RiskStyle returns the style for a risk level string ("low", "medium",
// "high"). Unknown levels render muted.
func RiskStyle(level string) lipgloss.Style {
	switch level {
	case "low":
		return Styles.RiskLow
	case "medium":
		return Styles.RiskMedium
	case "high":
		return Styles.RiskHigh
	default:
		return Styles.Muted
	}
}
