package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RuleWidth is the width of banner and separator lines.
const RuleWidth = 60

var (
	// TitleStyle ANSI 6 (Cyan) for section titles, readable on any background
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) for secondary text
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags and step ids
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// SuccessStyle ANSI 2 (Green) for completion marks
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// Banner is a heavy rule of RuleWidth.
func Banner() string {
	return strings.Repeat("=", RuleWidth)
}

// Rule is a light rule of RuleWidth.
func Rule() string {
	return DescStyle.Render(strings.Repeat("-", RuleWidth))
}
