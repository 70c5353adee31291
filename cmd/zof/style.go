package main

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFFF"))
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87D7AF"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7A89"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
)
