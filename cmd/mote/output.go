package main

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared by all commands.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func successMark() string { return successStyle.Render("✓") }
func warnMark() string    { return warnStyle.Render("!") }
func infoMark() string    { return infoStyle.Render("i") }
func errorPrefix() string { return errorStyle.Render("error:") }

func accent(s string) string { return accentStyle.Render(s) }
func dim(s string) string    { return dimStyle.Render(s) }
func header(s string) string { return headerStyle.Render(s) }
