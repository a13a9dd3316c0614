package shell

import "github.com/charmbracelet/lipgloss"

// Prompt and table styles: context red, namespace green, selected object
// yellow.
var (
	contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	namespaceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	objectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	headerStyle = lipgloss.NewStyle().Bold(true)
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// phaseStyle picks the style for a pod phase, node state, or namespace
// status cell.
func phaseStyle(phase string) lipgloss.Style {
	switch phase {
	case "Pending", "Running", "Active", "Ready":
		return goodStyle
	case "ContainerCreating", "Unknown":
		return warnStyle
	case "Succeeded":
		return infoStyle
	default:
		return badStyle
	}
}
