package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kilometers.ai/edit/internal/core/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(18)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	hintStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
)

// renderSummary describes a finished edit
func renderSummary(result *domain.EditResult) string {
	lines := []string{titleStyle.Render("✅ Workspace generated at " + string(result.Path))}

	if g := result.Graph; g != nil {
		rows := []struct {
			label string
			count int
		}{
			{"Manifests", len(g.Manifests)},
			{"Helpers", len(g.Helpers)},
			{"Templates", len(g.Templates)},
			{"Editable plugins", len(g.EditablePlugins)},
			{"Built plugins", len(g.BuiltModules)},
		}
		for _, row := range rows {
			lines = append(lines, labelStyle.Render(row.label)+fmt.Sprintf("%d", row.count))
		}
	}

	for _, warning := range result.Warnings {
		lines = append(lines, warnStyle.Render("⚠️  "+describeDegradation(warning)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func describeDegradation(d *domain.Degradation) string {
	switch d.Kind {
	case domain.PluginLoadDegradation:
		return fmt.Sprintf("Plugins could not be loaded and were left out: %v", d.Err)
	case domain.PluginBuildDegradation:
		return fmt.Sprintf("Plugins could not be built and were left out: %v", d.Err)
	default:
		return d.Error()
	}
}

// renderError formats a command failure, with a hint for the common ones
func renderError(err error) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error: " + err.Error()))

	var noFiles *domain.NoEditableFilesError
	if errors.As(err, &noFiles) {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Run km-edit from a directory containing a Project.yaml or Workspace.yaml, or add helpers under .km/Helpers"))
	}
	return b.String()
}
