package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/to404hanga/ctf_platform_client/model"
)

// Styles 全部样式集中一处, 页面模型只持引用
type Styles struct {
	Title     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Section   lipgloss.Style
	GroupHead lipgloss.Style
	Row       lipgloss.Style
	RowDim    lipgloss.Style
	Timing    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Modal     lipgloss.Style

	badges map[string]lipgloss.Style
}

func DefaultStyles() Styles {
	base := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		TabActive: base.Bold(true).Underline(true),
		TabIdle:   base.Faint(true),
		Section:   lipgloss.NewStyle().Bold(true).MarginTop(1),
		GroupHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		Row:       lipgloss.NewStyle(),
		RowDim:    lipgloss.NewStyle().Faint(true),
		Timing:    lipgloss.NewStyle().Faint(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2),
		badges: map[string]lipgloss.Style{
			"none":      base.Foreground(lipgloss.Color("#9e9e9e")),
			"scheduled": base.Foreground(lipgloss.Color("#FFC107")),
			"upcoming":  base.Foreground(lipgloss.Color("#2196F3")),
			"ongoing":   base.Foreground(lipgloss.Color("#8BC34A")).Bold(true),
			"ended":     base.Foreground(lipgloss.Color("#e53935")).Faint(true),
		},
	}
}

// Badge 按状态徽标名取样式并渲染标签
func (s Styles) Badge(info model.PhaseInfo) string {
	style, exists := s.badges[info.Badge]
	if !exists {
		style = s.RowDim
	}
	return style.Render("[" + info.Label + "]")
}
