package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ Calculating..."))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneResults:
		content = m.renderResults()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	title := TitleStyle.Render("ITAX - Income Tax " + domain.TaxYear)
	crumb := SubtitleStyle.Render(m.currentScene.String())
	if m.profileName != "" {
		crumb = SubtitleStyle.Render(fmt.Sprintf("%s / %s", m.currentScene, m.profileName))
	}
	status := StatusBarStyle.Width(m.width).Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, title, crumb, "", content, status)
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i := range m.inputs {
		label := LabelStyle
		if i == m.focus {
			label = FocusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.parentsSenior {
		b.WriteString(SubtitleStyle.Render("Parents are senior citizens (80D limit raised)"))
		b.WriteString("\n")
	}
	return ActiveBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderResults() string {
	rc := m.comparison
	if rc == nil {
		return BorderStyle.Render("No comparison yet")
	}

	var b strings.Builder
	b.WriteString(LabelStyle.Render(""))
	b.WriteString(TableHeaderStyle.Inherit(ValueStyle).Render("Old regime"))
	b.WriteString(TableHeaderStyle.Inherit(ValueStyle).Render("New regime"))
	b.WriteString("\n")
	for _, line := range rc.Lines {
		b.WriteString(LabelStyle.Render(line.Label))
		b.WriteString(ValueStyle.Render(output.FormatRupees(line.Old)))
		b.WriteString(ValueStyle.Render(output.FormatRupees(line.New)))
		b.WriteString("\n")
	}
	b.WriteString(LabelStyle.Render("Monthly (TDS)"))
	b.WriteString(ValueStyle.Render(output.FormatRupees(rc.Old.MonthlyTax())))
	b.WriteString(ValueStyle.Render(output.FormatRupees(rc.New.MonthlyTax())))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Effective rate"))
	b.WriteString(ValueStyle.Render(output.FormatPercentage(rc.Old.EffectiveRate)))
	b.WriteString(ValueStyle.Render(output.FormatPercentage(rc.New.EffectiveRate)))
	b.WriteString("\n\n")

	b.WriteString(RecommendStyle.Render(fmt.Sprintf("Recommended: %s regime", rc.Recommended)))
	b.WriteString(" ")
	b.WriteString(savingsStyle(rc.Savings).Render("saves " + output.FormatRupees(rc.Savings)))
	for _, r := range rc.Recommendations {
		b.WriteString("\n• " + r)
	}
	return BorderStyle.Render(b.String())
}

func (m Model) renderHelp() string {
	return BorderStyle.Render(
		"Enter amounts in rupees, without decimals. Blank fields count as zero.\n" +
			"Age picks the old regime slabs: below 60, 60 to 79, 80 and above.\n" +
			"HRA is the exempt portion; LTA can go into other deductions.\n" +
			"Employer NPS 80CCD(2) is claimed in the new regime.\n\n" +
			m.help.FullHelpView(m.keys.FullHelp()))
}

func savingsStyle(d decimal.Decimal) lipgloss.Style {
	if d.IsZero() {
		return SubtitleStyle
	}
	return PositiveStyle
}
