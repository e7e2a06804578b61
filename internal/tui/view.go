package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTab     = tabStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	skillStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	formStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	statusStyles = map[string]lipgloss.Style{
		types.RequestPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		types.RequestAccepted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		types.RequestRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("Loading..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render("Could not load: " + m.err.Error()))
	case m.screen == screenMembers:
		b.WriteString(m.renderMembers())
	default:
		b.WriteString(m.renderRequests())
	}

	if m.mode == modeCompose {
		b.WriteString("\n\n")
		b.WriteString(m.renderCompose())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderToast())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := []string{"Members", "Requests"}
	rendered := make([]string, len(tabs))
	for i, name := range tabs {
		style := tabStyle
		if screen(i) == m.screen {
			style = activeTab
		}
		rendered[i] = style.Render(name)
	}
	header := titleStyle.Render("Skill Swap")
	if user := m.members.CurrentUser(); user != nil {
		header += dimStyle.Render("  signed in as " + user.Name)
	}
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderMembers() string {
	ctrl := m.members.Listing
	var b strings.Builder

	if m.mode == modeSearch || ctrl.SearchTerm() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf("availability: %s  •  %d members", ctrl.FilterValue(), ctrl.FilteredCount())))

	items := ctrl.PageItems()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("No members found. Try adjusting your search or filters."))
		return b.String()
	}
	for i, member := range items {
		line := fmt.Sprintf("%-22s ★ %.1f  %s → %s",
			member.Name,
			member.Rating,
			skillStyle.Render(joinOrDash(member.SkillsOffered)),
			joinOrDash(member.SkillsWanted),
		)
		if member.Availability != nil {
			line += dimStyle.Render("  (" + *member.Availability + ")")
		}
		b.WriteString(m.row(i, line))
	}
	b.WriteString(pageLine(ctrl.Page(), ctrl.TotalPages()))
	return b.String()
}

func (m *Model) renderRequests() string {
	ctrl := m.requests.Listing
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf("status: %s  •  %d requests", ctrl.FilterValue(), ctrl.FilteredCount())))

	items := ctrl.PageItems()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("No requests found."))
		return b.String()
	}
	for i, req := range items {
		status := statusStyles[req.Status].Render(req.Status)
		line := fmt.Sprintf("%-20s offers %s for %s  [%s]",
			req.FromUser.Name,
			skillStyle.Render(req.OfferedSkill),
			skillStyle.Render(req.RequestedSkill),
			status,
		)
		if req.Message != nil && *req.Message != "" {
			line += "\n      " + dimStyle.Render("“"+*req.Message+"”")
		}
		b.WriteString(m.row(i, line))
	}
	b.WriteString(pageLine(ctrl.Page(), ctrl.TotalPages()))
	return b.String()
}

func (m *Model) renderCompose() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Request a swap with " + m.target.Name))
	b.WriteString("\n")
	if len(m.target.SkillsOffered) > 0 {
		b.WriteString(dimStyle.Render("They offer: " + strings.Join(m.target.SkillsOffered, ", ")))
		b.WriteString("\n")
	}
	for _, in := range m.compose {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter send • tab next field • esc cancel"))
	return formStyle.Render(b.String())
}

func (m *Model) renderToast() string {
	title, body, severity := m.toast.read()
	if title == "" {
		return ""
	}
	text := title
	if body != "" {
		text += ": " + body
	}
	if severity == listing.SeverityError {
		return errorStyle.Render(text)
	}
	return infoStyle.Render(text)
}

func (m *Model) helpLine() string {
	if m.screen == screenMembers {
		return "tab requests • / search • f filter • s request swap • ←/→ page • g refresh • q quit"
	}
	return "tab members • a accept • x reject • f filter • ←/→ page • g refresh • q quit"
}

func (m *Model) row(i int, line string) string {
	if i == m.cursor {
		return selectedStyle.Render("> ") + line + "\n"
	}
	return "  " + line + "\n"
}

func pageLine(page, total int) string {
	return "\n" + dimStyle.Render(fmt.Sprintf("page %d of %d", page, total))
}

func joinOrDash(skills []string) string {
	if len(skills) == 0 {
		return "-"
	}
	return strings.Join(skills, ", ")
}
