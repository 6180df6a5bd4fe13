package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"azimuth/internal/workspace"
)

const (
	sidebarWidth   = 28
	notesListWidth = 32
	chromeRows     = 3
)

func (m *Model) layoutPanes() {
	bodyHeight := m.height - chromeRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	editorWidth := m.width - notesListWidth - 2
	if !m.sidebarHidden {
		editorWidth -= sidebarWidth
	}
	if editorWidth < 20 {
		editorWidth = 20
	}
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(bodyHeight)
	m.viewer.Width = editorWidth
	m.viewer.Height = bodyHeight
	m.searchInput.Width = m.width - 10
	m.renameInput.Width = m.width - 12
	m.syncPreview()
}

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.tabLine())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.searchView())
	} else {
		b.WriteString(m.bodyView())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())

	if m.confirm.IsOpen() {
		dialog := m.confirm.View(m.width - 4)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog,
			lipgloss.WithWhitespaceChars(" "))
	}
	return b.String()
}

func (m *Model) headerLine() string {
	title := headerStyle.Render("azimuth")
	root := statusStyle.Render(" " + m.session.WorkspaceRoot)
	toastLine := m.toast.line(m.width - lipgloss.Width(title) - lipgloss.Width(root))
	return title + root + toastLine
}

func (m *Model) tabLine() string {
	tabs := m.session.Tabs.Tabs()
	if len(tabs) == 0 {
		return helpStyle.Render(" no open notes")
	}
	activeKey, _ := m.session.Tabs.ActiveKey()
	parts := make([]string, 0, len(tabs))
	remaining := m.width
	for _, tab := range tabs {
		label := tab.Note.Title
		if label == "" {
			label = tab.Note.ID
		}
		if tab.Dirty {
			label += " •"
		}
		label = " " + truncateName(label, 24) + " "
		style := tabStyle
		if tab.Key() == activeKey {
			style = tabActiveStyle
		} else if tab.Dirty {
			style = tabDirtyStyle
		}
		rendered := style.Render(label)
		w := lipgloss.Width(rendered)
		if w > remaining {
			break
		}
		remaining -= w + 1
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " ")
}

func (m *Model) bodyView() string {
	bodyHeight := m.height - chromeRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	noteList := m.notesView(bodyHeight)
	var editorPane string
	if m.preview {
		editorPane = m.viewer.View()
	} else {
		editorPane = m.editor.View()
	}
	divider := dividerStyle.Render(strings.TrimRight(strings.Repeat("│\n", bodyHeight), "\n"))
	if m.sidebarHidden {
		return lipgloss.JoinHorizontal(lipgloss.Top, noteList, divider, editorPane)
	}
	sidebar := m.sidebarView(bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, noteList, divider, editorPane)
}

func (m *Model) sidebarView(height int) string {
	rows := flattenTree(m.session.Roots, m.session.Expansion)
	if m.sidebarIdx >= len(rows) {
		m.sidebarIdx = len(rows) - 1
	}
	if m.sidebarIdx < 0 {
		m.sidebarIdx = 0
	}

	top := 0
	if m.sidebarIdx >= height {
		top = m.sidebarIdx - height + 1
	}
	lines := make([]string, 0, height)
	for i := top; i < len(rows) && len(lines) < height; i++ {
		row := rows[i]
		selected := i == m.sidebarIdx && m.focus == focusSidebar
		favorite := false
		for _, f := range m.session.Settings.Favorites {
			if f == row.Path {
				favorite = true
				break
			}
		}
		lines = append(lines, renderSidebarRow(row, selected, favorite, sidebarWidth))
	}
	if len(rows) == 0 {
		lines = append(lines, helpStyle.Render(" empty workspace"))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", sidebarWidth))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) notesView(height int) string {
	notes := m.session.Notes
	if m.noteIdx >= len(notes) {
		m.noteIdx = len(notes) - 1
	}
	if m.noteIdx < 0 {
		m.noteIdx = 0
	}

	lines := make([]string, 0, height)
	for i, n := range notes {
		if len(lines) >= height {
			break
		}
		title := n.Title
		if title == "" {
			title = n.ID
		}
		dirtyMark := ""
		if tab, open := m.session.Tabs.Get(workspace.KeyFor(n)); open && tab.Dirty {
			dirtyMark = " •"
		}
		line := " " + truncateName(title, notesListWidth-4) + dirtyMark
		line = padToWidth(truncateToWidth(line, notesListWidth), notesListWidth)
		if i == m.noteIdx && m.focus == focusNotes {
			lines = append(lines, selectedStyle.Render(line))
		} else {
			lines = append(lines, noteStyle.Render(line))
		}
	}
	if len(notes) == 0 {
		lines = append(lines, helpStyle.Render(" no notes here"))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", notesListWidth))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) searchView() string {
	bodyHeight := m.height - chromeRows
	lines := make([]string, 0, bodyHeight)
	lines = append(lines, " "+m.searchInput.View())
	lines = append(lines, "")
	for i, r := range m.searchResults {
		if len(lines) >= bodyHeight {
			break
		}
		title := r.NoteTitle
		if title == "" {
			title = r.NoteID
		}
		count := searchCountStyle.Render(fmt.Sprintf(" (%d)", r.MatchCount))
		line := " " + truncateName(title, 40) + count + "  " + statusStyle.Render(truncateName(r.Snippet, m.width-50))
		if i == m.searchIdx {
			line = searchMatchStyle.Render("▸") + line
		} else {
			line = " " + line
		}
		lines = append(lines, truncateToWidth(line, m.width))
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	if m.renaming {
		return helpStyle.Render(" rename: ") + m.renameInput.View()
	}
	help := "enter open · ctrl+s save · ctrl+f search · ctrl+p preview · ctrl+w close tab · ctrl+c quit"
	left := m.status
	if left == "" {
		left = help
	}
	return helpStyle.Render(" " + truncateName(left, m.width-2))
}
