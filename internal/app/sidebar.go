package app

import (
	"strings"

	"azimuth/internal/types"
	"azimuth/internal/workspace"
)

// sidebarRow is one visible line of the notebook tree, produced by
// flattening the forest against the expansion state.
type sidebarRow struct {
	Path       string
	Name       string
	Depth      int
	Expandable bool
	Expanded   bool
	Loading    bool
}

// flattenTree lists the visible rows top to bottom. Children of collapsed
// folders are skipped; sentinel placeholders never become rows.
func flattenTree(roots []*types.Notebook, exp *workspace.Expansion) []sidebarRow {
	rows := make([]sidebarRow, 0, len(roots))
	var walk func(nodes []*types.Notebook, depth int)
	walk = func(nodes []*types.Notebook, depth int) {
		for _, node := range nodes {
			if node == nil || node.ID == "" {
				continue
			}
			expanded := exp.IsExpanded(node.Path)
			rows = append(rows, sidebarRow{
				Path:       node.Path,
				Name:       node.Name,
				Depth:      depth,
				Expandable: node.IsExpandable(),
				Expanded:   expanded,
				Loading:    exp.IsLoading(node.Path),
			})
			if expanded && node.HasRealChildren() {
				walk(node.Children, depth+1)
			}
		}
	}
	walk(roots, 0)
	return rows
}

func rowIndexOf(rows []sidebarRow, path string) int {
	for i, row := range rows {
		if row.Path == path {
			return i
		}
	}
	return -1
}

func renderSidebarRow(row sidebarRow, selected, favorite bool, width int) string {
	marker := "  "
	switch {
	case row.Loading:
		marker = "… "
	case row.Expandable && row.Expanded:
		marker = "▾ "
	case row.Expandable:
		marker = "▸ "
	}
	prefix := strings.Repeat("  ", row.Depth) + marker
	name := truncateName(row.Name, width-len(prefix)-2)
	line := prefix + name
	if favorite {
		line += " ★"
	}
	line = padToWidth(truncateToWidth(line, width), width)
	switch {
	case selected:
		return selectedStyle.Render(line)
	case row.Loading:
		return loadingStyle.Render(line)
	case favorite:
		return favoriteStyle.Render(line)
	default:
		return notebookStyle.Render(line)
	}
}
