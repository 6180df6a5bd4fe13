package types

// NotebookStyle is a per-folder icon and accent color chosen by the user.
type NotebookStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// WorkspaceSettings is the per-workspace settings document persisted next to
// the notes themselves (`.azimuth_settings.json` in the workspace root).
// Tag and favorite entries are keyed by "folder/noteID" paths.
type WorkspaceSettings struct {
	FontFamily     string                   `json:"fontFamily"`
	FontSize       int                      `json:"fontSize"`
	SidebarWidth   int                      `json:"sidebarWidth"`
	NotesWidth     int                      `json:"notesWidth"`
	Favorites      []string                 `json:"favorites"`
	Tags           map[string][]string      `json:"tags"`
	NotebookStyles map[string]NotebookStyle `json:"notebookStyles"`
	PinnedFolders  []string                 `json:"pinnedFolders"`
	AutoSave       bool                     `json:"autoSave"`
}

// DefaultWorkspaceSettings mirrors the defaults written on first use.
func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{
		FontFamily:     "'SF Mono', 'Fira Code', 'Consolas', monospace",
		FontSize:       14,
		SidebarWidth:   200,
		NotesWidth:     200,
		Favorites:      []string{},
		Tags:           map[string][]string{},
		NotebookStyles: map[string]NotebookStyle{},
		PinnedFolders:  []string{},
		AutoSave:       true,
	}
}
