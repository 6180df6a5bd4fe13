package types

// TabRef identifies a previously open tab for session restore. Only the key
// is persisted; content is re-read from disk on restore.
type TabRef struct {
	NoteID string `json:"note_id"`
	Folder string `json:"folder"`
}

// SessionState is the UI state persisted between runs: which workspace was
// open, which folders were expanded and which tabs were showing.
type SessionState struct {
	WorkspaceRoot string   `json:"workspace_root"`
	ExpandedPaths []string `json:"expanded_paths"`
	OpenTabs      []TabRef `json:"open_tabs"`
	ActiveTab     *TabRef  `json:"active_tab,omitempty"`
	SidebarHidden bool     `json:"sidebar_hidden"`
}
