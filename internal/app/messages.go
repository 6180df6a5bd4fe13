package app

import (
	"azimuth/internal/types"
	"azimuth/internal/workspace"
)

type rootScanMsg struct {
	notebooks []*types.Notebook
	err       error
}

type childrenMsg struct {
	path     string
	children []*types.Notebook
	err      error
}

type notesMsg struct {
	folder string
	notes  []types.Note
	err    error
}

type noteSavedMsg struct {
	key     workspace.TabKey
	content string
	manual  bool
	err     error
}

type autosaveTickMsg struct {
	ctx workspace.SaveContext
}

type notebookCreatedMsg struct {
	parent   string
	notebook *types.Notebook
	err      error
}

type notebookMovedMsg struct {
	source string
	target string
	err    error
}

type noteMovedMsg struct {
	key    workspace.TabKey
	target string
	err    error
}

type noteRenamedMsg struct {
	key   workspace.TabKey
	newID string
	err   error
}

type noteDeletedMsg struct {
	key workspace.TabKey
	err error
}

type searchResultsMsg struct {
	query   string
	results []types.SearchResult
	err     error
}

type revealMsg struct {
	result workspace.RevealResult
	err    error
}

type settingsMsg struct {
	settings types.WorkspaceSettings
	err      error
}

type settingsSavedMsg struct {
	err error
}

type favoriteToggledMsg struct {
	path     string
	settings types.WorkspaceSettings
	err      error
}

type workspaceChangedMsg struct{}

type tabRestoredMsg struct {
	ref    types.TabRef
	note   types.Note
	active bool
	err    error
}

type clipboardResultMsg struct {
	success string
	err     error
}
