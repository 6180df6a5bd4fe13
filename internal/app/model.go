package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"azimuth/internal/backend"
	"azimuth/internal/config"
	"azimuth/internal/logging"
	"azimuth/internal/store"
	"azimuth/internal/types"
	"azimuth/internal/workspace"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusNotes
	focusEditor
)

type confirmAction int

const (
	actionNone confirmAction = iota
	actionCloseTab
	actionDeleteNote
)

// Model is the whole terminal UI. All workspace state lives in the embedded
// session; the model adds focus, selection indices, the editor widget and
// the modal overlays on top.
type Model struct {
	svc        *backend.Service
	cfg        config.Config
	log        logging.Logger
	stateStore store.SessionStateStore
	session    *workspace.Session

	width  int
	height int
	focus  focusArea

	sidebarIdx    int
	noteIdx       int
	sidebarHidden bool

	editor  textarea.Model
	preview bool
	viewer  viewport.Model

	searching     bool
	searchInput   textinput.Model
	searchResults []types.SearchResult
	searchIdx     int

	renaming      bool
	renameInput   textinput.Model
	pendingRename workspace.TabKey

	confirm         *ConfirmController
	pendingKey      workspace.TabKey
	pendingAction   confirmAction
	pendingMove     string
	pendingNoteMove workspace.TabKey

	toast  toast
	status string

	restoring types.SessionState
	fsEvents  <-chan struct{}
}

func New(svc *backend.Service, cfg config.Config, root string, log logging.Logger, stateStore store.SessionStateStore, settings types.WorkspaceSettings, restore types.SessionState, fsEvents <-chan struct{}) *Model {
	editor := textarea.New()
	editor.Placeholder = "Select a note to start writing"
	editor.ShowLineNumbers = false

	search := textinput.New()
	search.Placeholder = "Search notes"

	rename := textinput.New()
	rename.Placeholder = "New file name"

	return &Model{
		svc:           svc,
		cfg:           cfg,
		log:           log,
		stateStore:    stateStore,
		session:       workspace.NewSession(root, settings, workspace.DiscardAll{}),
		editor:        editor,
		searchInput:   search,
		renameInput:   rename,
		confirm:       NewConfirmController(),
		sidebarHidden: restore.SidebarHidden,
		restoring:     restore,
		fsEvents:      fsEvents,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		scanRootCmd(m.svc, m.session.WorkspaceRoot),
		loadSettingsCmd(m.svc, m.session.WorkspaceRoot),
	}
	if m.fsEvents != nil {
		cmds = append(cmds, listenFSCmd(m.fsEvents))
	}
	return tea.Batch(cmds...)
}

func listenFSCmd(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return workspaceChangedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanes()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case rootScanMsg:
		return m.updateRootScan(msg)
	case childrenMsg:
		return m.updateChildren(msg)
	case notesMsg:
		return m.updateNotes(msg)
	case tabRestoredMsg:
		return m.updateTabRestored(msg)
	case autosaveTickMsg:
		return m.updateAutosaveTick(msg)
	case noteSavedMsg:
		return m.updateNoteSaved(msg)
	case notebookCreatedMsg:
		return m.updateNotebookCreated(msg)
	case notebookMovedMsg:
		return m.updateNotebookMoved(msg)
	case noteMovedMsg:
		return m.updateNoteMoved(msg)
	case noteRenamedMsg:
		return m.updateNoteRenamed(msg)
	case noteDeletedMsg:
		return m.updateNoteDeleted(msg)
	case searchResultsMsg:
		return m.updateSearchResults(msg)
	case revealMsg:
		return m.updateReveal(msg)
	case settingsMsg:
		if msg.err != nil {
			m.toast.warning("settings: " + msg.err.Error())
			return m, nil
		}
		m.session.ApplySettings(msg.settings)
		return m, nil
	case settingsSavedMsg:
		if msg.err != nil {
			m.toast.error("saving settings: " + msg.err.Error())
		}
		return m, nil
	case favoriteToggledMsg:
		if msg.err != nil {
			m.toast.error("favorite: " + msg.err.Error())
			return m, nil
		}
		m.session.ApplySettings(msg.settings)
		return m, nil
	case workspaceChangedMsg:
		cmds := []tea.Cmd{scanRootCmd(m.svc, m.session.WorkspaceRoot)}
		if m.session.NoteFolder != "" {
			cmds = append(cmds, fetchNotesCmd(m.svc, m.session.NoteFolder))
		}
		if m.fsEvents != nil {
			cmds = append(cmds, listenFSCmd(m.fsEvents))
		}
		return m, tea.Batch(cmds...)
	case clipboardResultMsg:
		if msg.err != nil {
			m.toast.error("copy failed: " + msg.err.Error())
		} else {
			m.toast.info(msg.success)
		}
		return m, nil
	}

	if m.focus == focusEditor && !m.searching && !m.confirm.IsOpen() {
		return m.updateEditor(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		return m.updateConfirmKey(msg)
	}
	if m.searching {
		return m.updateSearchKey(msg)
	}
	if m.renaming {
		return m.updateRenameKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.persistSessionState()
		return m, tea.Quit
	case "ctrl+s":
		return m.manualSave()
	case "ctrl+f":
		m.searching = true
		m.searchResults = nil
		m.searchIdx = 0
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case "ctrl+p":
		m.preview = !m.preview
		m.syncPreview()
		return m, nil
	case "ctrl+b":
		m.sidebarHidden = !m.sidebarHidden
		if m.sidebarHidden && m.focus == focusSidebar {
			m.cycleFocus()
		}
		m.layoutPanes()
		return m, nil
	case "ctrl+w":
		return m.requestCloseActiveTab()
	case "ctrl+right", "ctrl+l":
		return m.cycleTab(1)
	case "ctrl+left":
		return m.cycleTab(-1)
	case "tab":
		if m.focus != focusEditor {
			m.cycleFocus()
			return m, nil
		}
	case "esc":
		if m.focus == focusEditor {
			m.focus = focusNotes
			m.editor.Blur()
			return m, nil
		}
		if m.pendingMove != "" || m.pendingNoteMove != (workspace.TabKey{}) {
			m.pendingMove = ""
			m.pendingNoteMove = workspace.TabKey{}
			m.status = ""
			return m, nil
		}
	}

	switch m.focus {
	case focusSidebar:
		return m.updateSidebarKey(msg)
	case focusNotes:
		return m.updateNotesKey(msg)
	case focusEditor:
		return m.updateEditor(msg)
	}
	return m, nil
}

func (m *Model) updateSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := flattenTree(m.session.Roots, m.session.Expansion)
	switch msg.String() {
	case "up", "k":
		if m.sidebarIdx > 0 {
			m.sidebarIdx--
		}
	case "down", "j":
		if m.sidebarIdx < len(rows)-1 {
			m.sidebarIdx++
		}
	case "right", "l":
		if row, ok := selectedRow(rows, m.sidebarIdx); ok && row.Expandable && !row.Expanded {
			if m.session.Expand(row.Path) {
				return m, fetchChildrenCmd(m.svc, row.Path)
			}
		}
	case "left", "h":
		if row, ok := selectedRow(rows, m.sidebarIdx); ok && row.Expanded {
			m.session.Collapse(row.Path)
		}
	case "enter":
		if row, ok := selectedRow(rows, m.sidebarIdx); ok {
			var cmds []tea.Cmd
			if row.Expandable && !row.Expanded {
				if m.session.Expand(row.Path) {
					cmds = append(cmds, fetchChildrenCmd(m.svc, row.Path))
				}
			}
			cmds = append(cmds, fetchNotesCmd(m.svc, row.Path))
			return m, tea.Batch(cmds...)
		}
	case "f":
		if row, ok := selectedRow(rows, m.sidebarIdx); ok {
			return m, toggleFavoriteCmd(m.svc, m.session.WorkspaceRoot, row.Path)
		}
	case "a":
		settings := m.session.Settings
		settings.AutoSave = !settings.AutoSave
		m.session.ApplySettings(settings)
		if settings.AutoSave {
			m.status = "autosave on"
		} else {
			m.status = "autosave off"
		}
		return m, saveSettingsCmd(m.svc, m.session.WorkspaceRoot, settings)
	case "n":
		parent := m.session.WorkspaceRoot
		if row, ok := selectedRow(rows, m.sidebarIdx); ok {
			parent = row.Path
		}
		return m, createNotebookCmd(m.svc, parent, untitledNotebookName(m.session.Roots, parent))
	case "m":
		if row, ok := selectedRow(rows, m.sidebarIdx); ok {
			m.pendingMove = row.Path
			m.status = "moving " + filepath.Base(row.Path) + ": select target, press p"
		}
	case "p":
		row, ok := selectedRow(rows, m.sidebarIdx)
		if !ok {
			break
		}
		if m.pendingNoteMove != (workspace.TabKey{}) {
			key := m.pendingNoteMove
			m.pendingNoteMove = workspace.TabKey{}
			m.status = ""
			if key.Folder == row.Path {
				break
			}
			return m, moveNoteCmd(m.svc, key, row.Path)
		}
		if m.pendingMove == "" {
			break
		}
		source := m.pendingMove
		if err := m.session.ValidateMove(source, row.Path); err != nil {
			m.toast.warning(err.Error())
			return m, nil
		}
		m.pendingMove = ""
		m.status = ""
		return m, moveNotebookCmd(m.svc, source, row.Path)
	case "y":
		if row, ok := selectedRow(rows, m.sidebarIdx); ok {
			return m, copyToClipboardCmd(row.Path, "path copied")
		}
	}
	return m, nil
}

func (m *Model) updateNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.noteIdx > 0 {
			m.noteIdx--
		}
	case "down", "j":
		if m.noteIdx < len(m.session.Notes)-1 {
			m.noteIdx++
		}
	case "enter":
		if m.noteIdx >= 0 && m.noteIdx < len(m.session.Notes) {
			m.openNote(m.session.Notes[m.noteIdx])
			return m, nil
		}
	case "d":
		if m.noteIdx >= 0 && m.noteIdx < len(m.session.Notes) {
			note := m.session.Notes[m.noteIdx]
			m.pendingKey = workspace.KeyFor(note)
			m.pendingAction = actionDeleteNote
			m.confirm.Open("Delete note", fmt.Sprintf("Delete %q? Its attachments are removed too.", note.Title), "Delete", "Keep")
			return m, nil
		}
	case "m":
		if m.noteIdx >= 0 && m.noteIdx < len(m.session.Notes) {
			note := m.session.Notes[m.noteIdx]
			m.pendingNoteMove = workspace.KeyFor(note)
			m.status = "moving " + note.Title + ": select target notebook, press p"
		}
	case "r":
		if m.noteIdx >= 0 && m.noteIdx < len(m.session.Notes) {
			note := m.session.Notes[m.noteIdx]
			m.pendingRename = workspace.KeyFor(note)
			m.renaming = true
			m.renameInput.SetValue(note.ID)
			m.renameInput.Focus()
			return m, textinput.Blink
		}
	case "y":
		if m.noteIdx >= 0 && m.noteIdx < len(m.session.Notes) {
			return m, copyToClipboardCmd(m.session.Notes[m.noteIdx].Content, "note copied")
		}
	}
	return m, nil
}

func (m *Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	after := m.editor.Value()
	if after == before {
		return m, cmd
	}
	saveCtx, armed := m.session.EditActive(after)
	if !armed {
		return m, cmd
	}
	return m, tea.Batch(cmd, autosaveTickCmd(m.cfg.AutosaveDelay(), saveCtx))
}

func (m *Model) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled, choice := m.confirm.HandleKey(msg)
	if !handled || choice == confirmChoiceNone {
		return m, nil
	}
	m.confirm.Close()
	key := m.pendingKey
	action := m.pendingAction
	m.pendingKey = workspace.TabKey{}
	m.pendingAction = actionNone
	if choice != confirmChoiceConfirm {
		return m, nil
	}
	switch action {
	case actionCloseTab:
		if err := m.session.CloseTab(key); err != nil {
			m.toast.error(err.Error())
			return m, nil
		}
		m.syncEditorToActive()
		return m, nil
	case actionDeleteNote:
		// An open tab for the note is stale once the file is gone.
		m.session.CloseTabDiscarding(key)
		m.syncEditorToActive()
		return m, deleteNoteCmd(m.svc, key)
	}
	return m, nil
}

func (m *Model) updateRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renaming = false
		m.renameInput.Blur()
		return m, nil
	case "enter":
		newID := strings.TrimSpace(m.renameInput.Value())
		key := m.pendingRename
		m.renaming = false
		m.renameInput.Blur()
		m.pendingRename = workspace.TabKey{}
		if newID == "" || newID == key.NoteID {
			return m, nil
		}
		return m, renameNoteCmd(m.svc, key, newID)
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		if len(m.searchResults) > 0 && m.searchIdx < len(m.searchResults) {
			hit := m.searchResults[m.searchIdx]
			m.searching = false
			m.searchInput.Blur()
			return m, revealCmd(m.svc, m.session.Roots, m.session.WorkspaceRoot, hit)
		}
		return m, searchCmd(m.svc, m.session.WorkspaceRoot, query)
	case "up":
		if m.searchIdx > 0 {
			m.searchIdx--
		}
		return m, nil
	case "down":
		if m.searchIdx < len(m.searchResults)-1 {
			m.searchIdx++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Typing invalidates the previous result list.
	m.searchResults = nil
	m.searchIdx = 0
	return m, cmd
}

func (m *Model) updateRootScan(msg rootScanMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("scanning workspace: " + msg.err.Error())
		return m, nil
	}
	m.session.ApplyRootSnapshot(msg.notebooks)
	return m, m.continueRestore()
}

func (m *Model) updateChildren(msg childrenMsg) (tea.Model, tea.Cmd) {
	m.session.ApplyChildren(msg.path, msg.children, msg.err)
	if msg.err != nil {
		m.toast.warning("loading " + filepath.Base(msg.path) + ": " + msg.err.Error())
		return m, nil
	}
	return m, m.continueRestore()
}

// continueRestore fetches whatever part of the persisted expansion set has
// become reachable, parents before children. It is a no-op once the restore
// set is drained.
func (m *Model) continueRestore() tea.Cmd {
	var cmds []tea.Cmd
	remaining := m.restoring.ExpandedPaths[:0:0]
	for _, path := range m.restoring.ExpandedPaths {
		node := workspace.FindByPath(m.session.Roots, path)
		if node == nil {
			remaining = append(remaining, path)
			continue
		}
		if m.session.Expand(path) {
			cmds = append(cmds, fetchChildrenCmd(m.svc, path))
		}
	}
	m.restoring.ExpandedPaths = remaining

	if len(m.restoring.OpenTabs) > 0 {
		tabs := m.restoring.OpenTabs
		active := m.restoring.ActiveTab
		m.restoring.OpenTabs = nil
		m.restoring.ActiveTab = nil
		for _, ref := range tabs {
			isActive := active != nil && *active == ref
			cmds = append(cmds, restoreTabCmd(m.svc, ref, isActive))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateNotes(msg notesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("listing notes: " + msg.err.Error())
		return m, nil
	}
	m.session.SelectFolder(msg.folder, msg.notes)
	if m.noteIdx >= len(msg.notes) {
		m.noteIdx = len(msg.notes) - 1
	}
	if m.noteIdx < 0 {
		m.noteIdx = 0
	}
	if m.focus == focusSidebar && len(msg.notes) > 0 {
		m.focus = focusNotes
	}
	return m, nil
}

func (m *Model) updateTabRestored(msg tabRestoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The note may have been deleted since the last run.
		m.log.Debug("skipping stale tab", logging.F("note", msg.ref.NoteID), logging.F("error", msg.err))
		return m, nil
	}
	activeKey, hadActive := m.session.Tabs.ActiveKey()
	m.session.OpenNote(msg.note)
	if !msg.active && hadActive {
		m.session.SwitchTab(activeKey)
	}
	if msg.active || !hadActive {
		m.syncEditorToActive()
	}
	return m, nil
}

func (m *Model) updateAutosaveTick(msg autosaveTickMsg) (tea.Model, tea.Cmd) {
	key, content, ok := m.session.AutosaveFire(msg.ctx)
	if !ok {
		return m, nil
	}
	return m, saveNoteCmd(m.svc, key, content, false)
}

func (m *Model) updateNoteSaved(msg noteSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("saving " + msg.key.NoteID + ": " + msg.err.Error())
		return m, nil
	}
	m.session.ApplySaveSuccess(msg.key, msg.content, time.Now())
	m.status = "saved " + msg.key.NoteID
	if msg.manual {
		// An explicit save re-reads the folder so siblings pick up fresh
		// titles and timestamps even without the watcher running.
		return m, fetchNotesCmd(m.svc, msg.key.Folder)
	}
	return m, nil
}

func (m *Model) updateNotebookCreated(msg notebookCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("creating notebook: " + msg.err.Error())
		return m, nil
	}
	if msg.parent == m.session.WorkspaceRoot {
		return m, scanRootCmd(m.svc, m.session.WorkspaceRoot)
	}
	m.session.Expand(msg.parent)
	return m, fetchChildrenCmd(m.svc, msg.parent)
}

func (m *Model) updateNotebookMoved(msg notebookMovedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("move failed: " + msg.err.Error())
		return m, nil
	}
	// Tabs under the moved folder point at paths that no longer exist.
	for _, tab := range m.session.Tabs.Tabs() {
		if tab.Note.Folder == msg.source || strings.HasPrefix(tab.Note.Folder, msg.source+string(filepath.Separator)) {
			m.session.CloseTabDiscarding(tab.Key())
		}
	}
	m.syncEditorToActive()
	m.toast.info("moved " + filepath.Base(msg.source))
	return m, scanRootCmd(m.svc, m.session.WorkspaceRoot)
}

func (m *Model) updateNoteMoved(msg noteMovedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("move failed: " + msg.err.Error())
		return m, nil
	}
	// The tab key carries the old folder, so the tab is closed rather than
	// repointed at the new location.
	m.session.CloseTabDiscarding(msg.key)
	m.syncEditorToActive()
	m.toast.info("moved " + msg.key.NoteID)
	if m.session.NoteFolder != "" {
		return m, fetchNotesCmd(m.svc, m.session.NoteFolder)
	}
	return m, nil
}

func (m *Model) updateNoteRenamed(msg noteRenamedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("rename failed: " + msg.err.Error())
		return m, nil
	}
	m.session.Tabs.Rename(msg.key, msg.newID)
	m.toast.info("renamed to " + msg.newID)
	return m, fetchNotesCmd(m.svc, msg.key.Folder)
}

func (m *Model) updateNoteDeleted(msg noteDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("delete failed: " + msg.err.Error())
		return m, nil
	}
	m.session.CloseTabDiscarding(msg.key)
	m.syncEditorToActive()
	return m, fetchNotesCmd(m.svc, msg.key.Folder)
}

func (m *Model) updateSearchResults(msg searchResultsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast.error("search: " + msg.err.Error())
		return m, nil
	}
	m.searchResults = msg.results
	m.searchIdx = 0
	if len(msg.results) == 0 {
		m.status = "no matches for " + msg.query
	}
	return m, nil
}

func (m *Model) updateReveal(msg revealMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, workspace.ErrNotFound) {
			m.toast.warning("that note no longer exists")
		} else {
			m.toast.error("opening result: " + msg.err.Error())
		}
		return m, nil
	}
	m.session.ApplyReveal(msg.result)
	if msg.result.Placeholder != nil {
		m.status = "showing " + msg.result.Note.Title + " (outside the loaded tree)"
	}
	m.focus = focusEditor
	m.syncEditorToActive()
	return m, nil
}

func (m *Model) manualSave() (tea.Model, tea.Cmd) {
	key, content, ok := m.session.ManualSave()
	if !ok {
		return m, nil
	}
	return m, saveNoteCmd(m.svc, key, content, true)
}

func (m *Model) requestCloseActiveTab() (tea.Model, tea.Cmd) {
	tab, ok := m.session.Tabs.Active()
	if !ok {
		return m, nil
	}
	if tab.Dirty {
		m.pendingKey = tab.Key()
		m.pendingAction = actionCloseTab
		m.confirm.Open("Unsaved changes", fmt.Sprintf("Discard changes to %q?", tab.Note.Title), "Discard", "Keep editing")
		return m, nil
	}
	if err := m.session.CloseTab(tab.Key()); err != nil {
		m.toast.error(err.Error())
		return m, nil
	}
	m.syncEditorToActive()
	return m, nil
}

func (m *Model) cycleTab(dir int) (tea.Model, tea.Cmd) {
	tabs := m.session.Tabs.Tabs()
	if len(tabs) < 2 {
		return m, nil
	}
	activeKey, ok := m.session.Tabs.ActiveKey()
	if !ok {
		return m, nil
	}
	idx := 0
	for i, tab := range tabs {
		if tab.Key() == activeKey {
			idx = i
			break
		}
	}
	next := (idx + dir + len(tabs)) % len(tabs)
	m.session.SwitchTab(tabs[next].Key())
	m.syncEditorToActive()
	return m, nil
}

func (m *Model) openNote(note types.Note) {
	m.session.OpenNote(note)
	m.focus = focusEditor
	m.syncEditorToActive()
}

// syncEditorToActive aligns the textarea with the active tab's live content.
// Called after anything that changes which tab is active.
func (m *Model) syncEditorToActive() {
	tab, ok := m.session.Tabs.Active()
	if !ok {
		m.editor.SetValue("")
		m.editor.Blur()
		if m.focus == focusEditor {
			m.focus = focusNotes
		}
		return
	}
	m.editor.SetValue(tab.Live)
	if m.focus == focusEditor {
		m.editor.Focus()
	}
	m.syncPreview()
}

func (m *Model) syncPreview() {
	if !m.preview {
		return
	}
	tab, ok := m.session.Tabs.Active()
	if !ok {
		m.viewer.SetContent("")
		return
	}
	m.viewer.SetContent(renderMarkdown(tab.Live, m.viewer.Width))
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusSidebar:
		if len(m.session.Notes) > 0 {
			m.focus = focusNotes
		} else if m.session.Tabs.Len() > 0 {
			m.focus = focusEditor
			m.editor.Focus()
		}
	case focusNotes:
		if m.session.Tabs.Len() > 0 {
			m.focus = focusEditor
			m.editor.Focus()
		} else {
			m.focus = focusSidebar
		}
	case focusEditor:
		m.editor.Blur()
		m.focus = focusSidebar
	}
}

func (m *Model) persistSessionState() {
	if m.stateStore == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	state := m.session.SnapshotState()
	state.SidebarHidden = m.sidebarHidden
	if err := m.stateStore.Save(ctx, &state); err != nil {
		m.log.Warn("persisting session state", logging.F("error", err))
	}
}

func selectedRow(rows []sidebarRow, idx int) (sidebarRow, bool) {
	if idx < 0 || idx >= len(rows) {
		return sidebarRow{}, false
	}
	return rows[idx], true
}

func untitledNotebookName(roots []*types.Notebook, parent string) string {
	name := "New Notebook"
	for i := 2; workspace.FindByPath(roots, filepath.Join(parent, name)) != nil; i++ {
		name = fmt.Sprintf("New Notebook %d", i)
	}
	return name
}
