package workspace

import (
	"time"

	"azimuth/internal/types"
)

// Session is the whole client-side workspace state: the loaded notebook
// tree, expansion and loading markers, open tabs, the autosave timer and the
// workspace settings. It is not safe for concurrent use; the UI loop owns it
// and asynchronous results re-enter through the Apply methods.
type Session struct {
	WorkspaceRoot string
	Roots         []*types.Notebook
	Expansion     *Expansion
	Tabs          *TabSession
	Autosave      Autosave
	Settings      types.WorkspaceSettings

	// Notes is the listing for the currently selected folder.
	Notes      []types.Note
	NoteFolder string

	policy ConfirmationPolicy
}

func NewSession(workspaceRoot string, settings types.WorkspaceSettings, policy ConfirmationPolicy) *Session {
	return &Session{
		WorkspaceRoot: workspaceRoot,
		Expansion:     NewExpansion(),
		Tabs:          NewTabSession(),
		Settings:      settings,
		policy:        policy,
	}
}

// SetWorkspaceRoot switches to a different notes directory. Everything keyed
// to the old root is stale, so the tree, expansion state, tabs and the
// autosave timer all reset.
func (s *Session) SetWorkspaceRoot(root string) {
	s.WorkspaceRoot = root
	s.Roots = nil
	s.Expansion = NewExpansion()
	s.Tabs = NewTabSession()
	s.Autosave.Cancel()
	s.Notes = nil
	s.NoteFolder = ""
}

// ApplyRootSnapshot installs a fresh top-level scan. The first snapshot is
// adopted as-is; later ones merge so already-loaded subtrees survive the
// refresh.
func (s *Session) ApplyRootSnapshot(snapshot []*types.Notebook) {
	if s.Roots == nil {
		s.Roots = snapshot
		return
	}
	s.Roots = MergeTrees(snapshot, s.Roots)
}

// Expand marks the notebook expanded and reports whether its children still
// need fetching. A second call while the fetch is in flight returns false so
// the caller does not issue a duplicate request.
func (s *Session) Expand(path string) (needFetch bool) {
	s.Expansion.Expand(path)
	node := FindByPath(s.Roots, path)
	if node == nil || node.HasRealChildren() {
		return false
	}
	if !node.IsExpandable() {
		return false
	}
	return s.Expansion.BeginLoad(path)
}

// ApplyChildren lands a completed child fetch. A failed fetch clears the
// loading marker so the user can retry; a nil error patches the children in.
// The patch is dropped silently when the parent vanished from the tree in
// the meantime.
func (s *Session) ApplyChildren(path string, children []*types.Notebook, err error) {
	s.Expansion.EndLoad(path)
	if err != nil {
		return
	}
	if patched, ok := PatchChildren(s.Roots, path, children); ok {
		s.Roots = patched
	}
}

func (s *Session) Collapse(path string) {
	s.Expansion.Collapse(path)
}

// SelectFolder records a folder's note listing as the current one.
func (s *Session) SelectFolder(folder string, notes []types.Note) {
	s.NoteFolder = folder
	s.Notes = notes
}

// OpenNote opens or activates the note's tab.
func (s *Session) OpenNote(note types.Note) {
	s.Tabs.Open(note)
}

// EditActive applies an edit to the active tab and, when autosave is
// enabled, re-arms the timer. The returned context must ride on the delayed
// message so the fire can be matched against the latest arm.
func (s *Session) EditActive(content string) (SaveContext, bool) {
	if !s.Tabs.Edit(content) {
		return SaveContext{}, false
	}
	if !s.Settings.AutoSave {
		return SaveContext{}, false
	}
	key, _ := s.Tabs.ActiveKey()
	return s.Autosave.Arm(key), true
}

func (s *Session) SwitchTab(key TabKey) bool {
	return s.Tabs.SwitchTo(key)
}

// CloseTab closes the tab through the confirmation policy. When the closed
// tab is the autosave target the timer is cancelled too.
func (s *Session) CloseTab(key TabKey) error {
	if err := s.Tabs.Close(key, s.policy); err != nil {
		return err
	}
	s.cancelAutosaveFor(key)
	return nil
}

// CloseTabDiscarding drops a tab whose note was deleted or moved.
func (s *Session) CloseTabDiscarding(key TabKey) bool {
	ok := s.Tabs.CloseDiscarding(key)
	if ok {
		s.cancelAutosaveFor(key)
	}
	return ok
}

// AutosaveFire handles an elapsed timer. It returns the save to perform, or
// ok=false when the timer is stale, the target tab is no longer the active
// one, or nothing actually changed since the last save. A backgrounded tab
// keeps its edits in memory; they are written on the next manual save or on
// switching back and editing again.
func (s *Session) AutosaveFire(ctx SaveContext) (key TabKey, content string, ok bool) {
	if !s.Autosave.ShouldFire(ctx) {
		return TabKey{}, "", false
	}
	s.Autosave.Consume()
	if active, found := s.Tabs.ActiveKey(); !found || active != ctx.Key() {
		return TabKey{}, "", false
	}
	tab, found := s.Tabs.Get(ctx.Key())
	if !found || !tab.Dirty {
		return TabKey{}, "", false
	}
	return ctx.Key(), tab.Live, true
}

// ManualSave returns the active tab's pending save and cancels any armed
// autosave timer so the explicit save is not followed by a redundant one.
func (s *Session) ManualSave() (key TabKey, content string, ok bool) {
	tab, found := s.Tabs.Active()
	if !found {
		return TabKey{}, "", false
	}
	s.Autosave.Cancel()
	if !tab.Dirty {
		return TabKey{}, "", false
	}
	return tab.Key(), tab.Live, true
}

// ApplySaveSuccess records a completed save on the owning tab and refreshes
// the folder listing's copy of the note when it is visible.
func (s *Session) ApplySaveSuccess(key TabKey, savedContent string, savedAt time.Time) {
	s.Tabs.OnSaveSuccess(key, savedContent, savedAt)
	if s.NoteFolder != key.Folder {
		return
	}
	for i, n := range s.Notes {
		if n.ID == key.NoteID {
			notes := make([]types.Note, len(s.Notes))
			copy(notes, s.Notes)
			notes[i].Content = savedContent
			notes[i].Title = DeriveTitle(savedContent)
			notes[i].UpdatedAt = savedAt
			s.Notes = notes
			return
		}
	}
}

// ValidateMove checks a drag target against the loaded tree.
func (s *Session) ValidateMove(sourcePath, targetPath string) error {
	return CanMove(s.Roots, sourcePath, targetPath)
}

// ApplyReveal lands a resolved search hit: patches the fetched tree levels
// in, expands the chain, installs the folder listing and opens the note.
func (s *Session) ApplyReveal(r RevealResult) {
	for _, patch := range r.Patches {
		if patched, ok := PatchChildren(s.Roots, patch.Path, patch.Children); ok {
			s.Roots = patched
		}
	}
	for _, path := range r.Expanded {
		s.Expansion.Expand(path)
	}
	s.SelectFolder(r.Note.Folder, r.Notes)
	s.OpenNote(r.Note)
}

func (s *Session) ApplySettings(settings types.WorkspaceSettings) {
	s.Settings = settings
	if !settings.AutoSave {
		s.Autosave.Cancel()
	}
}

// SnapshotState captures what persists across restarts.
func (s *Session) SnapshotState() types.SessionState {
	state := types.SessionState{
		WorkspaceRoot: s.WorkspaceRoot,
		ExpandedPaths: s.Expansion.ExpandedPaths(),
	}
	for _, tab := range s.Tabs.Tabs() {
		state.OpenTabs = append(state.OpenTabs, types.TabRef{NoteID: tab.Note.ID, Folder: tab.Note.Folder})
	}
	if key, ok := s.Tabs.ActiveKey(); ok {
		state.ActiveTab = &types.TabRef{NoteID: key.NoteID, Folder: key.Folder}
	}
	return state
}

func (s *Session) cancelAutosaveFor(key TabKey) {
	if !s.Autosave.Armed() {
		return
	}
	if s.Autosave.key == key {
		s.Autosave.Cancel()
	}
}
