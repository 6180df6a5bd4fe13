package workspace

import (
	"time"

	"azimuth/internal/types"
)

// TabKey identifies a tab by note id and containing folder. At most one tab
// exists per key.
type TabKey struct {
	NoteID string
	Folder string
}

func KeyFor(note types.Note) TabKey {
	return TabKey{NoteID: note.ID, Folder: note.Folder}
}

// OpenTab pairs a note's last-saved snapshot with the live editor content.
// Dirty is always recomputed from the two, never carried forward.
type OpenTab struct {
	Note  types.Note
	Live  string
	Dirty bool
}

func (t OpenTab) Key() TabKey {
	return KeyFor(t.Note)
}

// ConfirmationPolicy decides destructive prompts. Injecting it keeps the tab
// transitions deterministic and testable without a UI.
type ConfirmationPolicy interface {
	ConfirmDiscard(tab OpenTab) bool
	ConfirmDelete(note types.Note) bool
}

// DiscardAll is the policy used once the user has already answered a prompt.
type DiscardAll struct{}

func (DiscardAll) ConfirmDiscard(OpenTab) bool   { return true }
func (DiscardAll) ConfirmDelete(types.Note) bool { return true }

// TabSession owns the open tabs and the active selection. Every mutation
// builds a fresh tab slice so callers can detect change by identity.
type TabSession struct {
	tabs   []OpenTab
	active int
}

func NewTabSession() *TabSession {
	return &TabSession{active: -1}
}

func (s *TabSession) Tabs() []OpenTab {
	return s.tabs
}

func (s *TabSession) Len() int {
	return len(s.tabs)
}

func (s *TabSession) Active() (OpenTab, bool) {
	if s.active < 0 || s.active >= len(s.tabs) {
		return OpenTab{}, false
	}
	return s.tabs[s.active], true
}

func (s *TabSession) ActiveKey() (TabKey, bool) {
	tab, ok := s.Active()
	if !ok {
		return TabKey{}, false
	}
	return tab.Key(), true
}

func (s *TabSession) Get(key TabKey) (OpenTab, bool) {
	if i := s.indexOf(key); i >= 0 {
		return s.tabs[i], true
	}
	return OpenTab{}, false
}

func (s *TabSession) HasDirty() bool {
	for _, tab := range s.tabs {
		if tab.Dirty {
			return true
		}
	}
	return false
}

// Open activates the tab for the note, creating a clean one when none
// exists. An existing tab keeps its live content, which may differ from the
// freshly supplied note content if the user edited since the last save.
func (s *TabSession) Open(note types.Note) {
	if i := s.indexOf(KeyFor(note)); i >= 0 {
		s.active = i
		return
	}
	tabs := s.clone()
	tabs = append(tabs, OpenTab{Note: note, Live: note.Content})
	s.tabs = tabs
	s.active = len(tabs) - 1
}

// Edit replaces the active tab's live content and recomputes dirty. It
// reports whether there was an active tab to edit.
func (s *TabSession) Edit(content string) bool {
	if s.active < 0 || s.active >= len(s.tabs) {
		return false
	}
	tabs := s.clone()
	tab := &tabs[s.active]
	tab.Live = content
	tab.Dirty = content != tab.Note.Content
	s.tabs = tabs
	return true
}

// SwitchTo activates the tab with the given key. The outgoing tab's live
// content is already stored in the list; its dirty flag is recomputed here so
// backgrounded edits survive the switch.
func (s *TabSession) SwitchTo(key TabKey) bool {
	target := s.indexOf(key)
	if target < 0 {
		return false
	}
	tabs := s.clone()
	if s.active >= 0 && s.active < len(tabs) {
		out := &tabs[s.active]
		out.Dirty = out.Live != out.Note.Content
	}
	s.tabs = tabs
	s.active = target
	return true
}

// Close removes the tab. A dirty tab needs the policy's consent; declining
// aborts with ErrConfirmationDeclined and no state change. Closing the active
// tab activates the last remaining tab in list order, or nothing.
func (s *TabSession) Close(key TabKey, policy ConfirmationPolicy) error {
	i := s.indexOf(key)
	if i < 0 {
		return ErrNotFound
	}
	if s.tabs[i].Dirty && policy != nil && !policy.ConfirmDiscard(s.tabs[i]) {
		return ErrConfirmationDeclined
	}
	s.remove(i)
	return nil
}

// CloseDiscarding removes the tab without consulting any policy. Used when
// the underlying note was deleted or moved and the key is stale.
func (s *TabSession) CloseDiscarding(key TabKey) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.remove(i)
	return true
}

// OnSaveSuccess records a completed save on the tab with the given key, not
// on whatever tab happens to be active. The saved content becomes the new
// last-saved snapshot and dirty recomputes against the live content, which
// may have moved on during the save.
func (s *TabSession) OnSaveSuccess(key TabKey, savedContent string, savedAt time.Time) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	tabs := s.clone()
	tab := &tabs[i]
	tab.Note.Content = savedContent
	tab.Note.Title = DeriveTitle(savedContent)
	tab.Note.UpdatedAt = savedAt
	tab.Dirty = tab.Live != savedContent
	s.tabs = tabs
	return true
}

// Rename updates a tab's note id after a successful backend rename.
func (s *TabSession) Rename(key TabKey, newID string) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	tabs := s.clone()
	tabs[i].Note.ID = newID
	s.tabs = tabs
	return true
}

func (s *TabSession) indexOf(key TabKey) int {
	for i, tab := range s.tabs {
		if tab.Key() == key {
			return i
		}
	}
	return -1
}

func (s *TabSession) clone() []OpenTab {
	tabs := make([]OpenTab, len(s.tabs))
	copy(tabs, s.tabs)
	return tabs
}

func (s *TabSession) remove(i int) {
	tabs := make([]OpenTab, 0, len(s.tabs)-1)
	tabs = append(tabs, s.tabs[:i]...)
	tabs = append(tabs, s.tabs[i+1:]...)
	wasActive := s.active == i
	switch {
	case wasActive:
		s.active = len(tabs) - 1
	case s.active > i:
		s.active--
	}
	s.tabs = tabs
	if len(tabs) == 0 {
		s.active = -1
	}
}
