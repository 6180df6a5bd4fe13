package workspace

import (
	"errors"
	"testing"
	"time"

	"azimuth/internal/types"
)

func note(id, folder, content string) types.Note {
	return types.Note{ID: id, Folder: folder, Title: DeriveTitle(content), Content: content}
}

type declineAll struct{}

func (declineAll) ConfirmDiscard(OpenTab) bool   { return false }
func (declineAll) ConfirmDelete(types.Note) bool { return false }

func TestOpenNoDuplicateTabs(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws/Work", "# A")
	s.Open(a)
	s.Open(note("b.md", "/ws/Work", "# B"))
	s.Open(a)
	if s.Len() != 2 {
		t.Fatalf("tab count = %d, want 2", s.Len())
	}
	if key, _ := s.ActiveKey(); key != KeyFor(a) {
		t.Fatalf("reopen did not activate existing tab, active = %v", key)
	}
}

func TestSameNoteIDDifferentFolders(t *testing.T) {
	s := NewTabSession()
	s.Open(note("todo.md", "/ws/Work", "work"))
	s.Open(note("todo.md", "/ws/Personal", "home"))
	if s.Len() != 2 {
		t.Fatalf("tab count = %d, want 2; same id in different folders must be distinct tabs", s.Len())
	}
}

func TestEditRecomputesDirty(t *testing.T) {
	s := NewTabSession()
	s.Open(note("a.md", "/ws", "original"))

	if !s.Edit("changed") {
		t.Fatal("Edit on active tab returned false")
	}
	if tab, _ := s.Active(); !tab.Dirty {
		t.Fatal("changed content not marked dirty")
	}

	// Typing back to the saved content clears dirty.
	s.Edit("original")
	if tab, _ := s.Active(); tab.Dirty {
		t.Fatal("content equal to last save still marked dirty")
	}
}

func TestSwitchKeepsBackgroundEdits(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "alpha")
	b := note("b.md", "/ws", "beta")
	s.Open(a)
	s.Open(b)

	s.SwitchTo(KeyFor(a))
	s.Edit("alpha edited")
	s.SwitchTo(KeyFor(b))

	tab, ok := s.Get(KeyFor(a))
	if !ok {
		t.Fatal("backgrounded tab lost")
	}
	if tab.Live != "alpha edited" || !tab.Dirty {
		t.Fatalf("background tab = %+v; edits must survive the switch", tab)
	}
	if active, _ := s.Active(); active.Live != "beta" {
		t.Fatalf("active tab content = %q", active.Live)
	}
}

func TestCloseDirtyNeedsConfirmation(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "alpha")
	s.Open(a)
	s.Edit("alpha edited")

	err := s.Close(KeyFor(a), declineAll{})
	if !errors.Is(err, ErrConfirmationDeclined) {
		t.Fatalf("Close with declining policy = %v, want ErrConfirmationDeclined", err)
	}
	if s.Len() != 1 {
		t.Fatal("declined close still removed the tab")
	}

	if err := s.Close(KeyFor(a), DiscardAll{}); err != nil {
		t.Fatalf("Close with consenting policy = %v", err)
	}
	if s.Len() != 0 {
		t.Fatal("confirmed close left the tab open")
	}
}

func TestCloseCleanSkipsPolicy(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "alpha")
	s.Open(a)
	if err := s.Close(KeyFor(a), declineAll{}); err != nil {
		t.Fatalf("clean close consulted the policy: %v", err)
	}
}

func TestCloseActivatesLastRemaining(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "a")
	b := note("b.md", "/ws", "b")
	c := note("c.md", "/ws", "c")
	s.Open(a)
	s.Open(b)
	s.Open(c)

	// Closing a background tab keeps the active one.
	if err := s.Close(KeyFor(a), nil); err != nil {
		t.Fatal(err)
	}
	if key, _ := s.ActiveKey(); key != KeyFor(c) {
		t.Fatalf("active after background close = %v, want c", key)
	}

	// Closing the active tab activates the last remaining.
	if err := s.Close(KeyFor(c), nil); err != nil {
		t.Fatal(err)
	}
	if key, _ := s.ActiveKey(); key != KeyFor(b) {
		t.Fatalf("active after active close = %v, want b", key)
	}

	if err := s.Close(KeyFor(b), nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Active(); ok {
		t.Fatal("empty session reports an active tab")
	}
}

func TestCloseUnknownTab(t *testing.T) {
	s := NewTabSession()
	if err := s.Close(TabKey{NoteID: "x.md", Folder: "/ws"}, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Close(unknown) = %v, want ErrNotFound", err)
	}
}

func TestOnSaveSuccessTargetsKeyNotActiveTab(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "alpha")
	b := note("b.md", "/ws", "beta")
	s.Open(a)
	s.Edit("alpha v2")
	s.Open(b)

	at := time.Now()
	if !s.OnSaveSuccess(KeyFor(a), "alpha v2", at) {
		t.Fatal("save success for open tab not applied")
	}

	saved, _ := s.Get(KeyFor(a))
	if saved.Dirty {
		t.Fatal("tab still dirty after matching save")
	}
	if saved.Note.Content != "alpha v2" || !saved.Note.UpdatedAt.Equal(at) {
		t.Fatalf("saved snapshot not updated: %+v", saved.Note)
	}
	if active, _ := s.Active(); active.Key() != KeyFor(b) {
		t.Fatal("save success changed the active tab")
	}
}

func TestOnSaveSuccessWithNewerEditsStaysDirty(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "v1")
	s.Open(a)
	s.Edit("v2")
	// The user keeps typing while the v2 save is in flight.
	s.Edit("v3")

	s.OnSaveSuccess(KeyFor(a), "v2", time.Now())
	tab, _ := s.Get(KeyFor(a))
	if !tab.Dirty {
		t.Fatal("tab with edits newer than the save must stay dirty")
	}
	if tab.Live != "v3" {
		t.Fatalf("live content = %q, save must not clobber newer edits", tab.Live)
	}
}

func TestCloseDiscarding(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "alpha")
	s.Open(a)
	s.Edit("dirty")
	if !s.CloseDiscarding(KeyFor(a)) {
		t.Fatal("CloseDiscarding on open tab returned false")
	}
	if s.Len() != 0 {
		t.Fatal("tab survived CloseDiscarding")
	}
	if s.CloseDiscarding(KeyFor(a)) {
		t.Fatal("CloseDiscarding on missing tab returned true")
	}
}

func TestRename(t *testing.T) {
	s := NewTabSession()
	a := note("a.md", "/ws", "alpha")
	s.Open(a)
	if !s.Rename(KeyFor(a), "renamed.md") {
		t.Fatal("rename on open tab returned false")
	}
	if _, ok := s.Get(TabKey{NoteID: "renamed.md", Folder: "/ws"}); !ok {
		t.Fatal("tab not reachable under new id")
	}
}
