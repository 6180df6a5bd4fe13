package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"azimuth/internal/backend"
	"azimuth/internal/config"
	"azimuth/internal/logging"
	"azimuth/internal/types"
	"azimuth/internal/workspace"
)

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	root := t.TempDir()
	svc := backend.New()
	m := New(svc, config.Default(), root, logging.Nop(), nil, types.DefaultWorkspaceSettings(), types.SessionState{}, nil)
	m.width = 120
	m.height = 40
	m.layoutPanes()
	return m, root
}

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(t, m, c)
		}
		return
	}
	// Follow-up commands a result produces (e.g. a re-fetch) are not run.
	m.Update(msg)
}

func TestAutosaveTickStaleVersusCurrent(t *testing.T) {
	m, _ := newTestModel(t)
	n := types.Note{ID: "a.md", Folder: m.session.WorkspaceRoot, Title: "a", Content: "v1"}
	m.session.OpenNote(n)

	ctx1, _ := m.session.EditActive("v2")
	ctx2, _ := m.session.EditActive("v3")

	if _, cmd := m.Update(autosaveTickMsg{ctx: ctx1}); cmd != nil {
		t.Fatal("stale tick produced a save command")
	}
	_, cmd := m.Update(autosaveTickMsg{ctx: ctx2})
	if cmd == nil {
		t.Fatal("current tick produced no save command")
	}

	runCmd(t, m, cmd)
	data, err := os.ReadFile(filepath.Join(m.session.WorkspaceRoot, "a.md"))
	if err != nil {
		t.Fatalf("reading saved note: %v", err)
	}
	if string(data) != "v3" {
		t.Fatalf("saved %q, want the latest content", data)
	}
	tab, _ := m.session.Tabs.Active()
	if tab.Dirty {
		t.Fatal("tab still dirty after save round trip")
	}
}

func TestCloseDirtyTabConfirmFlow(t *testing.T) {
	m, root := newTestModel(t)
	if err := os.WriteFile(filepath.Join(root, "a.md"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := types.Note{ID: "a.md", Folder: root, Title: "a", Content: "v1"}
	m.session.OpenNote(n)
	m.session.EditActive("v2")

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlW}); cmd != nil {
		t.Fatal("dirty close issued a command before confirmation")
	}
	if !m.confirm.IsOpen() {
		t.Fatal("dirty close did not prompt")
	}

	// Declining keeps the tab.
	m.Update(keyMsg("n"))
	if m.session.Tabs.Len() != 1 {
		t.Fatal("declining the prompt closed the tab")
	}
	if m.confirm.IsOpen() {
		t.Fatal("prompt still open after decline")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	_, cmd := m.Update(keyMsg("y"))
	if m.session.Tabs.Len() != 0 {
		t.Fatal("confirming discard did not close the tab")
	}
	if cmd != nil {
		t.Fatal("closing a tab must not touch the filesystem")
	}
	if _, err := os.Stat(filepath.Join(root, "a.md")); err != nil {
		t.Fatal("closing a tab deleted the note file")
	}
}

func TestDeleteNoteConfirmFlow(t *testing.T) {
	m, root := newTestModel(t)
	if err := os.WriteFile(filepath.Join(root, "a.md"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := types.Note{ID: "a.md", Folder: root, Title: "a", Content: "v1"}
	m.session.SelectFolder(root, []types.Note{n})
	m.focus = focusNotes
	m.noteIdx = 0

	m.Update(keyMsg("d"))
	if !m.confirm.IsOpen() {
		t.Fatal("delete did not prompt")
	}
	_, cmd := m.Update(keyMsg("y"))
	runCmd(t, m, cmd)

	if _, err := os.Stat(filepath.Join(root, "a.md")); !os.IsNotExist(err) {
		t.Fatalf("note still on disk after confirmed delete: %v", err)
	}
}

func TestExpandKeyIssuesSingleFetch(t *testing.T) {
	m, _ := newTestModel(t)
	m.session.ApplyRootSnapshot([]*types.Notebook{pending("/ws/Work", "Work")})
	m.focus = focusSidebar
	m.sidebarIdx = 0

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expanding a pending folder fetched nothing")
	}
	if _, second := m.Update(tea.KeyMsg{Type: tea.KeyRight}); second != nil {
		t.Fatal("second expand while loading issued another fetch")
	}
}

func TestMoveRejectedBeforeBackend(t *testing.T) {
	m, _ := newTestModel(t)
	m.session.ApplyRootSnapshot([]*types.Notebook{
		loaded("/ws/Projects", "Projects",
			loaded("/ws/Projects/Sub", "Sub",
				loaded("/ws/Projects/Sub/Archive", "Archive"))),
	})
	m.session.Expansion.Expand("/ws/Projects")
	m.session.Expansion.Expand("/ws/Projects/Sub")
	m.focus = focusSidebar

	rows := flattenTree(m.session.Roots, m.session.Expansion)
	m.sidebarIdx = rowIndexOf(rows, "/ws/Projects/Sub")
	m.Update(keyMsg("m"))
	if m.pendingMove != "/ws/Projects/Sub" {
		t.Fatalf("pending move = %q", m.pendingMove)
	}

	m.sidebarIdx = rowIndexOf(rows, "/ws/Projects/Sub/Archive")
	_, cmd := m.Update(keyMsg("p"))
	if cmd != nil {
		t.Fatal("cycle-producing move reached the backend")
	}
	if m.pendingMove == "" {
		t.Fatal("rejected move cleared the armed source")
	}
}

func TestMoveNoteClosesStaleTab(t *testing.T) {
	m, root := newTestModel(t)
	from := filepath.Join(root, "From")
	to := filepath.Join(root, "To")
	for _, dir := range []string{from, to} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(from, "idea.md"), []byte("# Idea"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := types.Note{ID: "idea.md", Folder: from, Title: "Idea", Content: "# Idea"}
	m.session.ApplyRootSnapshot([]*types.Notebook{loaded(from, "From"), loaded(to, "To")})
	m.session.SelectFolder(from, []types.Note{n})
	m.session.OpenNote(n)

	m.focus = focusNotes
	m.noteIdx = 0
	m.Update(keyMsg("m"))
	if m.pendingNoteMove != workspace.KeyFor(n) {
		t.Fatalf("pending note move = %v", m.pendingNoteMove)
	}

	m.focus = focusSidebar
	rows := flattenTree(m.session.Roots, m.session.Expansion)
	m.sidebarIdx = rowIndexOf(rows, to)
	_, cmd := m.Update(keyMsg("p"))
	runCmd(t, m, cmd)

	if _, err := os.Stat(filepath.Join(to, "idea.md")); err != nil {
		t.Fatalf("note not at target: %v", err)
	}
	if _, err := os.Stat(filepath.Join(from, "idea.md")); !os.IsNotExist(err) {
		t.Fatal("note still at source")
	}
	if m.session.Tabs.Len() != 0 {
		t.Fatal("tab with the old folder key survived the move")
	}
}

func TestNewKeepsCallerRoot(t *testing.T) {
	root := t.TempDir()
	restore := types.SessionState{WorkspaceRoot: filepath.Join(root, "elsewhere")}
	m := New(backend.New(), config.Default(), root, logging.Nop(), nil, types.DefaultWorkspaceSettings(), restore, nil)
	if m.session.WorkspaceRoot != root {
		t.Fatalf("session root = %q, want the resolved root %q", m.session.WorkspaceRoot, root)
	}
}

func TestManualSaveRefreshesNoteList(t *testing.T) {
	m, root := newTestModel(t)
	n := types.Note{ID: "a.md", Folder: root, Title: "a", Content: "v1"}
	m.session.SelectFolder(root, []types.Note{n})
	m.session.OpenNote(n)
	m.session.EditActive("v2")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("manual save produced no command")
	}
	msg := cmd()
	saved, ok := msg.(noteSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("save result = %#v", msg)
	}
	_, refresh := m.Update(saved)
	if refresh == nil {
		t.Fatal("manual save completion did not refresh the note list")
	}
	if _, ok := refresh().(notesMsg); !ok {
		t.Fatal("save completion follow-up is not a note-list fetch")
	}
}

func TestAutosaveCompletionSkipsRefresh(t *testing.T) {
	m, root := newTestModel(t)
	n := types.Note{ID: "a.md", Folder: root, Title: "a", Content: "v1"}
	m.session.SelectFolder(root, []types.Note{n})
	m.session.OpenNote(n)
	ctx, _ := m.session.EditActive("v2")

	_, cmd := m.Update(autosaveTickMsg{ctx: ctx})
	if cmd == nil {
		t.Fatal("autosave produced no command")
	}
	saved, ok := cmd().(noteSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("save result = %#v", saved)
	}
	if _, refresh := m.Update(saved); refresh != nil {
		t.Fatal("autosave completion triggered an extra fetch")
	}
}

func TestRenameNoteFlow(t *testing.T) {
	m, root := newTestModel(t)
	if err := os.WriteFile(filepath.Join(root, "old.md"), []byte("# Old"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := types.Note{ID: "old.md", Folder: root, Title: "Old", Content: "# Old"}
	m.session.SelectFolder(root, []types.Note{n})
	m.session.OpenNote(n)
	m.focus = focusNotes
	m.noteIdx = 0

	m.Update(keyMsg("r"))
	if !m.renaming {
		t.Fatal("rename key did not open the input")
	}
	m.renameInput.SetValue("new.md")
	_, cmd := m.Update(keyMsg("enter"))
	runCmd(t, m, cmd)

	if _, err := os.Stat(filepath.Join(root, "new.md")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "old.md")); !os.IsNotExist(err) {
		t.Fatal("old file still on disk")
	}
	key, _ := m.session.Tabs.ActiveKey()
	if key.NoteID != "new.md" {
		t.Fatalf("tab key after rename = %v", key)
	}
}

func TestRenameEscCancels(t *testing.T) {
	m, root := newTestModel(t)
	n := types.Note{ID: "a.md", Folder: root, Title: "a", Content: "v1"}
	m.session.SelectFolder(root, []types.Note{n})
	m.focus = focusNotes
	m.noteIdx = 0

	m.Update(keyMsg("r"))
	if _, cmd := m.Update(keyMsg("esc")); cmd != nil {
		t.Fatal("cancelling a rename issued a command")
	}
	if m.renaming {
		t.Fatal("esc left the rename input open")
	}
}

func TestAutosaveToggleKeyPersistsSettings(t *testing.T) {
	m, root := newTestModel(t)
	m.session.ApplyRootSnapshot([]*types.Notebook{loaded(filepath.Join(root, "Work"), "Work")})
	m.focus = focusSidebar
	m.sidebarIdx = 0

	_, cmd := m.Update(keyMsg("a"))
	if m.session.Settings.AutoSave {
		t.Fatal("toggle did not disable autosave")
	}
	runCmd(t, m, cmd)
	if _, err := os.Stat(filepath.Join(root, ".azimuth_settings.json")); err != nil {
		t.Fatalf("settings not persisted: %v", err)
	}
	if _, armed := m.session.EditActive("anything"); armed {
		t.Fatal("edit armed a timer with autosave off")
	}
}

func TestRevealOpensNoteAndExpandsChain(t *testing.T) {
	m, _ := newTestModel(t)
	target := types.Note{ID: "hit.md", Folder: "/ws/Work/Deep", Title: "Found", Content: "# Found"}
	m.session.ApplyRootSnapshot([]*types.Notebook{pending("/ws/Work", "Work")})

	m.Update(revealMsg{result: workspace.RevealResult{
		Patches: []workspace.ChildPatch{
			{Path: "/ws/Work", Children: []*types.Notebook{pending("/ws/Work/Deep", "Deep")}},
			{Path: "/ws/Work/Deep", Children: []*types.Notebook{}},
		},
		Expanded: []string{"/ws/Work", "/ws/Work/Deep"},
		Notes:    []types.Note{target},
		Note:     target,
	}})

	if key, _ := m.session.Tabs.ActiveKey(); key != workspace.KeyFor(target) {
		t.Fatalf("active tab = %v", key)
	}
	if !m.session.Expansion.IsExpanded("/ws/Work/Deep") {
		t.Fatal("reveal did not expand the chain")
	}
	if m.editor.Value() != "# Found" {
		t.Fatalf("editor content = %q", m.editor.Value())
	}
	if m.focus != focusEditor {
		t.Fatal("reveal did not focus the editor")
	}
}
