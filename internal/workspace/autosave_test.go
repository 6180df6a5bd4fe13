package workspace

import "testing"

func TestAutosaveStaleSequenceDropped(t *testing.T) {
	var a Autosave
	key := TabKey{NoteID: "a.md", Folder: "/ws"}

	first := a.Arm(key)
	second := a.Arm(key)

	if a.ShouldFire(first) {
		t.Fatal("timer armed before the latest edit must not fire")
	}
	if !a.ShouldFire(second) {
		t.Fatal("latest timer must fire")
	}
}

func TestAutosaveCancelInvalidates(t *testing.T) {
	var a Autosave
	ctx := a.Arm(TabKey{NoteID: "a.md", Folder: "/ws"})
	a.Cancel()
	if a.ShouldFire(ctx) {
		t.Fatal("cancelled timer fired")
	}
}

func TestAutosaveKeyMismatchDropped(t *testing.T) {
	var a Autosave
	ctx := a.Arm(TabKey{NoteID: "a.md", Folder: "/ws"})
	// Re-arm for a different tab under the same sequence counter.
	a.Arm(TabKey{NoteID: "b.md", Folder: "/ws"})
	if a.ShouldFire(ctx) {
		t.Fatal("timer for a superseded tab fired")
	}
}

func TestAutosaveConsumeBlocksDuplicateDelivery(t *testing.T) {
	var a Autosave
	ctx := a.Arm(TabKey{NoteID: "a.md", Folder: "/ws"})
	if !a.ShouldFire(ctx) {
		t.Fatal("fresh timer must fire")
	}
	a.Consume()
	if a.ShouldFire(ctx) {
		t.Fatal("consumed timer fired twice")
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"# Meeting Notes\nbody", "Meeting Notes"},
		{"## Deep heading", "Deep heading"},
		{"plain first line\nsecond", "plain first line"},
		{"\n\n  # padded\n", "padded"},
		{"", "Untitled"},
		{"   \n\t\n", "Untitled"},
		{"###\nreal title", "real title"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.content); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}
