package workspace

import "strings"

// SaveContext is captured when an autosave timer is armed and carried inside
// the delayed message. At fire time it is checked against the current
// scheduler state; a stale sequence or a changed active tab discards the
// fire.
type SaveContext struct {
	Seq    uint64
	NoteID string
	Folder string
}

func (c SaveContext) Key() TabKey {
	return TabKey{NoteID: c.NoteID, Folder: c.Folder}
}

// Autosave is the debounce state for the save timer. Each edit re-arms the
// timer under a new sequence number, which invalidates every timer armed
// before it. The scheduler never holds content; at fire time the live
// content is read from the tab session so the latest edits are saved.
type Autosave struct {
	seq   uint64
	armed bool
	key   TabKey
}

// Arm records a pending save for the tab and returns the context the delayed
// message must carry.
func (a *Autosave) Arm(key TabKey) SaveContext {
	a.seq++
	a.armed = true
	a.key = key
	return SaveContext{Seq: a.seq, NoteID: key.NoteID, Folder: key.Folder}
}

// Cancel invalidates any in-flight timer. Used on manual save and when the
// target tab closes.
func (a *Autosave) Cancel() {
	a.seq++
	a.armed = false
}

func (a *Autosave) Armed() bool {
	return a.armed
}

// ShouldFire reports whether a timer that just elapsed is still the current
// one. Timers armed before the latest Arm or Cancel carry an older sequence
// and are dropped here.
func (a *Autosave) ShouldFire(ctx SaveContext) bool {
	return a.armed && ctx.Seq == a.seq && ctx.Key() == a.key
}

// Consume marks the current timer as fired so a duplicate delivery of the
// same context is ignored.
func (a *Autosave) Consume() {
	a.armed = false
}

// DeriveTitle extracts a display title from note content: the first
// non-blank line with leading markdown heading markers stripped.
func DeriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return line
	}
	return "Untitled"
}
