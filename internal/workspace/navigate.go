package workspace

import (
	"context"
	"fmt"

	"azimuth/internal/types"
)

// TreeFetcher is the slice of the backend the navigator needs. It is
// satisfied by *backend.Service and by test fakes.
type TreeFetcher interface {
	ListChildren(ctx context.Context, path string) ([]*types.Notebook, error)
	ListNotes(ctx context.Context, folder string) ([]types.Note, error)
	StatNotebook(ctx context.Context, path string) (*types.Notebook, error)
}

// ChildPatch is one loaded level of the ancestor chain, ready to apply with
// PatchChildren.
type ChildPatch struct {
	Path     string
	Children []*types.Notebook
}

// RevealResult carries everything needed to bring a search hit on screen:
// the tree levels to patch in, the paths to mark expanded, the containing
// folder's notes, and the note itself. Placeholder is set when the
// containing notebook exists on disk but sits outside the loaded tree, in
// which case Patches and Expanded are empty.
type RevealResult struct {
	Patches     []ChildPatch
	Expanded    []string
	Notes       []types.Note
	Note        types.Note
	Placeholder *types.Notebook
}

// ResolveSearchHit walks the ancestor chain from the workspace root down to
// the notebook containing the hit, fetching each missing level, and then
// fetches the folder's notes and the note content. The tree snapshot passed
// in is read only; the caller applies the returned patches on its own loop.
//
// A chain level that vanished between search and reveal falls back to a stat
// of the containing notebook, so the caller can still show the note against
// a placeholder node. Only when the notebook itself is gone does the reveal
// fail with ErrNotFound.
func ResolveSearchHit(ctx context.Context, f TreeFetcher, roots []*types.Notebook, workspaceRoot string, hit types.SearchResult) (RevealResult, error) {
	chain, ok := AncestorChain(workspaceRoot, hit.NotebookPath)
	if !ok {
		return RevealResult{}, fmt.Errorf("%w: %s is outside the workspace", ErrValidation, hit.NotebookPath)
	}

	result := RevealResult{}
	snapshot := roots
	for _, path := range chain {
		node := FindByPath(snapshot, path)
		if node == nil || !node.HasRealChildren() {
			children, err := f.ListChildren(ctx, path)
			if err != nil {
				return revealViaPlaceholder(ctx, f, hit)
			}
			patched, ok := PatchChildren(snapshot, path, children)
			if !ok {
				return revealViaPlaceholder(ctx, f, hit)
			}
			snapshot = patched
			result.Patches = append(result.Patches, ChildPatch{Path: path, Children: children})
		}
		result.Expanded = append(result.Expanded, path)
	}

	notes, err := f.ListNotes(ctx, hit.NotebookPath)
	if err != nil {
		return RevealResult{}, fmt.Errorf("listing notes in %s: %w", hit.NotebookPath, err)
	}
	note, ok := findNote(notes, hit.NoteID)
	if !ok {
		return RevealResult{}, fmt.Errorf("%w: note %s", ErrNotFound, hit.NoteID)
	}
	result.Notes = notes
	result.Note = note
	return result, nil
}

func revealViaPlaceholder(ctx context.Context, f TreeFetcher, hit types.SearchResult) (RevealResult, error) {
	nb, err := f.StatNotebook(ctx, hit.NotebookPath)
	if err != nil {
		return RevealResult{}, fmt.Errorf("%w: notebook %s", ErrNotFound, hit.NotebookPath)
	}
	notes, err := f.ListNotes(ctx, hit.NotebookPath)
	if err != nil {
		return RevealResult{}, fmt.Errorf("listing notes in %s: %w", hit.NotebookPath, err)
	}
	note, ok := findNote(notes, hit.NoteID)
	if !ok {
		return RevealResult{}, fmt.Errorf("%w: note %s", ErrNotFound, hit.NoteID)
	}
	return RevealResult{Notes: notes, Note: note, Placeholder: nb}, nil
}

func findNote(notes []types.Note, id string) (types.Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return types.Note{}, false
}
