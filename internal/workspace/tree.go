package workspace

import (
	"path/filepath"
	"strings"

	"azimuth/internal/types"
)

// Tree operations are pure: they never mutate their inputs and return fresh
// nodes along any modified spine so callers can detect change by identity.
// The tree itself is a forest of root-level notebooks, matching the depth-1
// snapshots the backend produces.

// FindByPath locates a node anywhere in the forest by its canonical path.
func FindByPath(roots []*types.Notebook, path string) *types.Notebook {
	for _, root := range roots {
		if found := findInSubtree(root, path); found != nil {
			return found
		}
	}
	return nil
}

func findInSubtree(node *types.Notebook, path string) *types.Notebook {
	if node == nil || node.ID == "" {
		return nil
	}
	if node.Path == path {
		return node
	}
	for _, child := range node.Children {
		if found := findInSubtree(child, path); found != nil {
			return found
		}
	}
	return nil
}

// IsDescendant reports whether path names a node strictly below ancestor in
// its currently loaded subtree. Unloaded descendants are invisible here; the
// backend remains the final cycle guard for moves.
func IsDescendant(ancestor *types.Notebook, path string) bool {
	if ancestor == nil {
		return false
	}
	for _, child := range ancestor.Children {
		if child.ID == "" {
			continue
		}
		if child.Path == path || IsDescendant(child, path) {
			return true
		}
	}
	return false
}

// MergeTrees reconciles a freshly scanned depth-1 snapshot with the current
// forest. Snapshot nodes matched by path keep the current node's children
// whenever those are fully loaded, adopting only the snapshot's scalar
// fields; otherwise the snapshot node is taken wholesale. Nodes present only
// in the snapshot are inserted; current nodes absent from the snapshot are
// dropped. Without this rule a watch-triggered rescan would collapse every
// expanded folder.
func MergeTrees(snapshot, current []*types.Notebook) []*types.Notebook {
	byPath := make(map[string]*types.Notebook, len(current))
	for _, node := range current {
		byPath[node.Path] = node
	}

	merged := make([]*types.Notebook, 0, len(snapshot))
	for _, incoming := range snapshot {
		existing, ok := byPath[incoming.Path]
		if ok && existing.HasRealChildren() {
			keep := incoming.Clone()
			keep.Children = existing.Children
			merged = append(merged, keep)
			continue
		}
		merged = append(merged, incoming)
	}
	return merged
}

// PatchChildren returns a forest in which the node at path has its children
// replaced. The spine from each root down to the node is copied; untouched
// subtrees are shared. The second return value reports whether the path was
// found.
func PatchChildren(roots []*types.Notebook, path string, children []*types.Notebook) ([]*types.Notebook, bool) {
	patched := false
	out := make([]*types.Notebook, len(roots))
	for i, root := range roots {
		if !patched {
			if replaced, ok := patchInSubtree(root, path, children); ok {
				out[i] = replaced
				patched = true
				continue
			}
		}
		out[i] = root
	}
	if !patched {
		return roots, false
	}
	return out, true
}

func patchInSubtree(node *types.Notebook, path string, children []*types.Notebook) (*types.Notebook, bool) {
	if node == nil || node.ID == "" {
		return nil, false
	}
	if node.Path == path {
		clone := node.Clone()
		clone.Children = children
		return clone, true
	}
	for i, child := range node.Children {
		if replaced, ok := patchInSubtree(child, path, children); ok {
			clone := node.Clone()
			clone.Children = make([]*types.Notebook, len(node.Children))
			copy(clone.Children, node.Children)
			clone.Children[i] = replaced
			return clone, true
		}
	}
	return nil, false
}

// AncestorChain lists every folder path from the workspace root (exclusive)
// down to folder (inclusive), in order. ok is false when folder does not sit
// under base.
func AncestorChain(base, folder string) ([]string, bool) {
	if folder == base {
		return nil, true
	}
	rel, err := filepath.Rel(base, folder)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}
	segments := strings.Split(rel, string(filepath.Separator))
	chain := make([]string, 0, len(segments))
	current := base
	for _, segment := range segments {
		current = filepath.Join(current, segment)
		chain = append(chain, current)
	}
	return chain, true
}
