package workspace

import "sort"

// Expansion tracks which folders are expanded in the sidebar and which have a
// child fetch in flight. The loading set gates duplicate fetches: a second
// expand on an already-loading path must not issue another request.
type Expansion struct {
	expanded map[string]bool
	loading  map[string]bool
}

func NewExpansion() *Expansion {
	return &Expansion{
		expanded: map[string]bool{},
		loading:  map[string]bool{},
	}
}

func (e *Expansion) Expand(path string) {
	e.expanded[path] = true
}

// Collapse hides the folder but keeps any loaded children in the tree for an
// instant re-expand.
func (e *Expansion) Collapse(path string) {
	delete(e.expanded, path)
}

func (e *Expansion) IsExpanded(path string) bool {
	return e.expanded[path]
}

// BeginLoad marks a child fetch in flight. It returns false when one is
// already running for the path, in which case the caller must not fetch.
func (e *Expansion) BeginLoad(path string) bool {
	if e.loading[path] {
		return false
	}
	e.loading[path] = true
	return true
}

// EndLoad clears the in-flight flag whether the fetch succeeded or failed,
// so a failed expand can be retried.
func (e *Expansion) EndLoad(path string) {
	delete(e.loading, path)
}

func (e *Expansion) IsLoading(path string) bool {
	return e.loading[path]
}

// ExpandedPaths returns the expanded set sorted, for session persistence.
func (e *Expansion) ExpandedPaths() []string {
	paths := make([]string, 0, len(e.expanded))
	for path := range e.expanded {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
