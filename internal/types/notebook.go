package types

// Notebook is a single folder in the workspace hierarchy. Children carry the
// lazy-loading protocol: an empty slice means the folder is a leaf (or its
// expandability is unknown), a single child with an empty ID is the sentinel
// meaning "has children, not yet fetched", and a non-empty slice without the
// sentinel holds the fully loaded children.
type Notebook struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Children []*Notebook `json:"children"`
}

// SentinelChild returns the placeholder child used to mark a folder as
// expandable before its children have been fetched.
func SentinelChild() *Notebook {
	return &Notebook{}
}

// HasRealChildren reports whether the node's children are fully loaded.
func (n *Notebook) HasRealChildren() bool {
	return n != nil && len(n.Children) > 0 && n.Children[0].ID != ""
}

// IsExpandable reports whether the node can be expanded at all, whether or
// not its children have been fetched yet.
func (n *Notebook) IsExpandable() bool {
	return n != nil && len(n.Children) > 0
}

// Clone returns a copy of the node with the same children slice. Children are
// shared, not copied; tree operations that change a subtree build fresh nodes
// along the modified spine instead.
func (n *Notebook) Clone() *Notebook {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}
