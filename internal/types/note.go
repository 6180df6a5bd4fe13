package types

import "time"

// Note is a single file inside a notebook folder. The ID is the filename and
// the (ID, Folder) pair identifies the note across the workspace. Title is
// derived from content and is not authoritative.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchResult is a single hit from a workspace-wide content search.
type SearchResult struct {
	NoteID       string `json:"note_id"`
	NoteTitle    string `json:"note_title"`
	NotebookPath string `json:"notebook_path"`
	NotebookName string `json:"notebook_name"`
	Snippet      string `json:"snippet"`
	MatchCount   int    `json:"match_count"`
}
