package backend

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"azimuth/internal/types"
)

// Search walks the workspace and matches the query case-insensitively against
// text file contents and filenames. Results are ordered by match count.
func (s *Service) Search(ctx context.Context, base, query string) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []types.SearchResult{}, nil
	}
	queryLower := strings.ToLower(query)

	results := []types.SearchResult{}
	err := filepath.WalkDir(base, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			if path != base && skipDirName(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isTextExtension(fileExtension(entry.Name())) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(data)
		contentLower := strings.ToLower(content)
		fileName := entry.Name()

		matches := strings.Count(contentLower, queryLower)
		if strings.Contains(strings.ToLower(fileName), queryLower) {
			matches++
		}
		if matches == 0 {
			return nil
		}

		parent := filepath.Dir(path)
		results = append(results, types.SearchResult{
			NoteID:       fileName,
			NoteTitle:    strings.TrimSuffix(fileName, filepath.Ext(fileName)),
			NotebookPath: parent,
			NotebookName: filepath.Base(parent),
			Snippet:      snippetAround(content, contentLower, queryLower),
			MatchCount:   matches,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})
	return results, nil
}

// snippetAround extracts ~50 bytes of context either side of the first match,
// with ellipses marking truncation and newlines flattened to spaces.
func snippetAround(content, contentLower, queryLower string) string {
	pos := strings.Index(contentLower, queryLower)
	if pos < 0 {
		snippet := content
		if len(snippet) > 100 {
			snippet = snippet[:100]
		}
		return strings.ReplaceAll(snippet, "\n", " ")
	}
	start := pos - 50
	if start < 0 {
		start = 0
	}
	end := pos + len(queryLower) + 50
	if end > len(content) {
		end = len(content)
	}
	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return strings.ReplaceAll(snippet, "\n", " ")
}
