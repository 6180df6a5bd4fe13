package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"azimuth/internal/types"
)

var textExtensions = map[string]struct{}{
	"md": {}, "markdown": {}, "mdown": {}, "mkd": {},
	"txt": {}, "text": {}, "log": {},
	"json": {}, "yaml": {}, "yml": {}, "toml": {}, "ini": {}, "cfg": {}, "conf": {}, "config": {},
	"rs": {}, "py": {}, "js": {}, "ts": {}, "jsx": {}, "tsx": {}, "java": {}, "c": {}, "cpp": {}, "h": {}, "hpp": {},
	"go": {}, "rb": {}, "php": {}, "swift": {}, "kt": {}, "scala": {}, "cs": {},
	"lua": {}, "pl": {}, "r": {}, "sql": {}, "sh": {}, "bash": {}, "zsh": {}, "fish": {},
	"html": {}, "htm": {}, "css": {}, "scss": {}, "less": {}, "xml": {}, "svg": {},
	"csv": {}, "tsv": {},
	"rst": {}, "adoc": {}, "org": {}, "tex": {},
	"env": {}, "gitignore": {}, "editorconfig": {},
	"makefile": {}, "properties": {},
	"": {},
}

var imageExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {}, "bmp": {}, "ico": {}, "tiff": {},
}

func isTextExtension(ext string) bool {
	_, ok := textExtensions[ext]
	return ok
}

func isImageExtension(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}

func fileExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return strings.TrimPrefix(ext, ".")
}

// ListNotes returns every file in a folder as a note. Text files are read
// inline; binary files become a markdown placeholder pointing at the file so
// the editor has something to show.
func (s *Service) ListNotes(ctx context.Context, folder string) ([]types.Note, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Note{}, nil
		}
		return nil, err
	}

	notes := make([]types.Note, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		name := entry.Name()
		path := filepath.Join(folder, name)
		ext := fileExtension(name)

		var content string
		switch {
		case isTextExtension(ext):
			data, err := os.ReadFile(path)
			if err != nil {
				content = attachmentPlaceholder(name, path)
			} else {
				content = string(data)
			}
		case isImageExtension(ext):
			content = fmt.Sprintf("![%s](%s)", name, path)
		default:
			content = attachmentPlaceholder(name, path)
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		notes = append(notes, types.Note{
			ID:        name,
			Title:     stem,
			Content:   content,
			Folder:    folder,
			CreatedAt: info.ModTime(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(notes, func(i, j int) bool {
		return strings.ToLower(notes[i].ID) < strings.ToLower(notes[j].ID)
	})
	return notes, nil
}

func attachmentPlaceholder(name, path string) string {
	return fmt.Sprintf("[attachment: %s](%s)", name, path)
}

func (s *Service) ReadNote(ctx context.Context, folder, id string) (string, error) {
	data, err := os.ReadFile(filepath.Join(folder, id))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Service) SaveNote(ctx context.Context, folder, id, content string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(folder, id), []byte(content), 0o644)
}

func (s *Service) RenameNote(ctx context.Context, folder, oldID, newID string) error {
	oldPath := filepath.Join(folder, oldID)
	newPath := filepath.Join(folder, newID)
	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("file does not exist: %s", oldID)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("a file with that name already exists: %s", newID)
	}
	return os.Rename(oldPath, newPath)
}

// DeleteNote removes the note file and, if present, its attachment directory
// (a folder named after the note's stem).
func (s *Service) DeleteNote(ctx context.Context, folder, id string) error {
	path := filepath.Join(folder, id)
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	stem := strings.TrimSuffix(id, filepath.Ext(id))
	attachments := filepath.Join(folder, stem)
	if info, err := os.Stat(attachments); err == nil && info.IsDir() {
		return os.RemoveAll(attachments)
	}
	return nil
}
