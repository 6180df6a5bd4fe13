package backend

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SaveAttachment decodes a base64 payload into the notebook folder next to
// the notes and returns the written file's path. Pasted images and dropped
// files land here; the sibling-note-list refresh after a manual save picks
// them up.
func (s *Service) SaveAttachment(ctx context.Context, folder, fileName, data string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(folder, fileName)
	if err := os.WriteFile(path, decoded, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ListAttachments lists files in the note's attachment directory (a folder
// named after the note's stem), if one exists.
func (s *Service) ListAttachments(ctx context.Context, folder, noteID string) ([]string, error) {
	stem := strings.TrimSuffix(noteID, filepath.Ext(noteID))
	dir := filepath.Join(folder, stem)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
