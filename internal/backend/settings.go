package backend

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"azimuth/internal/types"
)

const settingsFileName = ".azimuth_settings.json"

func settingsPath(base string) string {
	return filepath.Join(base, settingsFileName)
}

// LoadSettings reads the workspace settings document, returning defaults when
// the file does not exist yet.
func (s *Service) LoadSettings(ctx context.Context, base string) (types.WorkspaceSettings, error) {
	data, err := os.ReadFile(settingsPath(base))
	if err != nil {
		if os.IsNotExist(err) {
			return types.DefaultWorkspaceSettings(), nil
		}
		return types.WorkspaceSettings{}, err
	}
	settings := types.DefaultWorkspaceSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return types.WorkspaceSettings{}, err
	}
	if settings.Tags == nil {
		settings.Tags = map[string][]string{}
	}
	if settings.NotebookStyles == nil {
		settings.NotebookStyles = map[string]types.NotebookStyle{}
	}
	return settings, nil
}

func (s *Service) SaveSettings(ctx context.Context, base string, settings types.WorkspaceSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(settingsPath(base), data)
}

// ToggleFavorite flips the favorite state of a "folder/noteID" path and
// persists the result, returning the updated settings.
func (s *Service) ToggleFavorite(ctx context.Context, base, notePath string) (types.WorkspaceSettings, error) {
	settings, err := s.LoadSettings(ctx, base)
	if err != nil {
		return types.WorkspaceSettings{}, err
	}
	found := false
	kept := settings.Favorites[:0]
	for _, p := range settings.Favorites {
		if p == notePath {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	settings.Favorites = kept
	if !found {
		settings.Favorites = append(settings.Favorites, notePath)
	}
	if err := s.SaveSettings(ctx, base, settings); err != nil {
		return types.WorkspaceSettings{}, err
	}
	return settings, nil
}

// SetNoteTags replaces the tag list of a note; an empty list removes the entry.
func (s *Service) SetNoteTags(ctx context.Context, base, notePath string, tags []string) (types.WorkspaceSettings, error) {
	settings, err := s.LoadSettings(ctx, base)
	if err != nil {
		return types.WorkspaceSettings{}, err
	}
	if len(tags) == 0 {
		delete(settings.Tags, notePath)
	} else {
		settings.Tags[notePath] = append([]string{}, tags...)
	}
	if err := s.SaveSettings(ctx, base, settings); err != nil {
		return types.WorkspaceSettings{}, err
	}
	return settings, nil
}

func (s *Service) NoteTags(ctx context.Context, base, notePath string) ([]string, error) {
	settings, err := s.LoadSettings(ctx, base)
	if err != nil {
		return nil, err
	}
	return append([]string{}, settings.Tags[notePath]...), nil
}

// AllTags returns the sorted, deduplicated union of every note's tags.
func (s *Service) AllTags(ctx context.Context, base string) ([]string, error) {
	settings, err := s.LoadSettings(ctx, base)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	tags := []string{}
	for _, list := range settings.Tags {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// NotesByTag returns the note paths carrying the given tag.
func (s *Service) NotesByTag(ctx context.Context, base, tag string) ([]string, error) {
	settings, err := s.LoadSettings(ctx, base)
	if err != nil {
		return nil, err
	}
	paths := []string{}
	for path, tags := range settings.Tags {
		for _, t := range tags {
			if t == tag {
				paths = append(paths, path)
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
