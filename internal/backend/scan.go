package backend

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"azimuth/internal/logging"
	"azimuth/internal/types"
)

// ScanRoot produces the depth-1 notebook snapshot for the workspace root.
// Every notebook carries a sentinel child; real children are fetched lazily
// via ListChildren. The scan is capped so a watch-triggered rescan of a large
// directory stays cheap.
func (s *Service) ScanRoot(ctx context.Context, base string) ([]*types.Notebook, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}

	notebooks := make([]*types.Notebook, 0, s.maxNotebooks)
	scanned := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scanned++
		if scanned > s.maxScan {
			break
		}
		if !entry.IsDir() || skipDirName(entry.Name()) {
			continue
		}
		notebooks = append(notebooks, nodeFor(base, entry.Name()))
		if len(notebooks) >= s.maxNotebooks {
			break
		}
	}
	sortNotebooks(notebooks)
	s.log.Debug("scanned workspace root", logging.F("base", base), logging.F("notebooks", len(notebooks)))
	return notebooks, nil
}

// ListChildren returns the depth-1 child notebooks of a folder, each with a
// sentinel child of its own. Expanding an empty folder therefore yields an
// empty list, which marks the node as a leaf.
func (s *Service) ListChildren(ctx context.Context, path string) ([]*types.Notebook, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	notebooks := make([]*types.Notebook, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || skipDirName(entry.Name()) {
			continue
		}
		notebooks = append(notebooks, nodeFor(path, entry.Name()))
		if len(notebooks) >= s.maxNotebooks {
			break
		}
	}
	sortNotebooks(notebooks)
	return notebooks, nil
}

// StatNotebook builds a node for a folder that exists on disk but was never
// discovered through lazy scanning, e.g. a stale favorite or search hit.
func (s *Service) StatNotebook(ctx context.Context, path string) (*types.Notebook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrInvalid
	}
	return nodeFor(filepath.Dir(path), filepath.Base(path)), nil
}

// CreateNotebook creates a folder under base and returns its node without a
// sentinel child, since a fresh folder has nothing to expand.
func (s *Service) CreateNotebook(ctx context.Context, base, name string) (*types.Notebook, error) {
	path := filepath.Join(base, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &types.Notebook{ID: path, Name: name, Path: path}, nil
}

func nodeFor(parent, name string) *types.Notebook {
	path := filepath.Join(parent, name)
	return &types.Notebook{
		ID:       path,
		Name:     name,
		Path:     path,
		Children: []*types.Notebook{types.SentinelChild()},
	}
}

func sortNotebooks(notebooks []*types.Notebook) {
	sort.Slice(notebooks, func(i, j int) bool {
		return strings.ToLower(notebooks[i].Name) < strings.ToLower(notebooks[j].Name)
	})
}
