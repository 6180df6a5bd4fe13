package workspace

import (
	"fmt"
	"path/filepath"

	"azimuth/internal/types"
)

// CanMove validates a notebook move against the loaded tree before any
// filesystem work happens. It rejects moving a notebook into itself or into
// any of its loaded descendants. Descendants that are not loaded yet cannot
// be checked here; the backend re-checks with real paths before renaming.
func CanMove(roots []*types.Notebook, sourcePath, targetPath string) error {
	if sourcePath == "" || targetPath == "" {
		return fmt.Errorf("%w: source and target are required", ErrValidation)
	}
	if filepath.Clean(sourcePath) == filepath.Clean(targetPath) {
		return fmt.Errorf("%w: cannot move a notebook into itself", ErrValidation)
	}
	source := FindByPath(roots, sourcePath)
	if source == nil {
		return fmt.Errorf("%w: unknown notebook %s", ErrNotFound, sourcePath)
	}
	target := FindByPath(roots, targetPath)
	if target == nil {
		return fmt.Errorf("%w: unknown notebook %s", ErrNotFound, targetPath)
	}
	if IsDescendant(source, targetPath) {
		return fmt.Errorf("%w: cannot move a notebook into its own subtree", ErrValidation)
	}
	if filepath.Dir(filepath.Clean(sourcePath)) == filepath.Clean(targetPath) {
		return fmt.Errorf("%w: notebook is already in that location", ErrValidation)
	}
	return nil
}
