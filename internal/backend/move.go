package backend

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"azimuth/internal/logging"
)

// MoveNotebook relocates a folder under targetDir. The backend keeps its own
// move-into-itself guard independently of the client-side validator, since the
// client can only see descendants it has already loaded.
func (s *Service) MoveNotebook(ctx context.Context, sourcePath, targetDir string) error {
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("source folder does not exist: %s", sourcePath)
	}
	if !sourceInfo.IsDir() {
		return fmt.Errorf("source is not a directory: %s", sourcePath)
	}
	if _, err := os.Stat(targetDir); err != nil {
		return fmt.Errorf("target folder does not exist: %s", targetDir)
	}

	name := filepath.Base(sourcePath)
	destination := filepath.Join(targetDir, name)
	if _, err := os.Stat(destination); err == nil {
		return fmt.Errorf("a folder named %q already exists in the target location", name)
	}
	if isPathWithin(sourcePath, targetDir) {
		return fmt.Errorf("cannot move a folder into itself")
	}

	if err := os.Rename(sourcePath, destination); err != nil {
		// Cross-device moves need copy+delete.
		if copyErr := copyDirRecursive(sourcePath, destination); copyErr != nil {
			return fmt.Errorf("failed to move folder: %v (copy failed: %v)", err, copyErr)
		}
		if delErr := os.RemoveAll(sourcePath); delErr != nil {
			return fmt.Errorf("folder copied but failed to remove original: %v", delErr)
		}
	}
	s.log.Info("moved notebook", logging.F("source", sourcePath), logging.F("target", targetDir))
	return nil
}

// MoveNote relocates a single note file between folders.
func (s *Service) MoveNote(ctx context.Context, sourceFolder, targetFolder, id string) error {
	sourcePath := filepath.Join(sourceFolder, id)
	if _, err := os.Stat(sourcePath); err != nil {
		return fmt.Errorf("note does not exist: %s", id)
	}
	if err := os.MkdirAll(targetFolder, 0o755); err != nil {
		return err
	}
	destination := filepath.Join(targetFolder, id)
	if _, err := os.Stat(destination); err == nil {
		return fmt.Errorf("a note named %q already exists in the target folder", id)
	}
	if err := os.Rename(sourcePath, destination); err != nil {
		if copyErr := copyFile(sourcePath, destination); copyErr != nil {
			return fmt.Errorf("failed to move note: %v (copy failed: %v)", err, copyErr)
		}
		return os.Remove(sourcePath)
	}
	return nil
}

func isPathWithin(ancestor, path string) bool {
	rel, err := filepath.Rel(ancestor, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func copyDirRecursive(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDirRecursive(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
