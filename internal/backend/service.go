// Package backend implements the filesystem collaborator behind the workspace
// engine: notebook scanning, note I/O, search, per-workspace settings and the
// directory watch signal. Notebooks are directories, notes are files.
package backend

import (
	"strings"

	"azimuth/internal/logging"
)

// Directories skipped when scanning for notebooks.
var ignoredDirs = map[string]struct{}{
	".git": {}, ".svn": {}, ".hg": {},
	"node_modules": {}, "target": {}, "build": {}, "dist": {},
	".Trash": {}, ".Spotlight-V100": {}, ".fseventsd": {},
	"Library": {}, "Applications": {},
	".cache": {}, ".npm": {}, ".cargo": {}, ".rustup": {},
	".local": {}, ".config": {},
	"__pycache__": {}, ".venv": {}, "venv": {}, ".tox": {}, ".pytest_cache": {},
	".DS_Store": {}, "Thumbs.db": {},
}

type Service struct {
	maxNotebooks int
	maxScan      int
	log          logging.Logger
}

type Option func(*Service)

// WithScanCaps overrides the root-scan limits (notebook count, directory
// entries examined).
func WithScanCaps(maxNotebooks, maxScan int) Option {
	return func(s *Service) {
		if maxNotebooks > 0 {
			s.maxNotebooks = maxNotebooks
		}
		if maxScan > 0 {
			s.maxScan = maxScan
		}
	}
}

func WithLogger(log logging.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		maxNotebooks: 50,
		maxScan:      200,
		log:          logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func skipDirName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := ignoredDirs[name]
	return ok
}
