// Package services contains pure domain logic with no external dependencies.
package services

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// DefaultTestPattern is the test-file naming convention used when the
// workspace configuration does not override it.
const DefaultTestPattern = "*_test.py"

// SelectionService discovers candidate test files and applies the blacklist.
type SelectionService struct {
	blacklist entities.Blacklist
	pattern   string
}

// NewSelectionService creates a selection service for the given blacklist and
// file name pattern. An empty pattern falls back to DefaultTestPattern.
func NewSelectionService(blacklist entities.Blacklist, pattern string) *SelectionService {
	if pattern == "" {
		pattern = DefaultTestPattern
	}
	return &SelectionService{
		blacklist: blacklist,
		pattern:   pattern,
	}
}

// DiscoverTests walks root and partitions every file matching the test naming
// convention into selected and skipped (blacklisted) sets. Paths are
// normalized relative to root with forward slashes before matching, so
// blacklist entries are root-relative.
func (s *SelectionService) DiscoverTests(root string) (selected, skipped []entities.TestFile, err error) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		match, err := filepath.Match(s.pattern, d.Name())
		if err != nil {
			return fmt.Errorf("invalid test pattern %q: %w", s.pattern, err)
		}
		if !match {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to normalize path %s: %w", path, err)
		}
		file := entities.NewTestFile(filepath.ToSlash(rel))

		if s.blacklist.Matches(file.Path) {
			skipped = append(skipped, file)
			return nil
		}
		selected = append(selected, file)
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("test discovery failed under %s: %w", root, walkErr)
	}
	return selected, skipped, nil
}

// Pattern returns the active test-file naming convention.
func (s *SelectionService) Pattern() string {
	return s.pattern
}
