package action

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultIncludes matches action files anywhere below the root.
var DefaultIncludes = []string{
	"**/*.action.yaml",
	"**/*.action.yml",
	"**/*.action.json",
}

// DefaultExcludes contains patterns for common temporary/backup files that should be ignored
var DefaultExcludes = []string{
	"**/.#*",
	"**/*~",
	"**/*.bak",
	"**/*.swp",
	"**/*.tmp",
	"**/._*",
}

// FileDiscoverer finds action files below a root directory
type FileDiscoverer interface {
	Discover(includes, excludes []string) ([]string, error)
}

type fsDiscoverer struct {
	fs   afero.Fs
	root string
}

// NewFileDiscoverer returns a discoverer over root, which must be absolute.
func NewFileDiscoverer(fs afero.Fs, root string) FileDiscoverer {
	return &fsDiscoverer{fs: fs, root: filepath.Clean(root)}
}

// Discover returns the sorted paths (joined with the root) of files matching any
// include pattern and no exclude pattern.
func (d *fsDiscoverer) Discover(includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		return []string{}, nil
	}
	rootFS := afero.NewIOFS(afero.NewBasePathFs(d.fs, d.root))
	seen := make(map[string]bool)
	for _, pattern := range includes {
		if err := validatePattern(pattern); err != nil {
			return nil, err
		}
		matches, err := doublestar.Glob(rootFS, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			seen[match] = true
		}
	}
	excludePatterns := combineExcludePatterns(excludes)
	files := make([]string, 0, len(seen))
	for rel := range seen {
		if shouldExclude(rel, excludePatterns) {
			continue
		}
		files = append(files, filepath.Join(d.root, filepath.FromSlash(rel)))
	}
	slices.Sort(files)
	return files, nil
}

// validatePattern blocks traversal and absolute path injections.
func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("INVALID_PATTERN: empty pattern")
	}
	cleanPattern := filepath.Clean(pattern)
	if filepath.IsAbs(cleanPattern) {
		return fmt.Errorf("INVALID_PATTERN: absolute paths not allowed: %s", pattern)
	}
	if slices.Contains(strings.Split(filepath.ToSlash(cleanPattern), "/"), "..") {
		return fmt.Errorf("INVALID_PATTERN: parent directory references not allowed: %s", pattern)
	}
	return nil
}

func combineExcludePatterns(excludes []string) []string {
	combined := make([]string, 0, len(DefaultExcludes)+len(excludes))
	combined = append(combined, DefaultExcludes...)
	for _, pattern := range excludes {
		combined = append(combined, filepath.ToSlash(pattern))
	}
	return combined
}

// shouldExclude matches a slash-separated relative path and its base name.
func shouldExclude(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
