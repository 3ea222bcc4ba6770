package pipeline

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/glbcrunch/internal/naming"
)

// Candidate is a discovered GLB file.
type Candidate struct {
	Path    string // As found under the scan root.
	RelPath string // Slash-separated, relative to the scan root; shown to the user.
	Size    int64
}

// DiscoverOptions tunes [DiscoverWith].
type DiscoverOptions struct {
	MaxDepth int

	// SkipUnreadable turns unreadable subdirectories into a call to OnSkip
	// instead of failing the whole scan. The root itself must be readable.
	SkipUnreadable bool
	OnSkip         func(path string, err error)
}

// Discover walks root and returns every regular file whose lowercased name
// ends in ".glb", at most maxDepth directories below root. Files directly in
// root are depth 0, files in root/a are depth 1, and so on. The result is
// sorted by RelPath.
func Discover(root string, maxDepth int) ([]Candidate, error) {
	return DiscoverWith(root, DiscoverOptions{MaxDepth: maxDepth})
}

// DiscoverWith is [Discover] with options. The root may itself be a
// symbolic link to a directory; links below it are never followed, so link
// cycles cannot occur. Candidate paths keep root as given.
func DiscoverWith(root string, opts DiscoverOptions) ([]Candidate, error) {
	root = filepath.Clean(root)
	walkRoot := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		walkRoot = resolved
	}
	underRoot := func(path string) string {
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}
		return filepath.Join(root, rel)
	}
	var files []Candidate

	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path != walkRoot && opts.SkipUnreadable && d != nil && d.IsDir() {
				if opts.OnSkip != nil {
					opts.OnSkip(underRoot(path), walkErr)
				}
				return filepath.SkipDir
			}
			return walkErr
		}

		if path == walkRoot && !d.IsDir() {
			return fmt.Errorf("%s is not a directory", root)
		}
		if d.IsDir() {
			if path == walkRoot {
				return nil
			}
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return err
			}
			if depthOf(rel) > opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !naming.IsGLB(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, Candidate{
			Path:    underRoot(path),
			RelPath: naming.DisplayName(walkRoot, path),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// depthOf returns the number of components in a root-relative directory path.
func depthOf(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
