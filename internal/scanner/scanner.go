package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// FileWalker is responsible for traversing directories and feeding
// matching DAO file paths to a channel
type FileWalker struct {
	Suffixes []string // case-sensitive filename suffixes, e.g. "Dao.java"
	Excludes []string
}

func NewFileWalker(suffixes []string, excludes []string) *FileWalker {
	return &FileWalker{
		Suffixes: suffixes,
		Excludes: excludes,
	}
}

// Walk starts the traversal and returns a channel of file paths.
// It runs in a separate goroutine and closes the channel when done.
// The channels are finite and not restartable; call Walk again for a
// fresh pass.
func (fw *FileWalker) Walk(ctx context.Context, root string) (<-chan string, <-chan error) {
	paths := make(chan string, 100) // Buffered channel
	errs := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errs)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// Check cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if d.IsDir() {
				// Check for exclusions (simple containment or glob)
				for _, exclude := range fw.Excludes {
					if strings.Contains(path, exclude) {
						return filepath.SkipDir
					}
				}
				if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
					return filepath.SkipDir // Skip hidden directories like .git
				}
				return nil
			}

			// Check exclusions for files
			for _, exclude := range fw.Excludes {
				matched, _ := filepath.Match(exclude, d.Name())
				if matched || strings.Contains(path, exclude) {
					return nil // Skip this file
				}
			}

			// Suffix check is case-sensitive on purpose: only the two
			// conventional DAO spellings are targeted by default.
			if fw.matches(d.Name()) {
				select {
				case paths <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			return nil
		})

		if err != nil {
			errs <- err
		}
	}()

	return paths, errs
}

func (fw *FileWalker) matches(name string) bool {
	for _, suffix := range fw.Suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
