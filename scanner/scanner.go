package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path string
	Size int64
}

// Scanner walks a directory tree collecting files by extension.
type Scanner struct {
	rootDir    string
	extensions []string
	skip       func(path string) bool
}

// New returns a scanner for rootDir. With no extensions every file matches.
func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Skip sets a predicate for paths to leave out. A skipped directory is not
// descended into.
func (s *Scanner) Skip(fn func(path string) bool) *Scanner {
	s.skip = fn
	return s
}

// Scan returns the matching files sorted by path. Hidden directories are
// not visited.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootDir && (isHidden(d.Name()) || s.skipped(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isTargetFile(path) || s.skipped(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (s *Scanner) skipped(path string) bool {
	return s.skip != nil && s.skip(path)
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
