package build

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/wippyai/doccorpus/errors"
)

type pattern struct {
	glob glob.Glob
	root glob.Glob // the pattern without a leading "**/", for files in the root
}

// matcher selects unit containers by slash-separated path relative to the
// input directory.
type matcher struct {
	include []pattern
	exclude []pattern
}

func compile(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "pattern "+p)
		}
		cp := pattern{glob: g}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			if cp.root, err = glob.Compile(rest, '/'); err != nil {
				return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "pattern "+p)
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func newMatcher(include, exclude []string) (*matcher, error) {
	inc, err := compile(include)
	if err != nil {
		return nil, err
	}
	exc, err := compile(exclude)
	if err != nil {
		return nil, err
	}
	return &matcher{include: inc, exclude: exc}, nil
}

func matchAny(patterns []pattern, rel string) bool {
	for _, p := range patterns {
		if p.glob.Match(rel) {
			return true
		}
		if p.root != nil && !strings.Contains(rel, "/") && p.root.Match(rel) {
			return true
		}
	}
	return false
}

func (m *matcher) file(rel string) bool {
	return matchAny(m.include, rel) && !matchAny(m.exclude, rel)
}

// skipDir reports whether everything under the directory is excluded.
func (m *matcher) skipDir(rel string) bool {
	return matchAny(m.exclude, rel) || matchAny(m.exclude, rel+"/**")
}

// Discover walks dir and returns the paths of files matching include and
// none of exclude, sorted. Patterns use "/" separators and "**" for any
// number of directories; "**/x" also matches x in dir itself.
func Discover(dir string, include, exclude []string) ([]string, error) {
	m, err := newMatcher(include, exclude)
	if err != nil {
		return nil, err
	}
	return m.walk(dir)
}

func (m *matcher) walk(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && m.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.file(rel) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.IO(errors.PhaseBuild, "walk "+dir, err)
	}
	slices.Sort(paths)
	return paths, nil
}
