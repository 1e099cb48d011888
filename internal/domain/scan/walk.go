package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/mote/internal/domain/ignore"
)

// hardSkips are never scanned regardless of ignore rules.
var hardSkips = map[string]bool{
	".mote": true,
	".git":  true,
	".jj":   true,
}

// Walk traverses root depth-first and calls fn for every regular file that
// survives the hard skips and the ignore rules. rel is the forward-slash
// path relative to root. Symlinks are never followed and never reported.
func Walk(root string, rules *ignore.RuleSet, fn func(rel, abs string, d fs.DirEntry) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relNative, err := filepath.Rel(root, path)
		if err != nil || relNative == "." {
			return nil
		}
		rel := filepath.ToSlash(relNative)

		if hardSkips[topSegment(rel)] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if rules.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}

		if rules.Match(rel, false) {
			return nil
		}

		return fn(rel, path, d)
	})
}

func topSegment(rel string) string {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}
