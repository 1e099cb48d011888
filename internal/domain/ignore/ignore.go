// Package ignore implements gitignore-style pattern matching for the
// scanner. The scanner and the differ load a RuleSet and query it only
// through its Match predicate.
package ignore

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// rule is one parsed ignore pattern.
type rule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// RuleSet holds the parsed patterns of one ignore file. The zero value
// matches nothing.
type RuleSet struct {
	rules []rule
}

// LoadFile parses the ignore file at path. A missing file yields an empty
// rule set.
func LoadFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &RuleSet{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads gitignore-style patterns, one per line. Blank lines and lines
// starting with # are skipped.
func Parse(r io.Reader) (*RuleSet, error) {
	rs := &RuleSet{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ru := rule{pattern: line}

		if strings.HasPrefix(ru.pattern, "!") {
			ru.negate = true
			ru.pattern = ru.pattern[1:]
		}
		if strings.HasSuffix(ru.pattern, "/") {
			ru.dirOnly = true
			ru.pattern = strings.TrimSuffix(ru.pattern, "/")
		}
		if strings.HasPrefix(ru.pattern, "/") {
			ru.anchored = true
			ru.pattern = ru.pattern[1:]
		} else if strings.Contains(ru.pattern, "/") {
			// A slash anywhere but the end anchors the pattern to the root.
			ru.anchored = true
		}

		if ru.pattern == "" {
			continue
		}
		rs.rules = append(rs.rules, ru)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Len returns the number of parsed rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Match reports whether the forward-slash relative path is ignored. The last
// matching rule wins, so negated patterns can re-include earlier matches.
func (rs *RuleSet) Match(rel string, isDir bool) bool {
	ignored := false
	for _, ru := range rs.rules {
		if ru.dirOnly && !isDir {
			continue
		}
		if ru.matches(rel) {
			ignored = !ru.negate
		}
	}
	return ignored
}

func (ru rule) matches(rel string) bool {
	if ok, err := doublestar.Match(ru.pattern, rel); err == nil && ok {
		return true
	}
	if ru.anchored {
		return false
	}
	// Unanchored patterns match at any depth.
	ok, err := doublestar.Match("**/"+ru.pattern, rel)
	return err == nil && ok
}
