package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Matcher reports whether a path matches an exclusion pattern. Both
// implementations are compiled once per run and evaluate the path relative
// to the scan root, with forward slashes regardless of platform.
type Matcher interface {
	Match(relPath string) bool
}

// Compile builds a Matcher for pattern. With asRegex the pattern is a Go
// regular expression searched unanchored over the relative path; otherwise
// it is a glob (*, ?, character classes).
//
//nolint:ireturn // factory returns one of two matcher variants
func Compile(pattern string, asRegex bool) (Matcher, error) {
	if asRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude regex %q: %w", pattern, err)
		}
		return &regexMatcher{re: re}, nil
	}
	return compileGlob(pattern)
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) Match(relPath string) bool {
	return m.re.MatchString(filepath.ToSlash(relPath))
}

// globMatcher is a glob pattern translated to a regexp. A pattern without a
// path separator matches the base name (or any path suffix); a pattern
// containing / is anchored at the root of the relative path.
type globMatcher struct {
	re       *regexp.Regexp
	original string
}

func compileGlob(pattern string) (*globMatcher, error) {
	reStr, err := globToRegex(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude glob %q: %w", pattern, err)
	}

	if strings.Contains(pattern, "/") {
		reStr = "^" + reStr + "$"
	} else {
		reStr = "(^|/)" + reStr + "$"
	}

	re, err := regexp.Compile(reStr)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude glob %q: %w", pattern, err)
	}
	return &globMatcher{re: re, original: pattern}, nil
}

func (m *globMatcher) Match(relPath string) bool {
	return m.re.MatchString(filepath.ToSlash(relPath))
}

// globToRegex translates a glob pattern to a regexp fragment. * matches
// within a path segment, ** crosses segments, ? matches one character and
// [...] passes through as a character class ([!...] negates).
func globToRegex(pattern string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(.*/)?")
					i += 3
				} else {
					b.WriteString(".*")
					i += 2
				}
			} else {
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		case '[':
			j := i + 1
			if j < len(pattern) && pattern[j] == '!' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++ // literal ] as first class member
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j >= len(pattern) {
				return "", fmt.Errorf("unterminated character class at offset %d", i)
			}
			cls := pattern[i+1 : j]
			if strings.HasPrefix(cls, "!") {
				cls = "^" + cls[1:]
			}
			b.WriteString("[" + cls + "]")
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return b.String(), nil
}
