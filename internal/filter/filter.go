// Package filter decides which files under the source root are candidates
// for organizing. Two rules compose: an extension allow-list and an optional
// exclusion pattern (glob by default, regex on request).
package filter

import (
	"path/filepath"
	"strings"
)

// Config describes the filtering surface of a run before compilation.
type Config struct {
	Endings        []string // extension allow-list, empty = all files pass
	Exclude        string   // exclusion pattern, empty = none
	ExcludeIsRegex bool     // interpret Exclude as a regular expression
}

// Rules is the compiled per-run filter: a normalized extension allow-list
// plus an optional exclusion matcher. Compiled once, then read-only.
type Rules struct {
	endings []string
	exclude Matcher
}

// New compiles cfg into Rules. An invalid exclusion pattern under the
// declared mode is a configuration error, never silently downgraded.
func New(cfg Config) (*Rules, error) {
	r := &Rules{endings: normalizeEndings(cfg.Endings)}

	if cfg.Exclude != "" {
		m, err := Compile(cfg.Exclude, cfg.ExcludeIsRegex)
		if err != nil {
			return nil, err
		}
		r.exclude = m
	}
	return r, nil
}

// Admit reports whether the file at relPath (relative to the scan root)
// passes the allow-list and is not excluded.
func (r *Rules) Admit(relPath string) bool {
	if len(r.endings) > 0 && !r.hasAllowedEnding(relPath) {
		return false
	}
	if r.exclude != nil && r.exclude.Match(relPath) {
		return false
	}
	return true
}

func (r *Rules) hasAllowedEnding(relPath string) bool {
	name := strings.ToLower(filepath.Base(relPath))
	for _, e := range r.endings {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// normalizeEndings lowercases each ending and prepends a dot when the user
// wrote "jpg" instead of ".jpg". Blank entries are dropped.
func normalizeEndings(endings []string) []string {
	out := make([]string, 0, len(endings))
	for _, e := range endings {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
