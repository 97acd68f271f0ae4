// Package filter implements the Path Filter: deciding whether a
// discovered path is in scope from include globs, exclude globs, and an
// optional filter file.
package filter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Filter decides whether a path is in scope. Built once per run and
// immutable thereafter.
type Filter struct {
	includes []string
	excludes []string
}

// New builds a Filter from a filter file (may be empty), CLI include
// globs, and CLI exclude globs, in that order. Invalid glob syntax fails
// fast with the offending pattern named in the returned error.
func New(filterFile string, cliIncludes, cliExcludes []string) (*Filter, error) {
	rules := types.FilterRules{}

	if filterFile != "" {
		fileRules, err := parseFilterFile(filterFile)
		if err != nil {
			return nil, err
		}
		rules.Includes = append(rules.Includes, fileRules.Includes...)
		rules.Excludes = append(rules.Excludes, fileRules.Excludes...)
	}
	rules.Includes = append(rules.Includes, cliIncludes...)
	rules.Excludes = append(rules.Excludes, cliExcludes...)

	for _, p := range rules.Includes {
		if !doublestar.ValidatePattern(p) {
			return nil, errs.Newf(errs.InvalidConfig, "invalid include pattern %q", p)
		}
	}
	for _, p := range rules.Excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, errs.Newf(errs.InvalidConfig, "invalid exclude pattern %q", p)
		}
	}

	return &Filter{includes: rules.Includes, excludes: rules.Excludes}, nil
}

// InScope reports whether path is in scope:
// exclusion wins; otherwise, in-scope iff includes are empty or at least
// one include matches.
func (f *Filter) InScope(path string) bool {
	normalized := strings.TrimPrefix(path, "/")

	for _, pattern := range f.excludes {
		if matches(pattern, path, normalized) {
			return false
		}
	}

	if len(f.includes) == 0 {
		return true
	}
	for _, pattern := range f.includes {
		if matches(pattern, path, normalized) {
			return true
		}
	}
	return false
}

func matches(pattern, path, normalized string) bool {
	if ok, _ := doublestar.Match(pattern, path); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern, normalized)
	return ok
}

// parseFilterFile reads "+ pattern" / "- pattern" lines (blank lines and
// "#" comments ignored) into FilterRules, preserving order.
func parseFilterFile(path string) (types.FilterRules, error) {
	var rules types.FilterRules

	f, err := os.Open(path)
	if err != nil {
		return rules, errs.Newf(errs.InvalidConfig, "open filter file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sign, pattern, ok := strings.Cut(line, " ")
		if !ok {
			return rules, errs.Newf(errs.InvalidConfig,
				"filter file %s line %d: expected \"+ pattern\" or \"- pattern\", got %q", path, lineNo, line)
		}
		pattern = strings.TrimSpace(pattern)

		switch sign {
		case "+":
			rules.Includes = append(rules.Includes, pattern)
		case "-":
			rules.Excludes = append(rules.Excludes, pattern)
		default:
			return rules, errs.Newf(errs.InvalidConfig,
				"filter file %s line %d: rules must start with '+' or '-', got %q", path, lineNo, sign)
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return rules, errs.Newf(errs.InvalidConfig, "read filter file: %w", err)
	}
	return rules, nil
}
