package filter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Matcher pre-compiles find -path style glob patterns for reuse across many
// paths. The semantics follow fnmatch(3) without FNM_PATHNAME:
//   - * matches any characters including /
//   - ? matches exactly one character including /
//   - [...] matches one character from the set including /
//   - \ escapes the next character
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the given patterns into a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([]*regexp.Regexp, len(patterns))}

	for idx, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		matcher.patterns[idx] = re
	}

	return matcher, nil
}

// MatchAny reports whether path matches any of the compiled patterns.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// Match reports whether path matches a single pattern.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

var compiled sync.Map //nolint:gochecknoglobals // package-level cache for compiled patterns

// compile translates a glob pattern into an anchored regexp, caching results.
func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := compiled.Load(pattern); ok {
		return v.(*regexp.Regexp), nil //nolint:errcheck,forcetypeassert // only regexps are stored
	}

	var sb strings.Builder

	sb.WriteString("^")

	for pos := 0; pos < len(pattern); {
		switch c := pattern[pos]; c {
		case '*':
			sb.WriteString(".*")
			pos++
		case '?':
			sb.WriteString(".")
			pos++
		case '\\':
			if pos+1 >= len(pattern) {
				return nil, fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			sb.WriteString(regexp.QuoteMeta(string(pattern[pos+1])))
			pos += 2
		case '[':
			end, err := classEnd(pattern, pos)
			if err != nil {
				return nil, err
			}

			class := pattern[pos : end+1]
			// fnmatch negation is [!...], regexp negation is [^...]
			if len(class) > 2 && class[1] == '!' {
				class = "[^" + class[2:]
			}

			sb.WriteString(class)
			pos = end + 1
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
			pos++
		}
	}

	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	compiled.Store(pattern, re)

	return re, nil
}

// classEnd returns the index of the closing ] for a character class starting at pos.
// A ] directly after the opening bracket (or after !) is a literal member.
func classEnd(pattern string, pos int) (int, error) {
	idx := pos + 1

	if idx < len(pattern) && pattern[idx] == '!' {
		idx++
	}

	if idx < len(pattern) && pattern[idx] == ']' {
		idx++
	}

	for ; idx < len(pattern); idx++ {
		if pattern[idx] == ']' {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}
