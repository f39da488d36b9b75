// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package requirements selects candidate requirement lines from page text.
// A candidate is a line that opens with a list marker: digits followed by
// "." or ")", or a bullet character, then whitespace.
package requirements

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// spaceClass matches the same runes as unicode.IsSpace.
const spaceClass = `[\s\v\x{85}\p{Z}]`

// Matcher recognises list-item prefixes.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles a matcher accepting every rune in bullets as a
// bullet marker.
func NewMatcher(bullets string) (*Matcher, error) {
	if bullets == "" {
		return nil, fmt.Errorf("bullet set is empty")
	}

	if !utf8.ValidString(bullets) {
		return nil, fmt.Errorf("bullet set %q is not valid UTF-8", bullets)
	}

	var class strings.Builder
	seen := make(map[rune]bool)
	for _, r := range bullets {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		fmt.Fprintf(&class, `\x{%x}`, r)
	}
	if class.Len() == 0 {
		return nil, fmt.Errorf("bullet set %q has no usable characters", bullets)
	}

	expr := `^(?:\p{Nd}+\.|\p{Nd}+\)|[` + class.String() + `])` + spaceClass + `+`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling list pattern: %w", err)
	}
	return &Matcher{re: re}, nil
}

// Match reports whether line opens with a list marker followed by
// whitespace. The line is expected to be trimmed already.
func (m *Matcher) Match(line string) bool {
	return m.re.MatchString(line)
}
