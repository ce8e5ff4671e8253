package pipeline

import (
	"strings"

	"go.trai.ch/assets/internal/core/ports"
)

var translationEscaper = strings.NewReplacer(`'`, `\'`, `"`, `\"`)

// Localize replaces every marker call with a single quoted string argument,
// e.g. __('Save'), by the quoted translation of its argument. Calls with any
// other argument are left untouched.
func Localize(content, marker, locale string, tr ports.Translator) string {
	if marker == "" || !strings.Contains(content, marker) {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	i := 0
	for {
		j := strings.Index(content[i:], marker)
		if j < 0 {
			b.WriteString(content[i:])
			return b.String()
		}
		start := i + j
		argStart := start + len(marker)

		key, quote, end, ok := scanQuotedArg(content, argStart)
		if !ok {
			b.WriteString(content[i:argStart])
			i = argStart
			continue
		}

		translation := tr.Translate(key, locale)
		b.WriteString(content[i:start])
		b.WriteByte(quote)
		b.WriteString(translationEscaper.Replace(translation))
		b.WriteByte(quote)
		i = end
	}
}

// scanQuotedArg reads a quoted string starting at pos followed by the closing
// parenthesis, with optional whitespace in between. It returns the unescaped string, the quote, and
// the index after the parenthesis.
func scanQuotedArg(s string, pos int) (string, byte, int, bool) {
	if pos >= len(s) || (s[pos] != '\'' && s[pos] != '"') {
		return "", 0, 0, false
	}
	quote := s[pos]

	var key strings.Builder
	for k := pos + 1; k < len(s); k++ {
		c := s[k]
		switch {
		case c == '\\' && k+1 < len(s):
			k++
			if s[k] != quote {
				key.WriteByte(c)
			}
			key.WriteByte(s[k])
		case c == quote:
			j := k + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && s[j] == ')' {
				return key.String(), quote, j + 1, true
			}
			return "", 0, 0, false
		default:
			key.WriteByte(c)
		}
	}
	return "", 0, 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
