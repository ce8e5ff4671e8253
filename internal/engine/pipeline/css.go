package pipeline

import (
	"regexp"
	"strings"
)

// cssURLPattern matches url(...) references whose target does not start with
// a slash. Quotes around the target are not kept.
var cssURLPattern = regexp.MustCompile(`(?im)url\(['"]?([^/'"])([^)'"]+)['"]?\)`)

// RewriteCSSPaths moves relative url() references one directory up, because
// artifacts live in the aggregate directory below the type root. Absolute
// URLs, protocol URLs and data URIs are left untouched.
func RewriteCSSPaths(css string) string {
	matches := cssURLPattern.FindAllStringSubmatchIndex(css, -1)
	if len(matches) == 0 {
		return css
	}

	var b strings.Builder
	b.Grow(len(css) + 3*len(matches))
	last := 0
	for _, m := range matches {
		target := css[m[2]:m[3]] + css[m[4]:m[5]]
		b.WriteString(css[last:m[0]])
		if isAbsoluteURL(target) {
			b.WriteString(css[m[0]:m[1]])
		} else {
			b.WriteString("url(../")
			b.WriteString(target)
			b.WriteString(")")
		}
		last = m[1]
	}
	b.WriteString(css[last:])
	return b.String()
}

func isAbsoluteURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.Contains(lower, "://") || strings.HasPrefix(lower, "data:")
}
