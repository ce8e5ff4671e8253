package domain

import (
	"regexp"
	"strings"
)

// Rule is one parsed "object:action" pattern of an inclusion rule string.
type Rule struct {
	Object  *regexp.Regexp
	Action  *regexp.Regexp
	Negated bool
}

// Rules is an ordered sequence of parsed rules. Later rules take precedence.
type Rules []Rule

// ParseRules parses a comma separated rule string such as
// "!*:*, Auth:master_login, Auth:login". Malformed items are skipped.
func ParseRules(raw string) Rules {
	var rules Rules
	for item := range strings.SplitSeq(raw, ",") {
		object, action, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok || strings.Contains(action, ":") {
			continue
		}
		object = strings.TrimSpace(object)
		action = strings.TrimSpace(action)

		negated := strings.HasPrefix(object, "!")
		if negated {
			object = strings.TrimSpace(object[1:])
		}
		if object == "" || action == "" {
			continue
		}

		rules = append(rules, Rule{
			Object:  compileWildcard(object),
			Action:  compileWildcard(action),
			Negated: negated,
		})
	}
	return rules
}

// Allows evaluates the rules for the given object and action.
// The last matching rule decides; def is returned when no rule matches.
func (r Rules) Allows(object, action string, def bool) bool {
	allowed := def
	for _, rule := range r {
		if rule.Object.MatchString(object) && rule.Action.MatchString(action) {
			allowed = !rule.Negated
		}
	}
	return allowed
}

// IsAllowed parses rules and evaluates them for object and action.
func IsAllowed(object, action, rules string, def bool) bool {
	return ParseRules(rules).Allows(object, action, def)
}

// compileWildcard turns a pattern where "*" matches any substring into an
// anchored, case-insensitive regular expression.
func compileWildcard(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("(?i)^" + strings.Join(parts, ".*") + "$")
}
