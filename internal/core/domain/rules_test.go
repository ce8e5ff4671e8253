package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/assets/internal/core/domain"
)

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name     string
		object   string
		action   string
		rules    string
		def      bool
		expected bool
	}{
		{
			name:     "negated catch-all wins when nothing else matches",
			object:   "Signups",
			action:   "index",
			rules:    "!*:*, Auth:master_login",
			expected: false,
		},
		{
			name:     "later rule overrides negated catch-all",
			object:   "Auth",
			action:   "login",
			rules:    "!*:*, Auth:master_login, Auth:login, Auth:logout",
			expected: true,
		},
		{
			name:     "wildcard action",
			object:   "Users",
			action:   "edit",
			rules:    "Users:*",
			expected: true,
		},
		{
			name:     "case insensitive",
			object:   "users",
			action:   "EDIT",
			rules:    "Users:edit",
			expected: true,
		},
		{
			name:     "patterns are anchored",
			object:   "SuperUsers",
			action:   "edit",
			rules:    "Users:edit",
			expected: false,
		},
		{
			name:     "wildcard inside a pattern",
			object:   "AdminUsers",
			action:   "admin_index",
			rules:    "Admin*:admin_*",
			expected: true,
		},
		{
			name:     "no match returns default",
			object:   "Pages",
			action:   "display",
			rules:    "Users:*",
			def:      true,
			expected: true,
		},
		{
			name:     "negation after allow",
			object:   "Pages",
			action:   "display",
			rules:    "*:*, !Pages:display",
			def:      true,
			expected: false,
		},
		{
			name:     "malformed rules fall back to default",
			object:   "Pages",
			action:   "display",
			rules:    "nonsense, ::, :x",
			expected: false,
		},
		{
			name:     "regexp metacharacters are literal",
			object:   "Pages",
			action:   "display",
			rules:    "Pag.s:display",
			expected: false,
		},
		{
			name:     "empty rules",
			object:   "Pages",
			action:   "display",
			rules:    "",
			def:      true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.IsAllowed(tt.object, tt.action, tt.rules, tt.def))
		})
	}
}

func TestParseRules(t *testing.T) {
	rules := domain.ParseRules(" !*:* ,Auth:login,broken, Auth : logout ")

	assert.Len(t, rules, 3)
	assert.True(t, rules[0].Negated)
	assert.False(t, rules[1].Negated)
	assert.True(t, rules[2].Object.MatchString("auth"))
	assert.True(t, rules[2].Action.MatchString("logout"))
}
