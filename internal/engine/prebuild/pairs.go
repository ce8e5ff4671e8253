package prebuild

import (
	"strings"

	"go.trai.ch/assets/internal/core/domain"
)

// Pair is one controller and action named by an inclusion rule.
type Pair struct {
	Controller string
	Action     string
}

// String returns the rule form of the pair.
func (p Pair) String() string {
	return p.Controller + ":" + p.Action
}

// Pairs returns the unique controller and action pairs named by the rules of
// pkg, in first-seen order. Negated and malformed rules name no page and are
// skipped. Wildcards are kept as written.
func Pairs(pkg domain.Package) []Pair {
	var pairs []Pair
	seen := make(map[Pair]bool)
	for _, entry := range pkg {
		for item := range strings.SplitSeq(entry.Rules, ",") {
			item = strings.TrimSpace(item)
			if item == "" || strings.HasPrefix(item, "!") {
				continue
			}
			controller, action, ok := strings.Cut(item, ":")
			if !ok {
				continue
			}
			p := Pair{Controller: strings.TrimSpace(controller), Action: strings.TrimSpace(action)}
			if p.Controller == "" || p.Action == "" || seen[p] {
				continue
			}
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	return pairs
}
