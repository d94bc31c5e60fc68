// Package wordcombo builds the index-time set of sub-phrases a POR name
// expands to, grounded on opentrep/bom/WordCombinationHolder.cpp.
package wordcombo

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gilby125/por-search/partition"
	"github.com/gilby125/por-search/tokenize"
)

// Holder accumulates a deduplicated, insertion-ordered set of sub-phrases
// for a single name string, mirroring the original's std::set<std::string>
// plus ordered re-emission.
type Holder struct {
	seen *orderedmap.OrderedMap[string, struct{}]
}

// New builds an empty Holder.
func New() *Holder {
	return &Holder{seen: orderedmap.New[string, struct{}]()}
}

// add inserts phrase if not already present.
func (h *Holder) add(phrase string) {
	if phrase == "" {
		return
	}
	if _, exists := h.seen.Get(phrase); exists {
		return
	}
	h.seen.Set(phrase, struct{}{})
}

// Phrases returns the accumulated sub-phrases in insertion order.
func (h *Holder) Phrases() []string {
	out := make([]string, 0, h.seen.Len())
	for pair := h.seen.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Build computes the full indexable sub-phrase set for name: every
// contiguous sub-phrase produced by partition.Enumerate, de-duplicated, plus
// every "hole-removed" variant (deleting one interior contiguous run of
// 1..n-2 tokens and concatenating the outer remains with a single space),
// provided the variant passes filter against the original phrase name.
func Build(name string, filter *tokenize.Filter) []string {
	tokens := tokenize.Split(name)
	h := New()
	if len(tokens) == 0 {
		return nil
	}

	for _, part := range partition.Enumerate(tokens) {
		for _, sub := range part {
			h.add(sub)
		}
	}

	n := len(tokens)
	for holeLen := 1; holeLen <= n-2; holeLen++ {
		for start := 0; start+holeLen <= n; start++ {
			end := start + holeLen
			left := tokens[:start]
			right := tokens[end:]
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			variant := strings.Join(left, " ") + " " + strings.Join(right, " ")
			if filter == nil || filter.Keep(variant, name) {
				h.add(variant)
			}
		}
	}

	return h.Phrases()
}
