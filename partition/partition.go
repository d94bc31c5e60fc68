// Package partition enumerates the ways an ordered token sequence can be
// split into contiguous sub-phrases, grounded on the original
// implementation's StringPartition (opentrep/bom/StringPartition.cpp).
package partition

import "strings"

// Partition is an ordered list of contiguous sub-phrases whose concatenation
// (in order, space-joined) reproduces the original token sequence.
type Partition []string

// Enumerate returns every partition of tokens, in deterministic order:
// finest (one sub-phrase per token) first, the trivial partition (the whole
// phrase as a single sub-phrase) last. Complexity is O(2^(n-1)).
func Enumerate(tokens []string) []Partition {
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) == 1 {
		return []Partition{{tokens[0]}}
	}

	var out []Partition
	for k := 1; k < len(tokens); k++ {
		left := strings.Join(tokens[:k], " ")
		rest := Enumerate(tokens[k:])
		for _, tail := range rest {
			p := make(Partition, 0, 1+len(tail))
			p = append(p, left)
			p = append(p, tail...)
			out = append(out, p)
		}
	}
	out = append(out, Partition{strings.Join(tokens, " ")})
	return out
}
