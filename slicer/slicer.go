// Package slicer splits a normalized query into independent sub-query
// slices, so that each slice can be partitioned and matched independently
// instead of paying the exponential cost of partitioning the whole query at
// once. Grounded on the original implementation's query-time slicing logic.
package slicer

import "github.com/gilby125/por-search/tokenize"

// MatchChecker is the cheap index lookup a Slicer needs: whether a phrase
// yields any match above an implementation floor. porindex.Index (and
// porcache's cached wrapper) provide the concrete implementation; slicer
// only depends on this narrow contract
// so it never imports the indexing engine directly.
type MatchChecker interface {
	MatchExists(phrase string) (bool, error)
}

// Slice is one independent, contiguous run of query tokens.
type Slice struct {
	Tokens []string
}

// Phrase rejoins the slice's tokens with single spaces.
func (s Slice) Phrase() string {
	out := ""
	for i, t := range s.Tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

// Slicer computes query slices by consulting a MatchChecker for every
// adjacent token pair.
type Slicer struct {
	checker MatchChecker
}

// New builds a Slicer bound to checker.
func New(checker MatchChecker) *Slicer {
	return &Slicer{checker: checker}
}

// Slice splits query into slices: adjacent tokens stay in the same slice
// when their two-token phrase yields a match against the index; otherwise a
// slice boundary is inserted between them. The result covers the query
// without overlap; every slice holds at least one token; a single-token
// query yields one slice.
func (s *Slicer) Slice(query string) ([]Slice, error) {
	tokens := tokenize.Split(query)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) == 1 {
		return []Slice{{Tokens: tokens}}, nil
	}

	var slices []Slice
	current := []string{tokens[0]}
	for i := 0; i < len(tokens)-1; i++ {
		pair := tokens[i] + " " + tokens[i+1]
		ok, err := s.checker.MatchExists(pair)
		if err != nil {
			return nil, err
		}
		if ok {
			current = append(current, tokens[i+1])
			continue
		}
		slices = append(slices, Slice{Tokens: current})
		current = []string{tokens[i+1]}
	}
	slices = append(slices, Slice{Tokens: current})
	return slices, nil
}
