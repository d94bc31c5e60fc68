// Package interpreter implements RequestInterpreter, the orchestrator of
// spec.md §4.10: normalize → slice → partition → match → score →
// combine → enrich → emit.
package interpreter

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/gilby125/por-search/matcher"
	"github.com/gilby125/por-search/partition"
	"github.com/gilby125/por-search/pkg/logger"
	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porerr"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/result"
	"github.com/gilby125/por-search/score"
	"github.com/gilby125/por-search/slicer"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
)

// Enricher resolves optional related data for a matched record, e.g. the
// associated city-details list. Its concrete implementation lives in the
// enricher package (Postgres-backed); interpreter depends only on this
// narrow contract.
type Enricher interface {
	CityDetails(ctx context.Context, key por.Key) ([]por.CityDetail, error)
}

// Index is the narrow index contract the interpreter needs, satisfied by
// *porindex.Index.
type Index interface {
	SearchScored(phrase string) ([]porindex.ScoredDoc, error)
	SpellingTerms() ([]string, error)
	MatchExists(phrase string) (bool, error)
	CodeExists(code string) (por.Record, bool, error)
}

// Interpreter wires every core component together behind interpret().
type Interpreter struct {
	index    Index
	enricher Enricher
	tr       *transliterate.Transliterator
	filter   *tokenize.Filter
	matcher  *matcher.Matcher
	slicer   *slicer.Slicer
	log      *logger.Logger
}

// Option configures an Interpreter at construction.
type Option func(*Interpreter)

// WithLogger attaches a logger; interpreter logs nothing by default.
func WithLogger(l *logger.Logger) Option {
	return func(i *Interpreter) { i.log = l }
}

// New builds an Interpreter over index, enricher, and a transliterator/
// filter pair for normalization, matching teacher's constructor-injection
// style.
func New(index Index, enricher Enricher, tr *transliterate.Transliterator, filter *tokenize.Filter, opts ...Option) *Interpreter {
	i := &Interpreter{
		index:    index,
		enricher: enricher,
		tr:       tr,
		filter:   filter,
		matcher:  matcher.New(index),
		slicer:   slicer.New(index),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret implements spec.md §4.10's entry point: interpret(query, index,
// enricher) → (locations, unmatched_words).
func (i *Interpreter) Interpret(ctx context.Context, query string) (locations []por.Location, unmatchedWords []string, err error) {
	if query == "" {
		return nil, nil, porerr.ErrEmpty
	}

	requestID := uuid.NewString()
	log := i.log
	if log != nil {
		log = log.WithField("request_id", requestID)
	}

	normalized := i.filter.Trim(i.tr.Normalize(query))
	tokens := tokenize.Split(normalized)
	if len(tokens) == 0 {
		return nil, nil, porerr.ErrEmpty
	}

	if locs, ok, err := i.fastPathCodes(tokens); err != nil {
		return nil, nil, err
	} else if ok {
		return locs, nil, nil
	}

	slices, err := i.slicer.Slice(normalized)
	if err != nil {
		return nil, nil, porerr.Wrap(porerr.KindBackendState, "slice query", err)
	}

	for _, sl := range slices {
		select {
		case <-ctx.Done():
			return nil, nil, porerr.ErrTimeout
		default:
		}

		sliceLocs, sliceUnmatched, err := i.interpretSlice(ctx, sl)
		if err != nil {
			return nil, nil, err
		}
		locations = append(locations, sliceLocs...)
		unmatchedWords = append(unmatchedWords, sliceUnmatched...)
	}

	if log != nil {
		log.Info("interpret complete", "query", query, "locations", len(locations), "unmatched", len(unmatchedWords))
	}
	return locations, unmatchedWords, nil
}

// fastPathCodes implements spec.md §4.10 step 4: if every token is a POR
// code, emit one Location per token directly from the document data, no
// scoring needed.
func (i *Interpreter) fastPathCodes(tokens []string) ([]por.Location, bool, error) {
	var locs []por.Location
	for _, t := range tokens {
		rec, found, err := i.index.CodeExists(t)
		if err != nil {
			return nil, false, porerr.Wrap(porerr.KindBackendState, "fast-path code lookup", err)
		}
		if !found {
			return nil, false, nil
		}
		locs = append(locs, toLocation(rec, t, t, 100.0, 0, 0, nil))
	}
	return locs, true, nil
}

// interpretSlice runs steps 5-7 of spec.md §4.10 for one slice: enumerate
// partitions, match each sub-phrase, score, select the winning partition,
// and emit Locations in descending-weight order with IATA-ascending
// tie-break.
func (i *Interpreter) interpretSlice(ctx context.Context, sl slicer.Slice) ([]por.Location, []string, error) {
	partitions := partition.Enumerate(sl.Tokens)

	arena := &result.Arena{}
	holders := make([]*result.Holder, 0, len(partitions))
	var allUnmatched []string

	for rank, p := range partitions {
		indices := make([]int, 0, len(p))
		for _, subPhrase := range p {
			mr, err := i.matcher.Match(subPhrase)
			if err != nil {
				return nil, nil, porerr.Wrap(porerr.KindBackendState, "match sub-phrase", err)
			}
			allUnmatched = append(allUnmatched, mr.RemovedTokens...)

			r := result.NewResult(subPhrase)
			r.CorrectedPhrase = mr.CorrectedPhrase
			r.EditDistance = mr.EditDistance
			r.AllowableEditDistance = mr.AllowableEditDistance
			if mr.Best.ID != "" {
				board := buildBoard(mr)
				r.Put(mr.Best, board)
				for _, extra := range mr.Extra {
					r.Put(extra, buildBoardFor(extra, mr))
				}
				for _, alt := range mr.Alternate {
					r.Put(alt, buildBoardFor(alt, mr))
				}
			}
			indices = append(indices, arena.Add(r))
		}
		holders = append(holders, result.NewHolder(arena, indices, rank))
	}

	comb := &result.Combination{Holders: holders}
	winner, _, ok := comb.SelectBest(envelopeOf(holders), codesOf(holders), pageRankOf(holders), heuristicOf(holders))
	if !ok {
		return nil, allUnmatched, nil
	}

	var locs []por.Location
	for _, r := range winner.Results() {
		if r.BestDocID == "" {
			continue
		}
		best := r.Docs[r.BestDocID]
		board := r.Boards[r.BestDocID]
		combined := board.CombinedWeight()
		if combined > 100.0 {
			combined = 100.0
		}

		editDist, allowable := r.EditDistance, r.AllowableEditDistance

		var extra, alternate []por.Location
		for id, doc := range r.Docs {
			if id == r.BestDocID {
				continue
			}
			b := r.Boards[id]
			sameScore := b.CombinedWeight() == board.CombinedWeight()
			loc := toLocation(doc.Record, r.SubPhrase, r.CorrectedPhrase, combined, editDist, allowable, nil)
			if i.enricher != nil {
				if cds, err := i.enricher.CityDetails(ctx, doc.Record.Key); err == nil {
					loc.CityDetails = cds
				}
			}
			if sameScore {
				extra = append(extra, loc)
			} else {
				alternate = append(alternate, loc)
			}
		}

		var cityDetails []por.CityDetail
		if i.enricher != nil {
			cityDetails, _ = i.enricher.CityDetails(ctx, best.Record.Key)
		}

		loc := toLocation(best.Record, r.SubPhrase, r.CorrectedPhrase, combined, editDist, allowable, cityDetails)
		loc.Extra = extra
		loc.Alternate = alternate
		locs = append(locs, loc)
	}

	sort.SliceStable(locs, func(a, b int) bool {
		if locs[a].MatchingPercentage != locs[b].MatchingPercentage {
			return locs[a].MatchingPercentage > locs[b].MatchingPercentage
		}
		return locs[a].Key.IATACode < locs[b].Key.IATACode
	})

	return locs, allUnmatched, nil
}

// buildBoard/buildBoardFor seed a document's ScoreBoard with the one signal
// the per-partition calculators don't own: XAPIAN_PCT, the raw match
// percentage from §4.7. ENV_ID, CODE_FULL_MATCH, PAGE_RANK, and HEURISTIC
// are filled in afterward by result.Combination.SelectBest's five
// calculators, which have access to every document across every holder.
func buildBoard(mr *matcher.MatchResult) *score.Board {
	b := score.NewBoard()
	b.SetXapianPct(mr.Best.Score)
	return b
}

func buildBoardFor(doc porindex.ScoredDoc, mr *matcher.MatchResult) *score.Board {
	b := score.NewBoard()
	b.SetXapianPct(doc.Score)
	return b
}

func envelopeOf(holders []*result.Holder) func(string) uint32 {
	recs := recordIndex(holders)
	return func(id string) uint32 {
		return recs[id].EnvelopeID
	}
}

func codesOf(holders []*result.Holder) func(string) (string, string) {
	recs := recordIndex(holders)
	return func(id string) (string, string) {
		return recs[id].Key.IATACode, recs[id].Key.ICAOCode
	}
}

func pageRankOf(holders []*result.Holder) func(string) float64 {
	recs := recordIndex(holders)
	return func(id string) float64 {
		return recs[id].PageRank
	}
}

// heuristicOf implements the HEURISTIC score rule: for an exact 3-letter
// sub-phrase (a bare IATA-length query), a city document is scored slightly
// above its co-located airport, so "nce" prefers the city of Nice over
// Nice's own airport when both carry the same code. For a 3-letter
// sub-phrase every document that is neither CITY nor a combined CTY_* type
// scores 99, whether or not a city document also matched; any other
// sub-phrase length is neutral. This is a deliberate, documented resolution of spec.md
// §4.8's "implementation-free" HEURISTIC signal, not a value the original
// implementation also applies.
func heuristicOf(holders []*result.Holder) func(docID, subPhrase string) float64 {
	recs := recordIndex(holders)
	return func(docID, subPhrase string) float64 {
		if len([]rune(subPhrase)) != 3 {
			return score.KNeutralHeuristicPct
		}
		rec, ok := recs[docID]
		if !ok {
			return score.KNeutralHeuristicPct
		}
		if rec.Type == por.City || rec.Type.IsCombined() {
			return 100.0
		}
		return 99.0
	}
}

func recordIndex(holders []*result.Holder) map[string]por.Record {
	out := make(map[string]por.Record)
	for _, h := range holders {
		for _, r := range h.Results() {
			for id, doc := range r.Docs {
				out[id] = doc.Record
			}
		}
	}
	return out
}

func toLocation(rec por.Record, original, corrected string, pct float64, editDistance, allowable int, cityDetails []por.CityDetail) por.Location {
	return por.Location{
		Key:                   rec.Key,
		Type:                  rec.Type,
		Name:                  rec.Name,
		ASCIIName:             rec.ASCIIName,
		CityIATA:              rec.CityIATA,
		StateCode:             rec.StateCode,
		CountryCode:           rec.CountryCode,
		RegionCode:            rec.RegionCode,
		Continent:             rec.Continent,
		Latitude:              rec.Latitude,
		Longitude:             rec.Longitude,
		TimeZone:              rec.TimeZone,
		PageRank:              rec.PageRank,
		EnvelopeID:            rec.EnvelopeID,
		WikiLink:              rec.WikiLink,
		CityDetails:           cityDetails,
		OriginalKeywords:      original,
		CorrectedKeywords:     corrected,
		MatchingPercentage:    pct,
		EditDistance:          editDistance,
		AllowableEditDistance: allowable,
	}
}
