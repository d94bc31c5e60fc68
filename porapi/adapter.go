package porapi

import (
	"context"
	"os"

	"github.com/gilby125/por-search/interpreter"
	"github.com/gilby125/por-search/pkg/logger"
	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porcatalog"
	"github.com/gilby125/por-search/porerr"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
)

// IndexService adapts an *interpreter.Interpreter and the *porindex.Index
// it wraps into the Service contract, owning the rebuild path the
// interpreter itself has no opinion about.
type IndexService struct {
	interp  *interpreter.Interpreter
	index   *porindex.Index
	indexPath string
	filter  *tokenize.Filter
	tr      *transliterate.Transliterator
	log     *logger.Logger
}

// NewIndexService builds an IndexService over an already-open index and its
// interpreter, plus the path Reindex should rebuild at.
func NewIndexService(interp *interpreter.Interpreter, index *porindex.Index, indexPath string, filter *tokenize.Filter, tr *transliterate.Transliterator, log *logger.Logger) *IndexService {
	return &IndexService{interp: interp, index: index, indexPath: indexPath, filter: filter, tr: tr, log: log}
}

func (s *IndexService) Interpret(ctx context.Context, query string) ([]por.Location, []string, error) {
	return s.interp.Interpret(ctx, query)
}

func (s *IndexService) Size(ctx context.Context) (uint64, error) {
	return s.index.Size()
}

func (s *IndexService) Sample(ctx context.Context, n int) ([]por.Location, error) {
	recs, err := s.index.Sample(n)
	if err != nil {
		return nil, err
	}
	out := make([]por.Location, 0, len(recs))
	for _, rec := range recs {
		out = append(out, por.Location{
			Key:         rec.Key,
			Type:        rec.Type,
			Name:        rec.Name,
			ASCIIName:   rec.ASCIIName,
			CityIATA:    rec.CityIATA,
			StateCode:   rec.StateCode,
			CountryCode: rec.CountryCode,
			RegionCode:  rec.RegionCode,
			Continent:   rec.Continent,
			Latitude:    rec.Latitude,
			Longitude:   rec.Longitude,
			TimeZone:    rec.TimeZone,
			PageRank:    rec.PageRank,
			EnvelopeID:  rec.EnvelopeID,
			WikiLink:    rec.WikiLink,
		})
	}
	return out, nil
}

// Reindex rebuilds the index at s.indexPath from catalogPath, in the same
// process as the running service. Callers are expected to re-open the
// index afterward (a full redeploy/reload in the teacher's model); this
// method only performs the write side of spec.md §4.6's transactional
// rebuild.
func (s *IndexService) Reindex(ctx context.Context, catalogPath string) (int, error) {
	f, err := os.Open(catalogPath)
	if err != nil {
		return 0, porerr.Wrap(porerr.KindBackendState, "open catalog", err)
	}
	defer f.Close()

	reader := porcatalog.NewReader(f)
	rows, skipped, err := reader.ReadAll()
	if err != nil {
		return 0, porerr.Wrap(porerr.KindBackendState, "read catalog", err)
	}
	if skipped > 0 && s.log != nil {
		s.log.Warn("skipped malformed catalog rows", "count", skipped)
	}

	count, err := porindex.Build(s.indexPath, rows, s.filter, s.tr, s.log)
	if err != nil {
		return 0, err
	}
	return count, nil
}
