package porindex

import (
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/gilby125/por-search/pkg/logger"
	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porcatalog"
	"github.com/gilby125/por-search/porerr"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
	"github.com/gilby125/por-search/wordcombo"
)

// batchSize bounds how many documents accumulate before an intermediate
// bleve.Batch is flushed during a build, keeping peak memory bounded for
// large catalogs while still committing the whole rebuild as one logical
// write (see buildDir's rename-on-success discipline below).
const batchSize = 1000

// documentMapping describes the field analysis bleve applies: terms and
// spelling are analyzed text (tokenized, lowercased); payload and code are
// stored/keyword fields, never split into terms.
func documentMapping() *mapping.IndexMappingImpl {
	textField := bleve.NewTextFieldMapping()
	textField.Store = false
	textField.IncludeInAll = false

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = "keyword"
	keywordField.Store = false
	keywordField.IncludeInAll = false

	storedField := bleve.NewTextFieldMapping()
	storedField.Store = true
	storedField.Index = false
	storedField.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldTerms, textField)
	doc.AddFieldMappingsAt(fieldSpelling, textField)
	doc.AddFieldMappingsAt(fieldCode, keywordField)
	doc.AddFieldMappingsAt(fieldPayload, storedField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}

// Build performs a whole-catalog rebuild at path: every row is normalized,
// expanded into index terms and a spelling-dictionary entry, and written in
// one or more batches to a freshly created index directory. The previous
// index at path is left untouched until the new one is fully built and
// renamed into place, giving the all-or-nothing discipline spec.md §4.6
// requires without needing bleve's own (non-existent) multi-document
// transaction API.
func Build(path string, rows []porcatalog.Row, filter *tokenize.Filter, tr *transliterate.Transliterator, log *logger.Logger) (count int, err error) {
	tmpPath := path + ".building"
	_ = os.RemoveAll(tmpPath)

	idx, err := bleve.New(tmpPath, documentMapping())
	if err != nil {
		return 0, porerr.Wrap(porerr.KindBackendInit, "create index", err)
	}

	batch := idx.NewBatch()
	skipped := 0
	for _, row := range rows {
		rec := FromRow(row)
		if rec.Key.IsZero() {
			skipped++
			if log != nil {
				log.Warn("skipping catalog row with no identifying key", "name", row.Name)
			}
			continue
		}

		terms, spelling := buildTerms(rec, filter, tr)
		doc := toIndexable(rec, terms, spelling)
		if err := batch.Index(rec.Key.String(), doc); err != nil {
			_ = idx.Close()
			_ = os.RemoveAll(tmpPath)
			return 0, porerr.Wrap(porerr.KindBackendState, "batch index document", err)
		}
		count++

		if batch.Size() >= batchSize {
			if err := idx.Batch(batch); err != nil {
				_ = idx.Close()
				_ = os.RemoveAll(tmpPath)
				return 0, porerr.Wrap(porerr.KindBackendState, "commit batch", err)
			}
			batch = idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			_ = idx.Close()
			_ = os.RemoveAll(tmpPath)
			return 0, porerr.Wrap(porerr.KindBackendState, "commit final batch", err)
		}
	}
	if err := idx.Close(); err != nil {
		return 0, porerr.Wrap(porerr.KindBackendState, "close freshly built index", err)
	}

	if err := os.RemoveAll(path); err != nil {
		return 0, porerr.Wrap(porerr.KindBackendState, "remove previous index", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, porerr.Wrap(porerr.KindBackendState, "publish new index", err)
	}

	if log != nil {
		log.Info("index build complete", "documents", count, "skipped_rows", skipped, "path", path)
	}
	return count, nil
}

// buildTerms expands rec's codes and every name-matrix entry into the flat
// "terms" field and the narrower "spelling" field, per spec.md §4.6 steps
// 1-2.
func buildTerms(rec por.Record, filter *tokenize.Filter, tr *transliterate.Transliterator) (terms, spelling []string) {
	add := func(s string) {
		if s != "" {
			terms = append(terms, s)
		}
	}
	add(rec.Key.IATACode)
	add(rec.Key.ICAOCode)
	if rec.CityIATA != "" && rec.CityIATA != rec.Key.IATACode {
		add(rec.CityIATA)
	}
	add(rec.StateCode)
	add(rec.CountryCode)
	add(rec.RegionCode)

	names := append([]string{rec.Name}, nameMatrixNames(rec.Names)...)
	for _, name := range names {
		normalized := tr.Normalize(name)
		add(normalized)
		for _, combo := range wordcombo.Build(normalized, filter) {
			terms = append(terms, combo)
			spelling = append(spelling, combo)
		}
	}
	return terms, spelling
}

func nameMatrixNames(m por.NameMatrix) []string {
	var out []string
	for _, lang := range m.Languages() {
		out = append(out, m[lang]...)
	}
	return out
}
