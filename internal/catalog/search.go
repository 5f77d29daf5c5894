package catalog

import (
	"fmt"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"
)

// Field boosts mirror what the catalog team tuned in production: an exact
// keyword or office hit should dominate body-text matches.
var searchBoosts = []struct {
	field string
	boost float64
}{
	{"keywords", 6},
	{"office", 5},
	{"city", 4},
	{"area", 3},
	{"title", 3},
	{"vehicle", 2},
	{"text", 1},
}

// Hit is one scored search result.
type Hit struct {
	Chunk
	Score float64
}

// Search runs a fuzzy, OR-combined match over the searchable fields and
// returns up to size scored chunks, best first. Pure read.
func (s *Snapshot) Search(q string, size int) ([]Hit, error) {
	if s.index == nil {
		return nil, fmt.Errorf("snapshot queried before index build")
	}

	disjuncts := make([]query.Query, 0, len(searchBoosts))
	for _, fb := range searchBoosts {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(fb.field)
		mq.SetBoost(fb.boost)
		mq.SetFuzziness(1)
		disjuncts = append(disjuncts, mq)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(disjuncts...), size, 0, false)
	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	out := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		c, ok := s.byID[h.ID]
		if !ok {
			continue
		}
		out = append(out, Hit{Chunk: c, Score: h.Score})
	}
	return out, nil
}
