package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trafikskolan/supportbot/internal/catalog"
	"github.com/trafikskolan/supportbot/models"
)

// Retrieve runs every expanded query against the snapshot, merges the hits
// and returns the final ordered context set: deduplicated by chunk id,
// sorted by descending score, reordered so resolved-location hits come
// first, capped, and with course-content basfakta forced in for "what's
// included" questions.
func (e *Engine) Retrieve(query string, intent models.QueryIntent, res Resolution) ([]catalog.Hit, error) {
	var merged []catalog.Hit
	for _, q := range intent.Queries {
		searchQuery := e.biasQuery(q, res)
		hits, err := e.Snapshot.Search(searchQuery, e.cfg.MaxContextChunks*3)
		if err != nil {
			return nil, err
		}
		e.logger.Printf("[SEARCH] %q -> %d hits", searchQuery, len(hits))
		merged = append(merged, hits...)
	}

	top := dedupe(merged)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	top = e.reorderByLocation(top, res)

	if len(top) > e.cfg.MaxContextChunks {
		top = top[:e.cfg.MaxContextChunks]
	}

	// the cap is enforced once, before injection
	top = e.injectContent(query, intent, top)
	return top, nil
}

// biasQuery appends the resolved area (or city) to a query variant that
// doesn't already mention it, so the index leans toward the right office.
func (e *Engine) biasQuery(q string, res Resolution) string {
	lower := strings.ToLower(q)
	if res.Area != "" && !strings.Contains(lower, strings.ToLower(res.Area)) {
		return q + " " + res.Area
	}
	if res.City != "" && !strings.Contains(lower, strings.ToLower(res.City)) {
		return q + " " + res.City
	}
	return q
}

// dedupe keeps the first occurrence of every chunk id. Ids are stable per
// chunk, so which occurrence survives doesn't matter beyond determinism.
func dedupe(hits []catalog.Hit) []catalog.Hit {
	seen := make(map[string]struct{}, len(hits))
	out := make([]catalog.Hit, 0, len(hits))
	for _, h := range hits {
		if _, dup := seen[h.ID]; dup {
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
	}
	return out
}

// reorderByLocation partitions hits by how precisely they match the
// resolved location: area-exact first, then same-city, then the rest. The
// relative score order inside each partition is preserved.
func (e *Engine) reorderByLocation(hits []catalog.Hit, res Resolution) []catalog.Hit {
	switch {
	case res.City != "" && res.Area != "":
		area := strings.ToLower(res.Area)
		var areaHits, cityHits, rest []catalog.Hit
		for _, h := range hits {
			switch {
			case h.City == res.City && strings.ToLower(h.Area) == area:
				areaHits = append(areaHits, h)
			case h.City == res.City:
				cityHits = append(cityHits, h)
			default:
				rest = append(rest, h)
			}
		}
		return append(append(areaHits, cityHits...), rest...)
	case res.City != "":
		var cityHits, rest []catalog.Hit
		for _, h := range hits {
			if h.City == res.City {
				cityHits = append(cityHits, h)
			} else {
				rest = append(rest, h)
			}
		}
		return append(cityHits, rest...)
	default:
		return hits
	}
}

// injectContent forces basfakta chunks about course content to the front of
// the result list when a "what's included" question surfaced none. Content
// answers must enumerate specific facts, and generic ranking sometimes
// fails to surface them at all.
func (e *Engine) injectContent(query string, intent models.QueryIntent, top []catalog.Hit) []catalog.Hit {
	if !e.isContentQuestion(query, intent) {
		return top
	}
	for _, h := range top {
		if h.Type == catalog.TypeBasfakta {
			return top
		}
	}

	terms := make([]string, 0, len(e.cfg.ContentKeywords)+1)
	for _, t := range e.cfg.ContentKeywords {
		terms = append(terms, strings.ToLower(t))
	}
	terms = append(terms, "am")

	injected := e.Snapshot.ContentChunks(terms, e.cfg.MaxInjectedChunks)
	if len(injected) == 0 {
		return top
	}
	e.logger.Printf("[INNEHÅLL] injecting %d basfakta chunks", len(injected))

	out := make([]catalog.Hit, 0, len(injected)+len(top))
	for _, c := range injected {
		out = append(out, catalog.Hit{Chunk: c})
	}
	return append(out, top...)
}

func (e *Engine) isContentQuestion(query string, intent models.QueryIntent) bool {
	if intent.Intent == models.IntentContent {
		return true
	}
	return containsAny(strings.ToLower(query), e.cfg.ContentKeywords)
}

// ContextBlock formats the ordered hits into the textual context handed to
// the answer generator, one entry per chunk.
func ContextBlock(hits []catalog.Hit) string {
	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		line := fmt.Sprintf("%s: %s", h.Title, h.Text)
		if loc := h.Location(); loc != "" {
			line += fmt.Sprintf(" (%s)", loc)
		}
		if h.Price > 0 {
			line += fmt.Sprintf(" - %d SEK", h.Price)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n\n")
}
