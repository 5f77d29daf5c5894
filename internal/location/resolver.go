package location

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Resolver maps free-text location mentions onto the canonical city
// registry. Aliases beat exact matches beat fuzzy matches; fuzzy matching
// only tolerates close typos. Read-only after construction.
type Resolver struct {
	cities      []string // sorted, canonical
	aliases     map[string]string
	aliasKeys   []string // longest first, then lexicographic
	stopWords   map[string]struct{}
	maxDistance int
}

// NewResolver builds a resolver over the given canonical cities. The alias
// map keys are lowercase colloquial names or misspellings.
func NewResolver(cities []string, aliases map[string]string, stopWords []string, maxDistance int) *Resolver {
	sorted := append([]string{}, cities...)
	sort.Strings(sorted)

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	// longest alias first, so "västra frölunda" wins over "frölunda"
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	return &Resolver{
		cities:      sorted,
		aliases:     aliases,
		aliasKeys:   keys,
		stopWords:   stop,
		maxDistance: maxDistance,
	}
}

// ResolveCity maps input to a canonical city name, or "" when nothing is
// close enough. Alias hits take priority over everything; exact
// case-insensitive matches beat fuzzy ones; fuzzy matches are accepted only
// within the configured edit distance, ties resolving to the
// alphabetically first city.
func (r *Resolver) ResolveCity(input string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}

	if city, ok := r.aliases[in]; ok {
		return city
	}

	for _, city := range r.cities {
		if strings.ToLower(city) == in {
			return city
		}
	}

	closest := ""
	minDist := -1
	for _, city := range r.cities {
		d := levenshtein.ComputeDistance(in, strings.ToLower(city))
		if minDist < 0 || d < minDist {
			minDist = d
			closest = city
		}
	}
	if minDist >= 0 && minDist <= r.maxDistance {
		return closest
	}
	return ""
}

// AliasInQuery scans the whole query for an alias substring. A hit returns
// both the canonical city and the alias spelling itself, which doubles as
// the area the user meant.
func (r *Resolver) AliasInQuery(query string) (city, alias string, ok bool) {
	q := strings.ToLower(query)
	for _, key := range r.aliasKeys {
		if strings.Contains(q, key) {
			return r.aliases[key], key, true
		}
	}
	return "", "", false
}

// CityInQuery resolves the first whitespace token that maps to a city.
func (r *Resolver) CityInQuery(query string) (string, bool) {
	for _, word := range strings.Fields(query) {
		if city := r.ResolveCity(trimPunct(word)); city != "" {
			return city, true
		}
	}
	return "", false
}

// DetectUnknownCity reports a token that looks like a place name we don't
// serve: longer than 3 characters, capitalized, not a stop word and not
// resolvable to any known city. It never fires once a city is already
// resolved; a confirmed city means stray capitalized words are ordinary
// vocabulary, not places.
func (r *Resolver) DetectUnknownCity(query, resolvedCity string) string {
	if resolvedCity != "" {
		return ""
	}
	for _, word := range strings.Fields(query) {
		runes := []rune(word)
		if len(runes) <= 3 || !unicode.IsUpper(runes[0]) {
			continue
		}
		clean := trimPunct(word)
		if clean == "" {
			continue
		}
		if _, skip := r.stopWords[strings.ToLower(clean)]; skip {
			continue
		}
		if r.ResolveCity(clean) == "" {
			return clean
		}
	}
	return ""
}

func trimPunct(word string) string {
	return strings.Trim(word, "?.,!")
}
