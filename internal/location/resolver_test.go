package location

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCities = []string{"Göteborg", "Helsingborg", "Lund", "Malmö", "Stockholm"}

var testAliases = map[string]string{
	"mölndal":         "Göteborg",
	"gbg":             "Göteborg",
	"gotebrog":        "Göteborg",
	"solna":           "Stockholm",
	"västra frölunda": "Göteborg",
	"frölunda":        "Göteborg",
}

var testStopWords = []string{"am", "bil", "mc", "vad", "hur", "kan", "kurs", "kursen", "kostar", "pris", "i", "på"}

func newTestResolver(cities []string) *Resolver {
	return NewResolver(cities, testAliases, testStopWords, 2)
}

func TestResolveCityExactAndCaseInsensitive(t *testing.T) {
	r := newTestResolver(testCities)
	for _, city := range testCities {
		assert.Equal(t, city, r.ResolveCity(city))
		assert.Equal(t, city, r.ResolveCity(strings.ToUpper(city)))
		assert.Equal(t, city, r.ResolveCity(strings.ToLower(city)))
	}
}

func TestResolveCityAliasBeatsEverything(t *testing.T) {
	// "Solna" is a canonical city here, yet the alias still wins
	r := NewResolver([]string{"Solna", "Stockholm"}, testAliases, testStopWords, 2)
	assert.Equal(t, "Stockholm", r.ResolveCity("solna"))
	assert.Equal(t, "Stockholm", r.ResolveCity("  Solna "))

	r = newTestResolver(testCities)
	assert.Equal(t, "Göteborg", r.ResolveCity("mölndal"))
	assert.Equal(t, "Göteborg", r.ResolveCity("gbg"))
	assert.Equal(t, "Göteborg", r.ResolveCity("gotebrog"))
}

func TestResolveCityFuzzyWithinThreshold(t *testing.T) {
	r := newTestResolver(testCities)
	assert.Equal(t, "Göteborg", r.ResolveCity("göteborgg"))
	assert.Equal(t, "Malmö", r.ResolveCity("malmo"))
	assert.Equal(t, "Stockholm", r.ResolveCity("stokholm"))

	assert.Empty(t, r.ResolveCity("Paris"))
	assert.Empty(t, r.ResolveCity("Nordstan"))
	assert.Empty(t, r.ResolveCity(""))
}

func TestResolveCityTieBreaksAlphabetically(t *testing.T) {
	r := NewResolver([]string{"Sund", "Lund"}, nil, nil, 2)
	// "fund" is distance 1 from both; the sorted registry decides
	assert.Equal(t, "Lund", r.ResolveCity("fund"))
}

func TestAliasInQueryPrefersLongestAlias(t *testing.T) {
	r := newTestResolver(testCities)

	city, alias, ok := r.AliasInQuery("vad kostar körlektion i västra frölunda?")
	assert.True(t, ok)
	assert.Equal(t, "Göteborg", city)
	assert.Equal(t, "västra frölunda", alias)

	_, _, ok = r.AliasInQuery("vad kostar körlektion?")
	assert.False(t, ok)
}

func TestCityInQuery(t *testing.T) {
	r := newTestResolver(testCities)

	city, ok := r.CityInQuery("vad kostar en lektion i Helsingborg?")
	assert.True(t, ok)
	assert.Equal(t, "Helsingborg", city)

	_, ok = r.CityInQuery("vad kostar en lektion?")
	assert.False(t, ok)
}

func TestDetectUnknownCity(t *testing.T) {
	r := newTestResolver(testCities)

	assert.Equal(t, "Nordstan", r.DetectUnknownCity("Vad kostar det i Nordstan?", ""))

	// a resolved city suppresses the check entirely
	assert.Empty(t, r.DetectUnknownCity("Vad kostar det i Nordstan?", "Göteborg"))

	// stop words and short or lowercase tokens never count
	assert.Empty(t, r.DetectUnknownCity("Vad kostar kursen?", ""))
	assert.Empty(t, r.DetectUnknownCity("vad kostar en lektion i nordstan?", ""))

	// a near-miss city name resolves and is therefore not unknown
	assert.Empty(t, r.DetectUnknownCity("Vad kostar det i Stokholm?", ""))
}
