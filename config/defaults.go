package config

// DefaultCityAliases maps lowercase colloquial names, sub-areas and common
// misspellings to the canonical city. An alias hit always beats a fuzzy
// match: "mölndal" is within edit distance of nothing useful, but everyone
// who types it means the Göteborg office.
var DefaultCityAliases = map[string]string{
	"limhamn":         "Malmö",
	"mölndal":         "Göteborg",
	"molndal":         "Göteborg",
	"mölnlycke":       "Göteborg",
	"molnlycke":       "Göteborg",
	"östermalm":       "Stockholm",
	"ostermalm":       "Stockholm",
	"södermalm":       "Stockholm",
	"sodermalm":       "Stockholm",
	"kungsholmen":     "Stockholm",
	"solna":           "Stockholm",
	"djursholm":       "Stockholm",
	"enskededalen":    "Stockholm",
	"österåker":       "Stockholm",
	"osteraker":       "Stockholm",
	"högsbo":          "Göteborg",
	"hogsbo":          "Göteborg",
	"ullevi":          "Göteborg",
	"västra frölunda": "Göteborg",
	"vastra frolunda": "Göteborg",
	"frölunda":        "Göteborg",
	"frolunda":        "Göteborg",
	"hälsobacken":     "Helsingborg",
	"halsobacken":     "Helsingborg",
	"katedral":        "Lund",
	"södertull":       "Lund",
	"sodertull":       "Lund",
	"bulltofta":       "Malmö",
	"triangeln":       "Malmö",
	"södervärn":       "Malmö",
	"sodervarn":       "Malmö",
	"värnhem":         "Malmö",
	"varnhem":         "Malmö",
	"västra hamnen":   "Malmö",
	"vastra hamnen":   "Malmö",
	"sthlm":           "Stockholm",
	"gbg":             "Göteborg",
	"götebrog":        "Göteborg",
	"gotebrog":        "Göteborg",
	"göötehoorg":      "Göteborg",
	"gooteboorg":      "Göteborg",
}

// DefaultStopWords are capitalized-looking words that are never place names:
// question words, course vocabulary and the license-class abbreviations.
var DefaultStopWords = []string{
	"am", "bil", "mc", "vad", "hur", "kan", "kurs", "kursen", "kostar", "pris", "i", "på",
}

// DefaultVehicleKeywords mark a price question as specific enough to answer.
var DefaultVehicleKeywords = []string{"am", "bil", "mc", "moped"}

// DefaultContentKeywords mark a "what's included" question.
var DefaultContentKeywords = []string{"ingår", "innehåll"}

// DefaultVaguePhrases are generic price questions that need a follow-up
// when neither a vehicle type nor a city is mentioned.
var DefaultVaguePhrases = []string{"kostar kursen", "vad kostar"}
