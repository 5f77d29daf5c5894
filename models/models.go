package models

// QueryIntent is the structured output of the NLU expansion call: search
// query variants plus the model's own intent and location guesses. The
// deterministic resolver overrides the city/area hints whenever it
// disagrees with them.
type QueryIntent struct {
	Queries []string `json:"queries"`
	Intent  string   `json:"intent"`
	City    string   `json:"city"`
	Area    string   `json:"area"`
}

// FallbackIntent is what callers degrade to when the NLU call fails or
// returns something unusable: the raw question as the sole search term.
func FallbackIntent(question string) QueryIntent {
	return QueryIntent{Queries: []string{question}, Intent: "unknown"}
}

// IntentContent marks a "what's included" question as classified by the NLU.
const IntentContent = "innehåll"
