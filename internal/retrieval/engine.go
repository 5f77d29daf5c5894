package retrieval

import (
	"log"

	"github.com/trafikskolan/supportbot/config"
	"github.com/trafikskolan/supportbot/internal/catalog"
	"github.com/trafikskolan/supportbot/internal/location"
	"github.com/trafikskolan/supportbot/models"
)

// Engine bundles one catalog snapshot with the resolver built over its city
// registry and the retrieval tuning. Engines are immutable; a knowledge
// reload builds a new engine and swaps the reference, so in-flight requests
// keep a consistent view.
type Engine struct {
	Snapshot *catalog.Snapshot
	Resolver *location.Resolver

	cfg    config.RetrievalConfig
	logger *log.Logger
}

// NewEngine builds an engine over a loaded snapshot.
func NewEngine(snap *catalog.Snapshot, cfg config.RetrievalConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Snapshot: snap,
		Resolver: location.NewResolver(snap.Cities(), cfg.CityAliases, cfg.StopWords, cfg.MaxCityDistance),
		cfg:      cfg,
		logger:   logger,
	}
}

// Resolution is the per-request outcome of location resolution. It lives
// for exactly one request.
type Resolution struct {
	City string
	Area string
}

// Resolve settles the request's city and area. The NLU's guesses are taken
// as hints only: an alias or city found in the raw query overrides them,
// since alias/fuzzy resolution is deterministic where the model's free-text
// guess is not.
func (e *Engine) Resolve(query string, intent models.QueryIntent) Resolution {
	var res Resolution
	if intent.City != "" {
		res.City = e.Resolver.ResolveCity(intent.City)
	}
	res.Area = intent.Area

	// aliases in the raw query beat whatever the NLU guessed
	if res.City == "" || res.Area == "" {
		if city, alias, ok := e.Resolver.AliasInQuery(query); ok {
			res.City = city
			res.Area = alias
			e.logger.Printf("[ALIAS] %q -> %s", alias, city)
		}
	}

	if res.City == "" {
		if city, ok := e.Resolver.CityInQuery(query); ok {
			res.City = city
			e.logger.Printf("[CITY] detected %s", city)
		}
	}
	return res
}
