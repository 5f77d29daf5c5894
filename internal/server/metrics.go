package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/trafikskolan/supportbot/internal/catalog"
)

var (
	queriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "supportbot_queries_total",
		Help: "Queries received on the search endpoint.",
	})
	clarificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supportbot_clarifications_total",
		Help: "Queries answered by the disambiguation gate instead of retrieval.",
	}, []string{"reason"})
	collaboratorFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supportbot_collaborator_failures_total",
		Help: "LLM collaborator calls that failed and were degraded locally.",
	}, []string{"collaborator"})
	chunksLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "supportbot_chunks_loaded",
		Help: "Chunks in the active knowledge snapshot.",
	})
	citiesLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "supportbot_cities_loaded",
		Help: "Distinct cities in the active knowledge snapshot.",
	})
)

func init() {
	prometheus.MustRegister(queriesTotal, clarificationsTotal, collaboratorFailuresTotal, chunksLoaded, citiesLoaded)
}

func observeSnapshot(snap *catalog.Snapshot) {
	chunksLoaded.Set(float64(snap.Len()))
	citiesLoaded.Set(float64(len(snap.Cities())))
}
