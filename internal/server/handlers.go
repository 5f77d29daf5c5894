package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/trafikskolan/supportbot/internal/catalog"
	"github.com/trafikskolan/supportbot/internal/retrieval"
	"github.com/trafikskolan/supportbot/models"
	"github.com/trafikskolan/supportbot/provider"
)

// degradedAnswer is returned when the generation call fails; the request
// still succeeds from the caller's point of view.
const degradedAnswer = "Jag upplever ett tekniskt fel. Kan du försöka ställa frågan på ett annat sätt?"

// QueryHandler serves the query endpoint over the current engine.
type QueryHandler struct {
	Engines *EngineHolder
	LLM     provider.Provider
	Timeout time.Duration
	Logger  *log.Logger
}

type queryRequest struct {
	Query string `json:"query"`
}

type chunkSummary struct {
	Title  string            `json:"title"`
	Text   string            `json:"text"`
	City   string            `json:"city,omitempty"`
	Area   string            `json:"area,omitempty"`
	Office string            `json:"office,omitempty"`
	Type   catalog.ChunkType `json:"type"`
	Score  float64           `json:"score"`
}

type debugInfo struct {
	RequestID     string             `json:"request_id"`
	NLU           models.QueryIntent `json:"nlu"`
	DetectedCity  string             `json:"detected_city,omitempty"`
	DetectedArea  string             `json:"detected_area,omitempty"`
	ChunksUsed    int                `json:"chunks_used"`
	UnknownCity   string             `json:"unknown_city,omitempty"`
	VagueQuestion bool               `json:"vague_question,omitempty"`
}

type queryResponse struct {
	Answer  string         `json:"answer"`
	Context []chunkSummary `json:"context"`
	Debug   debugInfo      `json:"debug"`
}

func (h *QueryHandler) searchAll(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	requestID := uuid.NewString()
	queriesTotal.Inc()
	engine := h.Engines.Engine()
	h.Logger.Printf("[%s] %q", requestID, req.Query)

	intent := h.expandQuery(c.Request().Context(), requestID, req.Query)
	res := engine.Resolve(req.Query, intent)

	if cl := engine.Gate(req.Query, res); cl != nil {
		clarificationsTotal.WithLabelValues(cl.Reason).Inc()
		h.Logger.Printf("[%s] clarification: %s", requestID, cl.Reason)
		return c.JSON(http.StatusOK, queryResponse{
			Answer:  cl.Answer,
			Context: []chunkSummary{},
			Debug: debugInfo{
				RequestID:     requestID,
				NLU:           intent,
				DetectedCity:  res.City,
				DetectedArea:  res.Area,
				UnknownCity:   cl.UnknownCity,
				VagueQuestion: cl.Reason == retrieval.ReasonVagueQuestion,
			},
		})
	}

	hits, err := engine.Retrieve(req.Query, intent, res)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	answer := h.generateAnswer(c.Request().Context(), requestID, req.Query, hits, res)

	summaries := make([]chunkSummary, 0, len(hits))
	for _, hit := range hits {
		summaries = append(summaries, chunkSummary{
			Title:  hit.Title,
			Text:   truncate(hit.Text, 200),
			City:   hit.City,
			Area:   hit.Area,
			Office: hit.Office,
			Type:   hit.Type,
			Score:  hit.Score,
		})
	}

	return c.JSON(http.StatusOK, queryResponse{
		Answer:  answer,
		Context: summaries,
		Debug: debugInfo{
			RequestID:    requestID,
			NLU:          intent,
			DetectedCity: res.City,
			DetectedArea: res.Area,
			ChunksUsed:   len(hits),
		},
	})
}

// expandQuery calls the NLU collaborator with a bounded timeout, degrading
// to the raw query as the sole search term on any failure.
func (h *QueryHandler) expandQuery(ctx context.Context, requestID, query string) models.QueryIntent {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	intent, err := h.LLM.ExpandQuery(ctx, query)
	if err != nil {
		collaboratorFailuresTotal.WithLabelValues("nlu").Inc()
		h.Logger.Printf("[%s] NLU failed, degrading to raw query: %v", requestID, err)
		return models.FallbackIntent(query)
	}
	h.Logger.Printf("[%s] NLU: %+v", requestID, intent)
	return intent
}

// generateAnswer calls the generation collaborator, degrading to a fixed
// message on failure.
func (h *QueryHandler) generateAnswer(ctx context.Context, requestID, query string, hits []catalog.Hit, res retrieval.Resolution) string {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	answer, err := h.LLM.GenerateAnswer(ctx, query, retrieval.ContextBlock(hits), res.City, res.Area)
	if err != nil {
		collaboratorFailuresTotal.WithLabelValues("generation").Inc()
		h.Logger.Printf("[%s] generation failed: %v", requestID, err)
		return degradedAnswer
	}
	return answer
}

func (h *QueryHandler) health(c echo.Context) error {
	snap := h.Engines.Engine().Snapshot
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"version":   Version,
		"chunks":    snap.Len(),
		"cities":    len(snap.Cities()),
		"loaded_at": snap.LoadedAt(),
	})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
