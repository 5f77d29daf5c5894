package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trafikskolan/supportbot/config"
	"github.com/trafikskolan/supportbot/internal/catalog"
	"github.com/trafikskolan/supportbot/internal/retrieval"
	"github.com/trafikskolan/supportbot/provider"
)

// Version is reported by /health and the startup banner.
const Version = "1.3.0"

// Run loads the knowledge base, wires the retrieval engine and the LLM
// provider, and serves the query API. It returns only on a fatal startup
// error or when the listener dies.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	loadLogger := log.New(log.Writer(), "[LOAD] ", log.LstdFlags)
	snap, err := catalog.Load(cfg.Knowledge.Dir, loadLogger)
	if err != nil {
		return err
	}
	// An empty index would answer every question confidently and wrongly;
	// that is a startup failure, not a degraded mode.
	if snap.Len() == 0 {
		return fmt.Errorf("knowledge dir %q produced no chunks, refusing to serve", cfg.Knowledge.Dir)
	}
	observeSnapshot(snap)

	if err := cfg.Providers.OpenAI.Validate(); err != nil {
		return err
	}
	llm, err := provider.NewProvider(provider.OpenAI, cfg.Providers.OpenAI)
	if err != nil {
		return err
	}

	engineLogger := log.New(log.Writer(), "[RETRIEVAL] ", log.LstdFlags)
	engines := NewEngineHolder(retrieval.NewEngine(snap, cfg.Retrieval, engineLogger))

	h := &QueryHandler{
		Engines: engines,
		LLM:     llm,
		Timeout: cfg.Providers.OpenAI.Timeout,
		Logger:  log.New(log.Writer(), "[QUERY] ", log.LstdFlags),
	}
	e.GET("/health", h.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/search_all", h.searchAll)

	if cfg.Knowledge.ReloadCron != "" {
		reloader, err := NewReloader(cfg, engines, loadLogger)
		if err != nil {
			return err
		}
		reloader.Start()
		defer reloader.Stop()
	}

	log.Printf("supportbot %s listening on %s (%d chunks, %d cities)",
		Version, cfg.Server.Listen, snap.Len(), len(snap.Cities()))
	return e.Start(cfg.Server.Listen)
}
