package server

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/trafikskolan/supportbot/config"
	"github.com/trafikskolan/supportbot/internal/catalog"
	"github.com/trafikskolan/supportbot/internal/retrieval"
)

// EngineHolder hands out the current retrieval engine and lets a reload
// swap in a new one atomically. In-flight requests keep the engine they
// started with, so they never observe a partially rebuilt index.
type EngineHolder struct {
	ptr atomic.Pointer[retrieval.Engine]
}

func NewEngineHolder(engine *retrieval.Engine) *EngineHolder {
	h := &EngineHolder{}
	h.ptr.Store(engine)
	return h
}

// Engine returns the current engine.
func (h *EngineHolder) Engine() *retrieval.Engine { return h.ptr.Load() }

// Swap installs a new engine for subsequent requests.
func (h *EngineHolder) Swap(engine *retrieval.Engine) { h.ptr.Store(engine) }

// Reloader rebuilds the knowledge snapshot on a cron schedule. A reload
// that fails, or that would install an empty index, is skipped and the
// previous snapshot keeps serving.
type Reloader struct {
	cfg     *config.Config
	engines *EngineHolder
	expr    *cronexpr.Expression
	logger  *log.Logger
	stop    chan struct{}
}

func NewReloader(cfg *config.Config, engines *EngineHolder, logger *log.Logger) (*Reloader, error) {
	expr, err := cronexpr.Parse(cfg.Knowledge.ReloadCron)
	if err != nil {
		return nil, fmt.Errorf("parse knowledge.reload_cron %q: %w", cfg.Knowledge.ReloadCron, err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Reloader{
		cfg:     cfg,
		engines: engines,
		expr:    expr,
		logger:  logger,
		stop:    make(chan struct{}),
	}, nil
}

func (r *Reloader) Start() {
	go r.loop()
}

func (r *Reloader) Stop() {
	close(r.stop)
}

func (r *Reloader) loop() {
	for {
		next := r.expr.Next(time.Now())
		if next.IsZero() {
			return
		}
		select {
		case <-time.After(time.Until(next)):
			r.reload()
		case <-r.stop:
			return
		}
	}
}

func (r *Reloader) reload() {
	snap, err := catalog.Load(r.cfg.Knowledge.Dir, r.logger)
	if err != nil {
		r.logger.Printf("reload failed, keeping previous snapshot: %v", err)
		return
	}
	if snap.Len() == 0 {
		r.logger.Printf("reload produced no chunks, keeping previous snapshot")
		return
	}
	r.engines.Swap(retrieval.NewEngine(snap, r.cfg.Retrieval, r.logger))
	observeSnapshot(snap)
	r.logger.Printf("reloaded snapshot: %d chunks, %d cities", snap.Len(), len(snap.Cities()))
}
