package research

import (
	"time"

	"go.uber.org/zap"

	aitypes "github.com/eventscope/eventscope/internal/ai/types"
	"github.com/eventscope/eventscope/internal/pkg/cache"
	"github.com/eventscope/eventscope/internal/pkg/workerpool"
	"github.com/eventscope/eventscope/internal/webfetch"
	"github.com/eventscope/eventscope/internal/websearch/provider"
)

// Engine runs the event discovery pipeline. Construct one per process and
// reuse it across runs so the cache can pay off.
type Engine struct {
	config  *Config
	search  provider.Provider
	fetcher webfetch.Fetcher
	ai      aitypes.Provider
	cache   *cache.Cache
	pool    *workerpool.Pool
	log     *zap.Logger
}

// Deps are the external collaborators the pipeline consumes. Search and AI
// are required; Fetcher and Logger get sensible defaults.
type Deps struct {
	Search  provider.Provider
	Fetcher webfetch.Fetcher
	AI      aitypes.Provider
	Logger  *zap.Logger
}

// New creates a research engine with its own cache and worker pool.
func New(cfg *Config, deps Deps) (*Engine, error) {
	if deps.Search == nil {
		return nil, ErrNoSearchProvider
	}
	if deps.AI == nil {
		return nil, ErrNoCompletionProvider
	}

	cfg = cfg.withDefaults()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = webfetch.New()
	}

	pool, err := workerpool.New(&workerpool.Config{Workers: cfg.Workers}, log)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:  cfg,
		search:  deps.Search,
		fetcher: fetcher,
		ai:      deps.AI,
		cache:   cache.New(),
		pool:    pool,
		log:     log.Named("research"),
	}, nil
}

// CacheStats reports hit/miss counters for the shared search/fetch cache.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// SweepCache drops cache entries older than maxAge. Optional maintenance;
// entries expire by TTL on read regardless.
func (e *Engine) SweepCache(maxAge time.Duration) {
	e.cache.ClearOld(maxAge)
}

// Close releases the worker pool. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.pool.Release()
}
