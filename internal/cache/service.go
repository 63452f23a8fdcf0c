package cache

import (
	"context"
	"time"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/logging"
)

// Config assembles a Service. Store is optional; without one the cache runs
// L1-only.
type Config struct {
	LocalCapacity int
	Namespace     string
	Store         Store
	Telemetry     Telemetry
	Logger        logging.Logger
}

// DefaultConfig returns a local-only configuration with sensible bounds.
func DefaultConfig() Config {
	return Config{
		LocalCapacity: 1000,
		Namespace:     "cache:",
	}
}

// Service is the assembled cache: the tiered cache itself plus a stampede
// guard over it. Callers inject a Service rather than reaching for a package
// global, so tests and independent components can each run their own.
type Service struct {
	*TieredCache

	Guard *StampedeGuard

	store Store
}

// New builds a Service from cfg. The only failure mode is an invalid local
// capacity; remote store trouble degrades the service rather than failing
// construction.
func New(cfg Config) (*Service, error) {
	local, err := NewLocalTier(cfg.LocalCapacity)
	if err != nil {
		return nil, err
	}

	var remote *RemoteTier
	if cfg.Store != nil {
		remote = NewRemoteTier(cfg.Store, cfg.Namespace, cfg.Logger)
	}

	tiered := NewTieredCache(local, remote, cfg.Telemetry, cfg.Logger)

	return &Service{
		TieredCache: tiered,
		Guard:       NewStampedeGuard(tiered),
		store:       cfg.Store,
	}, nil
}

// MustNew is New for wiring paths where an invalid capacity is a programming
// error.
func MustNew(cfg Config) *Service {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// GetWithLock reads key through the stampede guard, running fetch once across
// concurrent callers on a miss.
func (s *Service) GetWithLock(ctx context.Context, key string, fetch FetchFunc, ttl time.Duration) (interface{}, error) {
	return s.Guard.GetWithLock(ctx, key, fetch, ttl)
}

// Close releases the backing store connection, if any.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
