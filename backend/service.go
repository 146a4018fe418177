package backend

import (
	"fmt"
	"sync"
	"time"

	"github.com/primeflix-cli/primeflix/content"
	"github.com/primeflix-cli/primeflix/internal/cache"
	"github.com/primeflix-cli/primeflix/key"
	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/platform"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Options carries the collaborators a Service is constructed with. The
// application entry point builds one Service and passes it by reference;
// nothing in this package holds hidden global state.
type Options struct {
	Registry platform.Registry
	Executor platform.Executor
	Cache    *cache.Cache

	// Loader defaults to the production Lua loader when nil.
	Loader ScriptLoader
}

// Service is the backend facade: it selects a strategy once per process and
// serves every content operation through the cache and the normalizer.
type Service struct {
	registry platform.Registry
	executor platform.Executor
	loader   ScriptLoader
	cache    *cache.Cache

	mu         sync.Mutex
	adapter    Adapter
	descriptor *Descriptor
}

// NewService constructs the facade. Selection is lazy: the first content
// operation (or an explicit Select call) triggers it.
func NewService(opts Options) *Service {
	loader := opts.Loader
	if loader == nil {
		loader = NewScriptLoader()
	}
	return &Service{
		registry: opts.Registry,
		executor: opts.Executor,
		loader:   loader,
		cache:    opts.Cache,
	}
}

// Select discovers the provider extension and binds a strategy: direct first,
// RPC on fallback. The outcome is memoized for the process lifetime; only a
// successful selection is cached, so a transient failure can be retried.
func (s *Service) Select() (Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.descriptor != nil {
		return *s.descriptor, nil
	}

	locator := NewLocator(s.registry, viper.GetStringSlice(key.BackendCandidates), viper.GetString(key.BackendCategory))
	id, found := locator.Discover().Get()
	if !found {
		return Descriptor{}, &UnavailableError{Reasons: []string{"no provider extension found"}}
	}

	var reasons []string

	direct, err := NewDirectAdapter(id, s.registry, s.loader)
	if err == nil {
		return s.bind(id, direct), nil
	}
	reasons = append(reasons, err.Error())

	rpc, err := NewRPCAdapter(id, s.registry, s.executor)
	if err == nil {
		return s.bind(id, rpc), nil
	}
	reasons = append(reasons, err.Error())

	return Descriptor{}, &UnavailableError{Reasons: reasons}
}

func (s *Service) bind(id string, adapter Adapter) Descriptor {
	s.adapter = adapter
	s.descriptor = &Descriptor{BackendID: id, Strategy: adapter.Strategy()}
	log.Infof("backend: bound %s using %s strategy", id, adapter.Strategy())
	return *s.descriptor
}

// Descriptor returns the selection outcome, or None when nothing is bound yet.
func (s *Service) Descriptor() mo.Option[Descriptor] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.descriptor == nil {
		return mo.None[Descriptor]()
	}
	return mo.Some(*s.descriptor)
}

// selected returns the bound adapter, selecting first when needed.
func (s *Service) selected() (Adapter, error) {
	if _, err := s.Select(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter, nil
}

func cacheTTL() time.Duration {
	return time.Duration(viper.GetInt(key.CacheTTLSeconds)) * time.Second
}

// fetch wraps one content operation in the TTL cache. force bypasses the
// lookup but still writes the fresh result back. The boolean reports whether
// the value was served warm.
func fetch[T any](s *Service, cacheKey string, force bool, fill func(Adapter) (T, error)) (T, bool, error) {
	var value T

	useCache := s.cache != nil && viper.GetBool(key.CacheEnabled)
	if useCache && !force {
		if s.cache.Get(cacheKey, cacheTTL(), &value) {
			return value, true, nil
		}
	}

	adapter, err := s.selected()
	if err != nil {
		return value, false, err
	}

	value, err = fill(adapter)
	if err != nil {
		return value, false, err
	}

	if useCache {
		if err := s.cache.Set(cacheKey, value, cacheTTL()); err != nil {
			log.Warnf("backend: caching %s: %v", cacheKey, err)
		}
	}
	return value, false, nil
}

// HomeRails fetches the rails of the home view.
func (s *Service) HomeRails(force bool) ([]content.Rail, bool, error) {
	return fetch(s, "home_rails", force, func(a Adapter) ([]content.Rail, error) {
		raw, err := a.HomeRails()
		if err != nil {
			return nil, err
		}
		return NormalizeRails(raw), nil
	})
}

// Rail fetches one page of a rail. The cursor is opaque and echoed verbatim.
func (s *Service) Rail(id, cursor string, force bool) (content.Page, bool, error) {
	limit := viper.GetInt(key.SearchPageLimit)
	cacheKey := fmt.Sprintf("rail/%s/%s/%d", id, cursor, limit)
	return fetch(s, cacheKey, force, func(a Adapter) (content.Page, error) {
		raw, err := a.Rail(id, cursor, limit)
		if err != nil {
			return content.Page{}, err
		}
		return NormalizePage(raw), nil
	})
}

// Search fetches one page of search results.
func (s *Service) Search(query, cursor string, force bool) (content.Page, bool, error) {
	limit := viper.GetInt(key.SearchPageLimit)
	cacheKey := fmt.Sprintf("search/%s/%s/%d", query, cursor, limit)
	return fetch(s, cacheKey, force, func(a Adapter) (content.Page, error) {
		raw, err := a.Search(query, cursor, limit)
		if err != nil {
			return content.Page{}, err
		}
		return NormalizePage(raw), nil
	})
}

// Playable resolves playback properties for one item.
func (s *Service) Playable(id string, force bool) (content.Playable, bool, error) {
	cacheKey := fmt.Sprintf("playable/%s", id)
	return fetch(s, cacheKey, force, func(a Adapter) (content.Playable, error) {
		raw, err := a.Playable(id)
		if err != nil {
			return content.Playable{}, err
		}
		return NormalizePlayable(raw)
	})
}

// Region reports the provider's active region, when the extension exposes one.
func (s *Service) Region() (string, error) {
	adapter, err := s.selected()
	if err != nil {
		return "", err
	}

	raw, err := adapter.Region()
	if err != nil {
		return "", err
	}
	if region, ok := raw.(string); ok {
		return region, nil
	}
	return "", opErrorf("region", "unexpected payload: %T", raw)
}

// DRMReady reports the bound extension's DRM capability. Unknown (including a
// failed selection) is None, which readiness checks treat as a pass.
func (s *Service) DRMReady() mo.Option[bool] {
	adapter, err := s.selected()
	if err != nil {
		return mo.None[bool]()
	}
	return adapter.DRMReady()
}

// Cache exposes the underlying store for prefix invalidation by diagnostics.
func (s *Service) Cache() *cache.Cache {
	return s.cache
}
