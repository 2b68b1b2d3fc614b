package pipeline

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"omnisearch/internal/domain"
)

// SearchFunc fetches items for query from an external source
type SearchFunc func(ctx context.Context, query string) ([]domain.Item, error)

// RemoteResult is the outcome of one debounced fetch
type RemoteResult struct {
	Generation uint64
	Query      string
	Items      []domain.Item
	Err        error
}

const defaultCacheSize = 64

// Remote debounces calls to a SearchFunc. Every Schedule or Invalidate
// starts a new generation; results from older generations are never
// delivered.
type Remote struct {
	search SearchFunc
	delay  time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc

	cache *lru.Cache[string, []domain.Item]
	group singleflight.Group

	fmu        sync.Mutex
	flights    map[string]*flight
	nextFlight uint64
}

// flight is one shared fetch of a query. It is cancelled once every
// caller waiting on it has given up.
type flight struct {
	key     string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewRemote creates a debounced remote search. cacheSize <= 0 selects a
// default size.
func NewRemote(search SearchFunc, delay time.Duration, cacheSize int) *Remote {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, []domain.Item](cacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &Remote{
		search:  search,
		delay:   delay,
		cache:   cache,
		flights: make(map[string]*flight),
	}
}

// Schedule supersedes any pending or in-flight fetch and, once query has
// been stable for the debounce delay, fetches it and calls apply from
// another goroutine. Blank queries are never fetched.
func (r *Remote) Schedule(query string, apply func(RemoteResult)) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	gen := r.supersede()
	if strings.TrimSpace(query) == "" {
		return gen
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.timer = time.AfterFunc(r.delay, func() {
		items, err := r.fetch(ctx, query)
		if !r.IsCurrent(gen) {
			log.Printf("Discarding stale remote results for %q", query)
			return
		}
		apply(RemoteResult{Generation: gen, Query: query, Items: items, Err: err})
	})
	return gen
}

// Invalidate drops any pending or in-flight fetch
func (r *Remote) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersede()
}

// IsCurrent reports whether gen is the latest generation
func (r *Remote) IsCurrent(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.gen
}

// Generation returns the latest generation
func (r *Remote) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// supersede must be called with r.mu held
func (r *Remote) supersede() uint64 {
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	return r.gen
}

// fetch returns cached items or joins the shared fetch for query. The
// shared fetch runs on its own context, so a caller that is cancelled only
// stops waiting and never fails the callers that joined after it.
func (r *Remote) fetch(ctx context.Context, query string) ([]domain.Item, error) {
	if items, ok := r.cache.Get(query); ok {
		return items, nil
	}

	f := r.join(query)
	defer r.leave(query, f)

	ch := r.group.DoChan(f.key, func() (any, error) {
		items, err := r.search(f.ctx, query)
		if err != nil {
			return nil, err
		}
		r.cache.Add(query, items)
		return items, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Item), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Remote) join(query string) *flight {
	r.fmu.Lock()
	defer r.fmu.Unlock()

	f, ok := r.flights[query]
	if !ok {
		r.nextFlight++
		ctx, cancel := context.WithCancel(context.Background())
		f = &flight{
			key:    strconv.FormatUint(r.nextFlight, 10) + ":" + query,
			ctx:    ctx,
			cancel: cancel,
		}
		r.flights[query] = f
	}
	f.waiters++
	return f
}

func (r *Remote) leave(query string, f *flight) {
	r.fmu.Lock()
	defer r.fmu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if r.flights[query] == f {
		delete(r.flights, query)
	}
}
