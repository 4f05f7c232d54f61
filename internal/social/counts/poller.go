package counts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often a tracked count is refetched.
const DefaultInterval = 5 * time.Second

type entry struct {
	cancel  context.CancelFunc
	refresh chan struct{}

	mu  sync.RWMutex
	val int
	ok  bool
}

func (e *entry) set(v int) {
	e.mu.Lock()
	e.val, e.ok = v, true
	e.mu.Unlock()
}

// Poller keeps a set of counts warm. Each tracked key gets one goroutine
// that fetches immediately, then on every tick, then whenever Refresh is
// poked. All fetches for a key run on that single goroutine, so a slow
// response can never overwrite a later one.
type Poller struct {
	counter  *Counter
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	entries map[Key]*entry
}

func NewPoller(counter *Counter, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		counter:  counter,
		interval: interval,
		log:      log,
		entries:  make(map[Key]*entry),
	}
}

// Track starts polling a key. Tracking an already tracked key is a no-op.
// Polling stops when ctx is cancelled or Stop/Close is called.
func (p *Poller) Track(ctx context.Context, key Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[key]; ok {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	e := &entry{cancel: cancel, refresh: make(chan struct{}, 1)}
	p.entries[key] = e
	go p.loop(ctx, key, e)
}

func (p *Poller) loop(ctx context.Context, key Key, e *entry) {
	p.fetch(ctx, key, e)
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.fetch(ctx, key, e)
		case <-e.refresh:
			p.fetch(ctx, key, e)
			t.Reset(p.interval)
		}
	}
}

func (p *Poller) fetch(ctx context.Context, key Key, e *entry) {
	v, err := p.counter.Fetch(ctx, key)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("count fetch failed", zap.String("key", key.String()), zap.Error(err))
		}
		return
	}
	e.set(v)
}

// Refresh pokes an immediate refetch of a tracked key ahead of its next
// tick, used after a mutation that changed the count. Pokes coalesce; an
// untracked key is ignored.
func (p *Poller) Refresh(key Key) {
	p.mu.Lock()
	e, ok := p.entries[key]
	p.mu.Unlock()
	if !ok {
		return
	}
	select {
	case e.refresh <- struct{}{}:
	default:
	}
}

// Value returns the last fetched count for a key. ok is false until the
// first fetch completes or when the key is not tracked.
func (p *Poller) Value(key Key) (int, bool) {
	p.mu.Lock()
	e, ok := p.entries[key]
	p.mu.Unlock()
	if !ok {
		return 0, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.val, e.ok
}

// Stop stops polling one key and forgets its value.
func (p *Poller) Stop(key Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[key]; ok {
		e.cancel()
		delete(p.entries, key)
	}
}

// Close stops all polling.
func (p *Poller) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, e := range p.entries {
		e.cancel()
		delete(p.entries, key)
	}
}
