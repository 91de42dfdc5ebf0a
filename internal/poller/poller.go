// Package poller keeps the user's order list approximately fresh by
// fetching it on a fixed interval for as long as the owning view is active.
package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xenking/eats-storefront/internal/domain/order"
)

// OrderFetcher is the slice of the backend client the poller needs.
type OrderFetcher interface {
	GetMyOrders(ctx context.Context) ([]order.Order, error)
}

// Config controls polling cadence.
type Config struct {
	// Interval between ticks. Defaults to 5s.
	Interval time.Duration
	// TickTimeout bounds a single fetch. Defaults to the interval, so one
	// slow tick can never hold more than one in-flight request per slot.
	TickTimeout time.Duration
}

func (c *Config) setDefaults() {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Second
	}
	if c.TickTimeout <= 0 {
		c.TickTimeout = c.Interval
	}
}

// Change is one observed order lifecycle transition.
type Change struct {
	Order order.Order
	From  order.Status
	To    order.Status
}

// Poller periodically fetches "my orders" and reports snapshots and status
// transitions. Lifecycle transitions are entirely server-driven; the poller
// only observes them.
type Poller struct {
	fetch      OrderFetcher
	cfg        Config
	lg         *zap.Logger
	onSnapshot func([]order.Order)
	onChange   func(Change)

	// mu guards the change-detection state and serializes callback
	// delivery, so overlapping ticks cannot deliver out of order.
	mu   sync.Mutex
	seen map[string]order.Status
	// lastSeq drops results of ticks that finished after a newer tick
	// already delivered, so a slow response cannot roll state backwards.
	lastSeq uint64
}

// New creates a Poller. onSnapshot receives every successful fetch result;
// onChange fires once per observed status transition. Either callback may be
// nil. Callbacks are invoked serially and must not call back into the Poller.
func New(fetch OrderFetcher, cfg Config, lg *zap.Logger, onSnapshot func([]order.Order), onChange func(Change)) *Poller {
	cfg.setDefaults()
	return &Poller{
		fetch:      fetch,
		cfg:        cfg,
		lg:         lg,
		onSnapshot: onSnapshot,
		onChange:   onChange,
		seen:       make(map[string]order.Status),
	}
}

// Run polls until ctx is cancelled, then returns; no timers or goroutines
// outlive it. The first tick fires immediately. Every tick runs its fetch in
// its own goroutine, so a slow or failed tick never blocks or cancels the
// next scheduled one.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	var seq uint64

	launch := func() {
		seq++
		wg.Add(1)
		go func(n uint64) {
			defer wg.Done()
			p.tick(ctx, n)
		}(seq)
	}

	launch()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-ticker.C:
			launch()
		}
	}
}

// tick fetches once and delivers the result unless a newer tick already
// delivered.
func (p *Poller) tick(ctx context.Context, seq uint64) {
	tickCtx, cancel := context.WithTimeout(ctx, p.cfg.TickTimeout)
	defer cancel()

	orders, err := p.fetch.GetMyOrders(tickCtx)
	if err != nil {
		// Each tick is independent; the next one runs on schedule.
		p.lg.Warn("Order poll failed", zap.Uint64("tick", seq), zap.Error(err))
		return
	}

	p.deliver(seq, orders)
}

// deliver records the snapshot and fires the callbacks, or reports false when
// the tick is stale. State update and callback invocation happen under one
// lock, so callbacks observe snapshots in sequence order even when ticks
// overlap.
func (p *Poller) deliver(seq uint64, orders []order.Order) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq < p.lastSeq {
		return false
	}
	p.lastSeq = seq

	var changes []Change
	for _, o := range orders {
		prev, known := p.seen[o.ID]
		if known && prev != o.Status {
			changes = append(changes, Change{Order: o, From: prev, To: o.Status})
		}
		p.seen[o.ID] = o.Status
	}

	if p.onSnapshot != nil {
		p.onSnapshot(orders)
	}
	if p.onChange != nil {
		for _, ch := range changes {
			p.onChange(ch)
		}
	}
	return true
}
