package folio

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one browser is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// SnapshotPool bounds the number of concurrent browsers. Snapshotters are
// created on first demand, up to the pool size.
type SnapshotPool struct {
	size    int
	newFn   func() *Snapshotter
	idle    chan *Snapshotter
	done    chan struct{}
	mu      sync.Mutex
	all     []*Snapshotter
	created int
	closed  bool
}

// NewSnapshotPool creates a pool of at most n snapshotters built with opts.
func NewSnapshotPool(n int, opts ...SnapshotOption) *SnapshotPool {
	return newSnapshotPool(n, func() *Snapshotter { return NewSnapshotter(opts...) })
}

func newSnapshotPool(n int, newFn func() *Snapshotter) *SnapshotPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &SnapshotPool{
		size:  n,
		newFn: newFn,
		idle:  make(chan *Snapshotter, n),
		done:  make(chan struct{}),
	}
}

// Acquire returns an idle snapshotter, creates one if the pool has room,
// or waits for a Release. Returns ErrPoolClosed after Close and the context
// error when ctx ends first.
func (p *SnapshotPool) Acquire(ctx context.Context) (*Snapshotter, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	select {
	case s := <-p.idle:
		p.mu.Unlock()
		return s, nil
	default:
	}
	if p.created < p.size {
		p.created++
		s := p.newFn()
		p.all = append(p.all, s)
		p.mu.Unlock()
		return s, nil
	}
	p.mu.Unlock()

	select {
	case s := <-p.idle:
		return s, nil
	case <-p.done:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns s to the pool. After Close it is a no-op; Close already
// owns every snapshotter the pool created.
func (p *SnapshotPool) Release(s *Snapshotter) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Capacity equals the number of snapshotters, so this never blocks.
	p.idle <- s
}

// Snapshot acquires a snapshotter, renders html and releases it.
func (p *SnapshotPool) Snapshot(ctx context.Context, html string, format Format) ([]byte, error) {
	s, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(s)
	return s.Snapshot(ctx, html, format)
}

// Close stops every browser the pool created. Waiting Acquire calls return
// ErrPoolClosed. Errors from individual browsers are joined.
func (p *SnapshotPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	for len(p.idle) > 0 {
		<-p.idle
	}
	all := p.all
	p.all = nil
	p.mu.Unlock()

	var errs []error
	for _, s := range all {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *SnapshotPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize]. GOMAXPROCS follows
// container limits when the binary imports automaxprocs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
