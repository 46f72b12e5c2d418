package scraper

import (
	"context"
	"sync"
	"time"
)

// Task is one unit of fetch work. Name is echoed on its Result so callers
// can tell which page failed.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Result struct {
	Name string
	Err  error
}

// WorkerPool runs tasks on a fixed number of goroutines, optionally paced
// by a shared requests-per-second limit.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup

	mu     sync.RWMutex
	rate   <-chan time.Time
	ticker *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// SetRateLimit paces task starts across all workers. Call it before Run.
func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTickerLocked()
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

func (p *WorkerPool) stopTickerLocked() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
	p.ticker = nil
	p.rate = nil
}

// Submit queues t. It gives up and reports false once ctx is done.
func (p *WorkerPool) Submit(ctx context.Context, t Task) bool {
	if p == nil || t.Run == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

// Close stops accepting tasks. Workers drain what is queued, still paced
// by the rate limit, and exit.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel closes after Close once
// every queued task has reported, or as soon as ctx is done.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, cap(p.tasks)+p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(ctx, out)
	}

	go func() {
		p.wg.Wait()
		p.mu.Lock()
		p.stopTickerLocked()
		p.mu.Unlock()
		close(out)
	}()

	return out
}

func (p *WorkerPool) work(ctx context.Context, out chan<- Result) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			p.mu.RLock()
			rate := p.rate
			p.mu.RUnlock()
			if rate != nil {
				select {
				case <-ctx.Done():
					return
				case <-rate:
				}
			}
			res := Result{Name: t.Name, Err: t.Run(ctx)}
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
		}
	}
}
