package worker

import (
	"context"
	"sort"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

type queuedJob struct {
	index int
	job   Job
}

// Pool runs jobs on a fixed number of workers and returns results in submission order
type Pool struct {
	workers    int
	jobQueue   chan queuedJob
	collector  *ResultCollector
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	next       int
	closeOnce  sync.Once
}

// NewPool creates a new worker pool bound to ctx
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan queuedJob, workers*2),
		collector:  NewResultCollector(),
		ctx:        poolCtx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case q, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.collector.Add(q.index, q.job.Execute(p.ctx))
		}
	}
}

// Submit queues a job and returns its index, or -1 once the pool is cancelled.
// Submit must be called from a single goroutine.
func (p *Pool) Submit(job Job) int {
	if p.ctx.Err() != nil {
		return -1
	}

	index := p.next
	select {
	case <-p.ctx.Done():
		return -1
	case p.jobQueue <- queuedJob{index: index, job: job}:
		p.next++
		return index
	}
}

// Wait closes the queue, waits for the workers and returns the results by index.
// Jobs skipped because of cancellation have no entry.
func (p *Pool) Wait() map[int]Result {
	p.closeQueue()
	p.wg.Wait()
	p.cancelFunc()
	return p.collector.Indexed()
}

// Shutdown cancels outstanding jobs and waits for running ones
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.closeQueue()
	p.wg.Wait()
}

func (p *Pool) closeQueue() {
	p.closeOnce.Do(func() {
		close(p.jobQueue)
	})
}

// ResultCollector gathers results from concurrent workers
type ResultCollector struct {
	results map[int]Result
	mu      sync.Mutex
}

// NewResultCollector creates a new result collector
func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		results: make(map[int]Result),
	}
}

// Add records the result of the job at index (thread-safe)
func (c *ResultCollector) Add(index int, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[index] = result
}

// Indexed returns a copy of the results keyed by job index
func (c *ResultCollector) Indexed() map[int]Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[int]Result, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// Results returns the collected results ordered by job index
func (c *ResultCollector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]int, 0, len(c.results))
	for k := range c.results {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]Result, len(keys))
	for i, k := range keys {
		out[i] = c.results[k]
	}
	return out
}
