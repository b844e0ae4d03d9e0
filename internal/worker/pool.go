package worker

import (
	"context"
	"sync"
)

// Job is a keyed unit of work. No two jobs submitted to one pool may share a
// key; each worker therefore owns a disjoint slot in the result map and no
// cross-worker locking is needed beyond the collection itself.
type Job interface {
	Key() string
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

type keyedResult struct {
	key    string
	result Result
}

// Pool runs jobs concurrently under a fixed worker cap and collects results
// keyed by job. Wait is the barrier: it returns only after every submitted
// job has completed.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan keyedResult
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given concurrency cap
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2), // Buffered to prevent blocking
		results:    make(chan keyedResult, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers
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
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- keyedResult{key: job.Key(), result: result}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait blocks until all submitted jobs complete and returns their results
// keyed by job key. Completion order does not affect the returned map.
func (p *Pool) Wait() map[string]Result {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	results := make(map[string]Result)
	for kr := range p.results {
		results[kr.key] = kr.result
	}

	return results
}

// Shutdown cancels outstanding work immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
