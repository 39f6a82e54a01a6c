// Package worker provides a bounded worker pool for fanning independent
// jobs out across goroutines, such as perft subtrees of a root position.
package worker

import (
	"sync"
	"sync/atomic"
)

// WorkItem is one job handed to the pool.
type WorkItem[T any] struct {
	Value T
	Index int // Original index for tracking
}

// ProcessResult is what a worker produced for one WorkItem.
type ProcessResult[R any] struct {
	Value R
	Index int
	Err   error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc[T, R any] func(item WorkItem[T]) ProcessResult[R]

// Pool manages a fixed set of workers reading from a buffered work channel.
type Pool[T, R any] struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem[T]
	resultChan  chan ProcessResult[R]
	processFunc ProcessFunc[T, R]
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// settings holds the tunables shared by every Pool instantiation.
type settings struct {
	numWorkers int
	bufferSize int
}

// PoolOption configures a Pool.
type PoolOption func(*settings)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(s *settings) {
		if n >= 1 {
			s.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(s *settings) {
		if size >= 1 {
			s.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool[T, R any](numWorkers, bufferSize int, processFunc ProcessFunc[T, R]) *Pool[T, R] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool[T, R]{
		numWorkers:  numWorkers,
		bufferSize:  bufferSize,
		workChan:    make(chan WorkItem[T], bufferSize),
		resultChan:  make(chan ProcessResult[R], bufferSize),
		processFunc: processFunc,
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions[T, R any](processFunc ProcessFunc[T, R], opts ...PoolOption) *Pool[T, R] {
	s := settings{numWorkers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&s)
	}
	return NewPool(s.numWorkers, s.bufferSize, processFunc)
}

// Start starts the worker goroutines.
func (p *Pool[T, R]) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool[T, R]) Submit(item WorkItem[T]) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool[T, R]) TrySubmit(item WorkItem[T]) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool[T, R]) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool[T, R]) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker has returned.
func (p *Pool[T, R]) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool[T, R]) Results() <-chan ProcessResult[R] {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool[T, R]) NumWorkers() int {
	return p.numWorkers
}

// Map runs fn over items on a pool of the given size and returns the results
// in input order. The first error reported by fn stops the pool and is
// returned.
func Map[T, R any](items []T, workers int, fn func(T) (R, error)) ([]R, error) {
	pool := NewPool(workers, len(items), func(item WorkItem[T]) ProcessResult[R] {
		v, err := fn(item.Value)
		return ProcessResult[R]{Value: v, Index: item.Index, Err: err}
	})
	pool.Start()

	go func() {
		for i, it := range items {
			pool.Submit(WorkItem[T]{Value: it, Index: i})
		}
		pool.Close()
	}()

	out := make([]R, len(items))
	var firstErr error
	for res := range pool.Results() {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
			pool.Stop()
		}
		out[res.Index] = res.Value
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
