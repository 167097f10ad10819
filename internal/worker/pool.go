// Package worker provides a worker pool for analysing positions in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-console-go/internal/chess"
)

// WorkItem is one position to process.
type WorkItem struct {
	Index int    // position in the caller's input, echoed in the Result
	FEN   string // position text as supplied by the caller
}

// Result is the outcome of processing one WorkItem.
type Result struct {
	Index    int
	FEN      string
	Position *chess.Position // parsed position, nil if FEN was rejected
	Payload  interface{}     // analysis output; typed by the consumer
	Err      error
}

// ProcessFunc processes one work item. It runs on a worker goroutine and
// must not share mutable state with other calls.
type ProcessFunc func(item WorkItem) Result

// Pool runs a ProcessFunc over submitted items on a fixed number of
// goroutines. Results arrive in completion order.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan Result
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the capacity of the work and result channels.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool for processFunc. By default it has one worker and
// channel buffers of 16.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  16,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan Result, p.bufferSize)
	return p
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item, blocking while the work buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers skip every item not yet started.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission, waits for the workers and then closes Results.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the channel results are delivered on.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run processes every FEN in fens and returns the results in input order.
// When ctx ends the pool is stopped; items it never processed get a Result
// carrying ctx's error, and Run returns that error too.
func Run(ctx context.Context, fens []string, processFunc ProcessFunc, opts ...PoolOption) ([]Result, error) {
	pool := NewPool(processFunc, opts...)
	pool.Start()

	release := context.AfterFunc(ctx, pool.Stop)
	defer release()

	go func() {
		for i, fen := range fens {
			if ctx.Err() != nil {
				break
			}
			pool.Submit(WorkItem{Index: i, FEN: fen})
		}
		pool.Close()
	}()

	results := make([]Result, len(fens))
	done := make([]bool, len(fens))
	processed := 0
	for r := range pool.Results() {
		results[r.Index] = r
		done[r.Index] = true
		processed++
	}
	if processed == len(fens) {
		return results, nil
	}

	err := ctx.Err()
	for i := range results {
		if !done[i] {
			results[i] = Result{Index: i, FEN: fens[i], Err: err}
		}
	}
	return results, err
}
