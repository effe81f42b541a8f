package pool

import (
	"runtime"
)

// parallelizeAlone calculates the result of f count times
func parallelizeAlone(f func(int) interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		results[i] = f(i)
	}
	return results
}

// task asks a worker to evaluate f at index i.
//
// Every call to Parallelize owns its done channel, so concurrent callers
// sharing a pool never consume each other's completions.
type task struct {
	i       int
	f       func(int) interface{}
	results []interface{}
	done    chan<- struct{}
}

// worker starts up a new worker, listening to tasks, and producing results
func worker(tasks <-chan task) {
	for t := range tasks {
		t.results[t.i] = t.f(t.i)
		t.done <- struct{}{}
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	// The common channel used to send tasks to the workers.
	tasks chan task
	// This holds the number of workers we've created
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}

	p := &Pool{
		tasks:       make(chan task),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.tasks)
	}
	return p
}

// TearDown cleanly tears down a pool, closing channels, etc.
//
// The pool must not be used afterwards.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Workers returns the number of workers, or 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	if p == nil {
		return parallelizeAlone(f, count)
	}

	results := make([]interface{}, count)
	// buffered so that workers never wait on us while we are still sending
	done := make(chan struct{}, count)
	for i := 0; i < count; i++ {
		p.tasks <- task{i: i, f: f, results: results, done: done}
	}
	for i := 0; i < count; i++ {
		<-done
	}
	return results
}
