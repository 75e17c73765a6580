// Package schedule provides the fixed-worker-count, static-partition
// scheduler the engine uses for every parallel phase (§5). It is the
// lock-free, join-barrier-per-phase descendant of the teacher's
// concurrency.WorkerPool/BrainWorker actor pool: instead of one
// long-lived goroutine per tenant pulling from an operation channel, a
// Pool spins up at most W goroutines per phase (never more than there are
// work items), each owns a contiguous,
// disjoint slice of the work, and the call blocks until every goroutine
// has returned — there is no cross-worker synchronisation inside a
// phase, only the barrier at its end.
package schedule

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Pool runs parallel phases with a fixed worker count.
type Pool struct {
	workers int
}

// NewPool returns a Pool that fans work out across the given number of
// workers. A count below 1 is treated as 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers reports the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// DefaultWorkerCount resolves the engine's default W from the host's
// logical core count, the way the teacher's vector/simd package probes
// cpuid for SIMD width rather than hand-rolling a /proc/cpuinfo reader.
func DefaultWorkerCount() int {
	n := cpuid.CPU.LogicalCores
	if n < 1 {
		return 1
	}
	return n
}

// Parallelize statically partitions [0,total) into min(p.Workers(), total)
// contiguous, disjoint ranges and runs fn once per range concurrently, passing each
// goroutine its own 0-based worker id and the [lo,hi) slice it owns. It
// blocks until every worker has returned: this is the only join barrier a
// parallel phase needs, since no worker ever touches another's range.
func (p *Pool) Parallelize(total int, fn func(workerID, lo, hi int)) {
	if total <= 0 {
		return
	}
	workers := p.workers
	if workers > total {
		workers = total
	}
	base := total / workers
	rem := total % workers

	var wg sync.WaitGroup
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + base
		if w < rem {
			hi++
		}
		if hi > lo {
			wg.Add(1)
			go func(id, lo, hi int) {
				defer wg.Done()
				fn(id, lo, hi)
			}(w, lo, hi)
		}
		lo = hi
	}
	wg.Wait()
}
