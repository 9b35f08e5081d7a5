// Package pool provides a small bounded worker pool, modeled on the
// teacher's pkg/pool.Pool that every protocol Start function threads
// through (pl *pool.Pool). The DKG core's multiexp_vartime uses it to
// parallelize independent scalar multiplications once a batch is large
// enough that the goroutine overhead pays for itself.
package pool

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used to parallelize CPU-bound curve
// arithmetic. A zero-value workers count means "use GOMAXPROCS," matching
// the teacher's pool.NewPool(0) convention seen throughout its test suite.
type Pool struct {
	workers int
}

// New returns a Pool with the given worker count. Passing 0 picks
// runtime.GOMAXPROCS(0).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// TearDown releases pool resources. Present for parity with the teacher's
// pool.Pool (called via defer pl.TearDown() in every test); this pool holds
// no background goroutines to stop, so it is a no-op.
func (p *Pool) TearDown() {}

// Parallelize runs fn(i) for i in [0, n) across the pool's workers and
// waits for all of them to finish, returning the first error encountered.
// For n at or below parallelizeThreshold, or a pool with a single worker,
// it runs sequentially in the calling goroutine instead, since goroutine
// dispatch overhead dominates for small batches.
func (p *Pool) Parallelize(n int, fn func(i int) error) error {
	const parallelizeThreshold = 8
	if n <= parallelizeThreshold || p.workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
