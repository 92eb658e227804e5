package discovery

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

type task func(ctx context.Context) error

// runBatch runs tasks concurrently inside scope. It is all-or-none: the
// first failure cancels the remaining tasks and is returned. If the scope
// closed meanwhile, ErrScopeClosed wins over any task result.
func runBatch(scope *Scope, maxParallel int, tasks ...task) error {
	if !scope.Active() {
		return ErrScopeClosed
	}

	p := pool.New().
		WithContext(scope.Context()).
		WithCancelOnError().
		WithFirstError()
	if maxParallel > 0 {
		p = p.WithMaxGoroutines(maxParallel)
	}
	for _, t := range tasks {
		t := t
		p.Go(func(ctx context.Context) error {
			return t(ctx)
		})
	}
	err := p.Wait()

	if !scope.Active() {
		return ErrScopeClosed
	}
	return err
}
