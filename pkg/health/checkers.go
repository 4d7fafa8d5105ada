package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck fails when more than threshold goroutines are running.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck wraps p's Ping as a CheckFunc, prefixing errors with name.
func PingCheck(name string, p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Wrapf(err, "ping %s", name)
		}
		return nil
	}
}
