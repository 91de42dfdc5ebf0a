package health

import (
	"context"
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a CheckFunc that reports unhealthy when the
// number of goroutines exceeds the given threshold. This is useful as a
// liveness check to detect goroutine leaks.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		count := runtime.NumGoroutine()
		if count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// Pinger is anything with a context-aware Ping, such as a redis client
// wrapper or a database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck returns a CheckFunc that delegates to p.Ping. Useful as a
// readiness check for stores the service cannot serve without.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}

// HTTPGetCheck returns a CheckFunc that issues a GET to url and reports
// unhealthy on transport errors or a 5xx status. Useful as a readiness check
// for an upstream service.
func HTTPGetCheck(client *http.Client, url string) CheckFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(err, "build request")
		}
		resp, err := client.Do(req)
		if err != nil {
			return errors.Wrap(err, "request")
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode >= http.StatusInternalServerError {
			return errors.Errorf("upstream returned %d", resp.StatusCode)
		}
		return nil
	}
}

// GCMaxPauseCheck returns a CheckFunc that reports unhealthy when the maximum
// GC pause (stop-the-world) duration exceeds the given threshold. This is
// useful as a liveness check to detect memory pressure or excessively large
// heaps causing long GC pauses.
func GCMaxPauseCheck(threshold time.Duration) CheckFunc {
	return func(_ context.Context) error {
		var stats debug.GCStats
		debug.ReadGCStats(&stats)

		for _, pause := range stats.Pause {
			if pause > threshold {
				return errors.Errorf("GC pause %s exceeds threshold %s", pause, threshold)
			}
		}
		return nil
	}
}
