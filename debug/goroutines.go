package debug

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartGoroutineLogger logs the goroutine count, its change since the last
// sample and stack memory until ctx is done. A settled sketch pad sits at a
// constant count; each upload adds one goroutine until Poll drains it.
func StartGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	var last uint64
	every(ctx, interval, func() {
		metrics.Read(samples)
		n := samples[0].Value.Uint64()
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		logger.Info("goroutines",
			slog.Uint64("count", n),
			slog.Int64("delta", int64(n)-int64(last)),
			slog.Uint64("stack_inuse", ms.StackInuse),
			slog.Uint64("stack_sys", ms.StackSys),
		)
		last = n
	})
}
