package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs Go heap stats next to the process resident set until
// ctx is done. Tk photo images for the canvas and result previews live outside
// the Go heap, so growth shows up in rss only. A failing RSS query is logged
// once.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	var rssErrLogged bool
	every(ctx, interval, func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		rss, err := readRSS()
		if err != nil && !rssErrLogged {
			logger.Warn("rss unavailable", "error", err)
			rssErrLogged = true
		}
		logger.Info("memory",
			slog.Uint64("rss", rss),
			slog.Uint64("heap_alloc", ms.HeapAlloc),
			slog.Uint64("heap_inuse", ms.HeapInuse),
			slog.Uint64("heap_sys", ms.HeapSys),
			slog.Uint64("next_gc", ms.NextGC),
			slog.Uint64("num_gc", uint64(ms.NumGC)),
		)
	})
}
