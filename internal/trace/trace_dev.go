//go:build dev

// Package trace wraps runtime/trace for development builds.
//
// Usage:
//
//	PROMPTLINE_TRACE=trace.out promptline complete 'git st'
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
	"sync/atomic"
)

var (
	mu     sync.Mutex
	out    *os.File
	active atomic.Bool
)

// Init starts tracing when PROMPTLINE_TRACE names an output file.
// The returned function stops tracing and must be deferred.
func Init() func() {
	path := os.Getenv("PROMPTLINE_TRACE")
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptline: cannot create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "promptline: cannot start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}

	out = f
	active.Store(true)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if active.CompareAndSwap(true, false) {
			trace.Stop()
		}
		if out != nil {
			_ = out.Close()
			out = nil
		}
	}
}

// Region starts a trace region and returns the function ending it
func Region(ctx context.Context, name string) func() {
	if !active.Load() {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}
