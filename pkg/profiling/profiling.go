// Package profiling exposes runtime diagnostics on an operator-only route group.
package profiling

import (
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

const bytesPerMB = 1024 * 1024

// RuntimeStats is a snapshot of process memory and scheduler state.
type RuntimeStats struct {
	AllocMB      float64   `json:"allocMb"`
	TotalAllocMB float64   `json:"totalAllocMb"`
	SysMB        float64   `json:"sysMb"`
	HeapInUseMB  float64   `json:"heapInUseMb"`
	StackInUseMB float64   `json:"stackInUseMb"`
	HeapObjects  uint64    `json:"heapObjects"`
	NumGC        uint32    `json:"numGc"`
	Goroutines   int       `json:"goroutines"`
	Timestamp    time.Time `json:"timestamp"`
}

func ReadRuntimeStats(now time.Time) RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		AllocMB:      float64(m.Alloc) / bytesPerMB,
		TotalAllocMB: float64(m.TotalAlloc) / bytesPerMB,
		SysMB:        float64(m.Sys) / bytesPerMB,
		HeapInUseMB:  float64(m.HeapInuse) / bytesPerMB,
		StackInUseMB: float64(m.StackInuse) / bytesPerMB,
		HeapObjects:  m.HeapObjects,
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
		Timestamp:    now.UTC(),
	}
}

// Register mounts /runtime and the pprof endpoints on g. The caller is
// responsible for restricting g to operators.
func Register(g *echo.Group) {
	g.GET("/runtime", func(c echo.Context) error {
		return c.JSON(http.StatusOK, ReadRuntimeStats(time.Now()))
	})

	p := g.Group("/debug/pprof")
	p.GET("/", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	p.GET("/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	p.GET("/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	p.GET("/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	p.GET("/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		p.GET("/"+name, echo.WrapHandler(pprof.Handler(name)))
	}
}
