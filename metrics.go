package main

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

var serverStartTime = time.Now()

// HTTP metrics
var (
	httpRequestsTotal atomic.Int64
	httpErrorsTotal   atomic.Int64
)

// Relay metrics
var (
	publishSuccessTotal atomic.Int64
	publishFailureTotal atomic.Int64
	notificationLoads   atomic.Int64
)

// Cache metrics
var (
	profileCacheHits   atomic.Int64
	profileCacheMisses atomic.Int64
)

// metricsHandler serves Prometheus-compatible metrics
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	fmt.Fprintf(w, "# HELP olas_build_info Build and configuration information\n")
	fmt.Fprintf(w, "# TYPE olas_build_info gauge\n")
	fmt.Fprintf(w, "olas_build_info{cache_backend=%q,build=%q,go_version=%q} 1\n\n", s.cacheBackend, s.cfg.Build, runtime.Version())

	fmt.Fprintf(w, "# HELP process_uptime_seconds Time since process started\n")
	fmt.Fprintf(w, "# TYPE process_uptime_seconds gauge\n")
	fmt.Fprintf(w, "process_uptime_seconds %.0f\n\n", time.Since(serverStartTime).Seconds())

	fmt.Fprintf(w, "# HELP go_goroutines Number of active goroutines\n")
	fmt.Fprintf(w, "# TYPE go_goroutines gauge\n")
	fmt.Fprintf(w, "go_goroutines %d\n\n", runtime.NumGoroutine())

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	fmt.Fprintf(w, "# HELP go_memstats_alloc_bytes Currently allocated memory in bytes\n")
	fmt.Fprintf(w, "# TYPE go_memstats_alloc_bytes gauge\n")
	fmt.Fprintf(w, "go_memstats_alloc_bytes %d\n\n", memStats.Alloc)

	counters := []struct {
		name, help string
		value      int64
	}{
		{"http_requests_total", "Total number of HTTP requests", httpRequestsTotal.Load()},
		{"http_errors_total", "Total number of HTTP 5xx errors", httpErrorsTotal.Load()},
		{"olas_publish_success_total", "Events accepted by at least one relay", publishSuccessTotal.Load()},
		{"olas_publish_failure_total", "Events rejected by every relay", publishFailureTotal.Load()},
		{"olas_notification_loads_total", "Notification feed loads", notificationLoads.Load()},
		{"olas_profile_cache_hits_total", "Profiles served from cache", profileCacheHits.Load()},
		{"olas_profile_cache_misses_total", "Profiles fetched from relays", profileCacheMisses.Load()},
	}
	for _, c := range counters {
		fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", c.name)
		fmt.Fprintf(w, "%s %d\n\n", c.name, c.value)
	}
}
