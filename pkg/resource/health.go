// pkg/resource/health.go
package resource

import (
	"context"
	"fmt"
)

// HealthCheck reports whether resource usage is within limits
type HealthCheck struct {
	monitor *Monitor
}

// NewHealthCheck creates a health check backed by the given monitor
func NewHealthCheck(monitor *Monitor) *HealthCheck {
	return &HealthCheck{monitor: monitor}
}

// Name returns the name of this health check
func (h *HealthCheck) Name() string {
	return "resource"
}

// Check verifies memory, goroutine and frame-pacing health
func (h *HealthCheck) Check(ctx context.Context) error {
	stats := h.monitor.GetStats()

	if stats.MemoryUsageMB > stats.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB",
			stats.MemoryUsageMB, stats.MaxMemoryMB)
	}

	// Warn at 80% of the goroutine limit
	goroutineThreshold := int64(float64(stats.MaxGoroutines) * 0.8)
	if stats.GoroutineCount > goroutineThreshold {
		return fmt.Errorf("goroutine count %d exceeds 80%% threshold (%d/%d)",
			stats.GoroutineCount, goroutineThreshold, stats.MaxGoroutines)
	}

	// More than a quarter of frames over budget means the loop cannot
	// keep up with the configured rate
	if stats.TotalFrames > 100 && stats.SlowFrames*4 > stats.TotalFrames {
		return fmt.Errorf("frame pacing degraded: %d of %d frames over budget",
			stats.SlowFrames, stats.TotalFrames)
	}

	return nil
}
