// pkg/resource/monitor.go
package resource

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/logging"
)

// Monitor watches process-level resources for the simulation host:
// memory, tracked goroutines and frame pacing. It exists so a runaway
// demo loop degrades loudly instead of silently eating the host.
type Monitor struct {
	maxMemoryMB     int64
	maxGoroutines   int64
	shutdownTimeout time.Duration
	checkInterval   time.Duration
	frameBudget     time.Duration

	goroutineCount int64
	memoryUsageMB  int64
	slowFrames     int64
	totalFrames    int64

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.RWMutex
	running bool
	logger  *logging.Logger

	lastMemoryCheck time.Time
}

// NewMonitor creates a monitor from environment configuration
func NewMonitor(envCfg *config.EnvironmentConfig) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		maxMemoryMB:     envCfg.MaxMemoryMB,
		maxGoroutines:   int64(envCfg.MaxGoroutines),
		shutdownTimeout: envCfg.ShutdownTimeout,
		checkInterval:   envCfg.ResourceCheckInterval,
		frameBudget:     time.Second / time.Duration(envCfg.FrameRate),
		ctx:             ctx,
		cancel:          cancel,
		done:            make(chan struct{}),
		logger:          logging.NewLogger(),
		lastMemoryCheck: time.Now(),
	}
}

// Start begins the periodic resource check loop
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("resource monitor already running")
	}
	m.running = true
	m.mu.Unlock()

	go m.checkLoop()

	m.logger.Info(m.ctx, "resource monitor started",
		"max_memory_mb", m.maxMemoryMB,
		"max_goroutines", m.maxGoroutines,
		"check_interval", m.checkInterval,
		"frame_budget", m.frameBudget,
	)

	return nil
}

// StartGoroutine starts a tracked goroutine, refusing if the limit
// would be exceeded. The goroutine must honor ctx cancellation.
func (m *Monitor) StartGoroutine(ctx context.Context, name string, fn func(context.Context)) error {
	current := atomic.LoadInt64(&m.goroutineCount)
	if current >= m.maxGoroutines {
		m.logger.Warn(ctx, "goroutine limit exceeded",
			"current", current,
			"limit", m.maxGoroutines,
			"name", name,
		)
		return fmt.Errorf("goroutine limit exceeded: %d/%d", current, m.maxGoroutines)
	}

	atomic.AddInt64(&m.goroutineCount, 1)

	go func() {
		defer atomic.AddInt64(&m.goroutineCount, -1)
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error(ctx, "goroutine panic",
					fmt.Errorf("panic: %v", r),
					"name", name,
				)
			}
		}()
		fn(ctx)
	}()

	return nil
}

// RecordFrame notes one completed simulation frame. Frames over the
// configured budget are counted and periodically reported.
func (m *Monitor) RecordFrame(elapsed time.Duration) {
	atomic.AddInt64(&m.totalFrames, 1)
	if elapsed > m.frameBudget {
		slow := atomic.AddInt64(&m.slowFrames, 1)
		if slow%100 == 1 {
			m.logger.Warn(m.ctx, "frame over budget",
				"elapsed", elapsed,
				"budget", m.frameBudget,
				"slow_frames", slow,
			)
		}
	}
}

// CheckMemoryUsage samples the heap and compares it to the limit
func (m *Monitor) CheckMemoryUsage() error {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	currentMB := int64(stats.Alloc / 1024 / 1024)
	atomic.StoreInt64(&m.memoryUsageMB, currentMB)
	m.mu.Lock()
	m.lastMemoryCheck = time.Now()
	m.mu.Unlock()

	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// GoroutineCount returns the number of tracked goroutines
func (m *Monitor) GoroutineCount() int64 {
	return atomic.LoadInt64(&m.goroutineCount)
}

// MemoryUsage returns the last sampled heap size in MB
func (m *Monitor) MemoryUsage() int64 {
	return atomic.LoadInt64(&m.memoryUsageMB)
}

// Stats contains a point-in-time resource usage snapshot
type Stats struct {
	GoroutineCount  int64         `json:"goroutine_count"`
	MaxGoroutines   int64         `json:"max_goroutines"`
	MemoryUsageMB   int64         `json:"memory_usage_mb"`
	MaxMemoryMB     int64         `json:"max_memory_mb"`
	TotalFrames     int64         `json:"total_frames"`
	SlowFrames      int64         `json:"slow_frames"`
	FrameBudget     time.Duration `json:"frame_budget"`
	LastMemoryCheck time.Time     `json:"last_memory_check"`
}

// GetStats returns current resource usage statistics
func (m *Monitor) GetStats() Stats {
	m.mu.RLock()
	lastCheck := m.lastMemoryCheck
	m.mu.RUnlock()

	return Stats{
		GoroutineCount:  m.GoroutineCount(),
		MaxGoroutines:   m.maxGoroutines,
		MemoryUsageMB:   m.MemoryUsage(),
		MaxMemoryMB:     m.maxMemoryMB,
		TotalFrames:     atomic.LoadInt64(&m.totalFrames),
		SlowFrames:      atomic.LoadInt64(&m.slowFrames),
		FrameBudget:     m.frameBudget,
		LastMemoryCheck: lastCheck,
	}
}

// Shutdown stops the check loop and waits for tracked goroutines
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	m.logger.Info(ctx, "shutting down resource monitor")
	m.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, m.shutdownTimeout)
	defer cancel()

	select {
	case <-m.done:
	case <-shutdownCtx.Done():
		m.logger.Warn(ctx, "resource check loop did not stop before timeout")
	}

	return m.waitForGoroutines(shutdownCtx)
}

// waitForGoroutines blocks until tracked goroutines drain or timeout
func (m *Monitor) waitForGoroutines(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		count := m.GoroutineCount()
		if count == 0 {
			m.logger.Info(ctx, "all tracked goroutines finished")
			return nil
		}

		select {
		case <-ticker.C:
			m.logger.Debug(ctx, "waiting for goroutines to finish", "remaining", count)
		case <-ctx.Done():
			remaining := m.GoroutineCount()
			m.logger.Warn(ctx, "shutdown timeout with goroutines still running", "remaining", remaining)
			return fmt.Errorf("shutdown timeout: %d goroutines still running", remaining)
		}
	}
}

// checkLoop runs periodic resource checks until cancelled
func (m *Monitor) checkLoop() {
	defer close(m.done)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.performChecks()
		case <-m.ctx.Done():
			m.logger.Info(m.ctx, "resource check loop stopping")
			return
		}
	}
}

// performChecks executes one round of resource usage checks
func (m *Monitor) performChecks() {
	if err := m.CheckMemoryUsage(); err != nil {
		m.logger.Error(m.ctx, "memory limit exceeded", err,
			"current_mb", m.MemoryUsage(),
			"limit_mb", m.maxMemoryMB,
		)
	}

	m.logger.Debug(m.ctx, "resource usage check",
		"goroutines", m.GoroutineCount(),
		"max_goroutines", m.maxGoroutines,
		"memory_mb", m.MemoryUsage(),
		"max_memory_mb", m.maxMemoryMB,
		"slow_frames", atomic.LoadInt64(&m.slowFrames),
	)
}
