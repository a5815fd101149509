package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

// Monitor polls the brain API health endpoint on a fixed interval and keeps
// the latest snapshot for the page header. Pull-only; the backend offers no
// push channel.
type Monitor struct {
	client   *brainapi.Client
	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	latest *models.Health
}

// NewMonitor builds the monitor; it does not start polling.
func NewMonitor(client *brainapi.Client, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately so the
// header is populated on startup.
func (m *Monitor) Run(ctx context.Context) {
	m.poll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Monitor) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	h, err := m.client.Health(pollCtx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Warn("health poll failed", zap.Error(err))
		}
		m.latest = nil
		return
	}
	m.latest = &h
}

// Latest returns the most recent health report, if one is available.
func (m *Monitor) Latest() (models.Health, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return models.Health{}, false
	}
	return *m.latest, true
}
