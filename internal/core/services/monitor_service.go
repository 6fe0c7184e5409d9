package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// checkTimeout bounds one scheduled connection check
const checkTimeout = 10 * time.Second

// ConnectionMonitor periodically retries the store connection and pings it,
// so the status endpoints recover without waiting for client traffic
type ConnectionMonitor struct {
	conn     ConnectionManager
	schedule string
	cron     *cron.Cron
}

// NewConnectionMonitor creates a monitor; an empty schedule disables it
func NewConnectionMonitor(conn ConnectionManager, schedule string) *ConnectionMonitor {
	return &ConnectionMonitor{
		conn:     conn,
		schedule: schedule,
	}
}

// Start registers the check job and starts the scheduler
func (m *ConnectionMonitor) Start() error {
	if m.schedule == "" {
		logrus.Info("⏸️ Store connection monitor disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(m.schedule, func() { m.Check(context.Background()) }); err != nil {
		return err
	}
	c.Start()
	m.cron = c

	logrus.WithField("schedule", m.schedule).Info("🚀 Store connection monitor started")
	return nil
}

// Stop waits for a running check to finish
func (m *ConnectionMonitor) Stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
	logrus.Info("🛑 Store connection monitor stopped")
}

// Check connects if needed and pings the store. It reports whether the
// store answered.
func (m *ConnectionMonitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := m.conn.EnsureConnected(ctx); err != nil {
		logrus.WithError(err).Warn("⚠️ Store check: still not connected")
		return false
	}

	store, err := m.conn.Store()
	if err != nil {
		logrus.WithError(err).Warn("⚠️ Store check: no store handle")
		return false
	}

	if err := store.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("⚠️ Store check: ping failed")
		return false
	}

	logrus.Debug("💓 Store check ok")
	return true
}
