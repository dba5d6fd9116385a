package payment

import (
	"context"
	"sync"
	"time"

	"evcare/models"
	"evcare/utils"

	"go.uber.org/zap"
)

const defaultPollInterval = 5 * time.Second

// WatcherManager owns one polling goroutine per pending payment. Each
// watcher ticks the gateway every poll interval and holds a timer at the
// payment's expiry; both are torn down together on any exit path, so no
// timer outlives its payment.
type WatcherManager struct {
	mu           sync.Mutex
	cancels      map[string]context.CancelFunc
	PollInterval time.Duration
}

// NewWatcherManager creates a manager with the default 5-second poll.
func NewWatcherManager() *WatcherManager {
	return &WatcherManager{
		cancels:      make(map[string]context.CancelFunc),
		PollInterval: defaultPollInterval,
	}
}

// Watch starts polling the payment until a terminal status is observed, the
// payment expires locally, or Stop is called. fetch returns the current
// normalized status; onTerminal runs exactly once per watcher even if a late
// poll resolves after the terminal status was already handled.
func (m *WatcherManager) Watch(payment models.Payment, fetch func() (string, error), onTerminal func(status string)) {
	m.mu.Lock()
	if _, exists := m.cancels[payment.PaymentID]; exists {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancels[payment.PaymentID] = cancel
	m.mu.Unlock()

	go m.run(ctx, payment, fetch, onTerminal)
}

func (m *WatcherManager) run(ctx context.Context, payment models.Payment, fetch func() (string, error), onTerminal func(status string)) {
	defer m.Stop(payment.PaymentID)

	logger := utils.GetLogger()
	ticker := time.NewTicker(m.PollInterval)
	defer ticker.Stop()

	expiry := time.NewTimer(time.Until(payment.ExpiresAt))
	defer expiry.Stop()

	handled := false
	finish := func(status string) {
		if handled {
			return
		}
		handled = true
		onTerminal(status)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-expiry.C:
			// Local expiry: stop polling without waiting for the gateway.
			logger.Info("Payment expired locally",
				zap.String("paymentID", payment.PaymentID),
				zap.Int64("orderCode", payment.OrderCode))
			finish(models.PaymentStatusExpired)
			return
		case <-ticker.C:
			status, err := fetch()
			if err != nil {
				// Transient gateway failure: keep polling.
				logger.Warn("Payment status poll failed",
					zap.String("paymentID", payment.PaymentID), zap.Error(err))
				continue
			}
			if models.IsTerminalPaymentStatus(status) {
				finish(status)
				return
			}
		}
	}
}

// Stop cancels the watcher for a payment, if one is running.
func (m *WatcherManager) Stop(paymentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.cancels[paymentID]; ok {
		cancel()
		delete(m.cancels, paymentID)
	}
}

// StopAll cancels every running watcher. Used on shutdown.
func (m *WatcherManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, cancel := range m.cancels {
		cancel()
		delete(m.cancels, id)
	}
}

// Watching reports whether a watcher is running for the payment.
func (m *WatcherManager) Watching(paymentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cancels[paymentID]
	return ok
}
