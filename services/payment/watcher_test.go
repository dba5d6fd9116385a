package payment

import (
	"errors"
	"sync"
	"testing"
	"time"

	"evcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

type terminalRecorder struct {
	mu       sync.Mutex
	statuses []string
}

func (r *terminalRecorder) record(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *terminalRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...)
}

func TestWatcherStopsOnTerminalStatus(t *testing.T) {
	m := NewWatcherManager()
	m.PollInterval = 10 * time.Millisecond

	rec := &terminalRecorder{}
	p := models.Payment{
		PaymentID: "pay-1",
		OrderCode: 1,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.Watch(p, func() (string, error) { return models.PaymentStatusPaid, nil }, rec.record)

	waitFor(t, time.Second, func() bool { return !m.Watching("pay-1") })
	require.Equal(t, []string{models.PaymentStatusPaid}, rec.all(), "terminal handler runs exactly once")
}

func TestWatcherKeepsPollingThroughFetchErrors(t *testing.T) {
	m := NewWatcherManager()
	m.PollInterval = 10 * time.Millisecond

	rec := &terminalRecorder{}
	var mu sync.Mutex
	calls := 0

	fetch := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			return "", errors.New("gateway unavailable")
		}
		return models.PaymentStatusCancelled, nil
	}

	m.Watch(models.Payment{
		PaymentID: "pay-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}, fetch, rec.record)

	waitFor(t, time.Second, func() bool { return !m.Watching("pay-2") })
	assert.Equal(t, []string{models.PaymentStatusCancelled}, rec.all())
}

func TestWatcherExpiresLocally(t *testing.T) {
	m := NewWatcherManager()
	m.PollInterval = time.Hour // never ticks before expiry

	rec := &terminalRecorder{}
	m.Watch(models.Payment{
		PaymentID: "pay-3",
		ExpiresAt: time.Now().Add(30 * time.Millisecond),
	}, func() (string, error) { return models.PaymentStatusPending, nil }, rec.record)

	waitFor(t, time.Second, func() bool { return !m.Watching("pay-3") })
	assert.Equal(t, []string{models.PaymentStatusExpired}, rec.all())
}

func TestWatchIsIdempotentPerPayment(t *testing.T) {
	m := NewWatcherManager()
	m.PollInterval = time.Hour

	p := models.Payment{PaymentID: "pay-4", ExpiresAt: time.Now().Add(time.Hour)}
	noop := func(string) {}
	fetch := func() (string, error) { return models.PaymentStatusPending, nil }

	m.Watch(p, fetch, noop)
	m.Watch(p, fetch, noop)
	assert.True(t, m.Watching("pay-4"))

	m.Stop("pay-4")
	waitFor(t, time.Second, func() bool { return !m.Watching("pay-4") })
}

func TestStopAll(t *testing.T) {
	m := NewWatcherManager()
	m.PollInterval = time.Hour

	noop := func(string) {}
	fetch := func() (string, error) { return models.PaymentStatusPending, nil }
	m.Watch(models.Payment{PaymentID: "a", ExpiresAt: time.Now().Add(time.Hour)}, fetch, noop)
	m.Watch(models.Payment{PaymentID: "b", ExpiresAt: time.Now().Add(time.Hour)}, fetch, noop)

	m.StopAll()
	assert.False(t, m.Watching("a"))
	assert.False(t, m.Watching("b"))
}
