package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/adapters/observability"
	"hotelhub/internal/domain"
)

const DefaultNotificationTTL = 4 * time.Second

// NotificationQueue is a process-wide list of toasts. Each entry removes
// itself after ttl. There is no bound and no de-duplication.
type NotificationQueue struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	items  []domain.Notification
	timers map[int64]*time.Timer
	lastID int64
	closed bool
}

func NewNotificationQueue(ttl time.Duration) *NotificationQueue {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &NotificationQueue{
		ttl:    ttl,
		now:    time.Now,
		timers: map[int64]*time.Timer{},
	}
}

// Add enqueues a toast and schedules its expiry. Ids are millisecond
// timestamps, bumped when two adds land in the same millisecond.
func (q *NotificationQueue) Add(kind domain.NotificationKind, message string) domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.Notification{}
	}

	now := q.now()
	id := now.UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	n := domain.Notification{ID: id, Kind: kind, Message: message, CreatedAt: now}
	q.items = append(q.items, n)
	q.timers[id] = time.AfterFunc(q.ttl, func() { q.Remove(id) })

	observability.ObserveNotification(string(kind))
	ev := log.Debug()
	if kind == domain.KindError {
		ev = log.Info()
	}
	ev.Int64("id", id).Str("kind", string(kind)).Str("message", message).Msg("notification")
	return n
}

// List returns the live notifications in insertion order.
func (q *NotificationQueue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Remove drops a notification early. Unknown ids are ignored.
func (q *NotificationQueue) Remove(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = removeWhere(q.items, func(n domain.Notification) bool { return n.ID == id })
}

// Close stops every pending expiry timer. Adds after Close are dropped
// and return the zero Notification.
func (q *NotificationQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.closed = true
}

// AlertBox collects blocking alerts until the UI takes them. Each alert is
// shown once.
type AlertBox struct {
	mu      sync.Mutex
	pending []string
}

func (b *AlertBox) Alert(message string) {
	b.mu.Lock()
	b.pending = append(b.pending, message)
	b.mu.Unlock()
	log.Warn().Str("message", message).Msg("alert")
}

// Take returns and clears the pending alerts.
func (b *AlertBox) Take() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
