// Package notify holds the transient toast queue consumed by the display
// layer, either polled over HTTP or streamed over the websocket.
package notify

import (
	"sync"
	"time"

	"github.com/essience-store/storefront-api/models"
)

const (
	// DefaultDuration is how long a toast stays visible unless dismissed.
	DefaultDuration = 3 * time.Second

	// dedupWindow suppresses a second toast with an identical message fired
	// within this span, guarding against double-clicks and re-renders.
	dedupWindow = 500 * time.Millisecond
)

type expiry struct {
	id int64
	at time.Time
}

// Notifier is a fire-and-forget toast emitter. One timer serves all pending
// expirations, so a burst of notifications never piles up goroutines.
type Notifier struct {
	mu       sync.Mutex
	toasts   []models.Toast
	expiries []expiry
	timer    *time.Timer
	lastID   int64

	subs    map[int64]chan models.Toast
	nextSub int64
}

func New() *Notifier {
	return &Notifier{subs: make(map[int64]chan models.Toast)}
}

// Show appends a toast with the default duration. Satisfies store.Notifier.
func (n *Notifier) Show(message string, kind models.ToastKind) {
	n.ShowFor(message, kind, DefaultDuration)
}

// ShowFor appends a toast that auto-dismisses after d. Returns the toast id,
// or 0 when the toast was suppressed as a duplicate. Toast ids are
// millisecond timestamps, bumped when two land in the same millisecond.
func (n *Notifier) ShowFor(message string, kind models.ToastKind, d time.Duration) int64 {
	n.mu.Lock()

	id := time.Now().UnixMilli()
	if id <= n.lastID {
		id = n.lastID + 1
	}

	for _, t := range n.toasts {
		if t.Message == message && id-t.ID < dedupWindow.Milliseconds() {
			n.mu.Unlock()
			return 0
		}
	}

	n.lastID = id
	toast := models.Toast{ID: id, Message: message, Kind: kind}
	n.toasts = append(n.toasts, toast)
	n.addExpiry(expiry{id: id, at: time.Now().Add(d)})

	subs := make([]chan models.Toast, 0, len(n.subs))
	for _, ch := range n.subs {
		subs = append(subs, ch)
	}
	n.mu.Unlock()

	// Slow websocket consumers are skipped, not waited on.
	for _, ch := range subs {
		select {
		case ch <- toast:
		default:
		}
	}
	return id
}

// Dismiss removes the toast immediately. The scheduled expiration firing
// later on an already-removed id is a no-op.
func (n *Notifier) Dismiss(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removeLocked(id)
}

// Active returns the currently visible toasts in show order.
func (n *Notifier) Active() []models.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Toast(nil), n.toasts...)
}

// Subscribe registers a live toast feed. The returned cancel func must be
// called when the consumer goes away.
func (n *Notifier) Subscribe() (<-chan models.Toast, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextSub
	n.nextSub++
	ch := make(chan models.Toast, 16)
	n.subs[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// addExpiry inserts sorted by deadline and re-arms the shared timer if the
// head changed. Caller holds the lock.
func (n *Notifier) addExpiry(e expiry) {
	i := len(n.expiries)
	for i > 0 && n.expiries[i-1].at.After(e.at) {
		i--
	}
	n.expiries = append(n.expiries, expiry{})
	copy(n.expiries[i+1:], n.expiries[i:])
	n.expiries[i] = e

	if i == 0 {
		n.schedule()
	}
}

// schedule arms the timer for the earliest pending expiration. Caller holds
// the lock.
func (n *Notifier) schedule() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	if len(n.expiries) == 0 {
		return
	}
	n.timer = time.AfterFunc(time.Until(n.expiries[0].at), n.expire)
}

func (n *Notifier) expire() {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := time.Now()
	for len(n.expiries) > 0 && !n.expiries[0].at.After(now) {
		n.removeLocked(n.expiries[0].id)
		n.expiries = n.expiries[1:]
	}
	n.schedule()
}

func (n *Notifier) removeLocked(id int64) {
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}
