package toast

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/resumedash/internal/metrics"
)

// Type is the visual category of a toast.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

// DefaultDuration is how long a toast stays before it is removed automatically.
const DefaultDuration = 5000 * time.Millisecond

// Toast is a transient user-facing message.
type Toast struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventKind tells subscribers whether a toast appeared or went away.
type EventKind string

const (
	EventShow EventKind = "show"
	EventHide EventKind = "hide"
)

type Event struct {
	Kind  EventKind `json:"kind"`
	Toast Toast     `json:"toast"`
}

// Notifier keeps the ordered list of visible toasts. Ids come from a counter
// scoped to the notifier and start at 1.
type Notifier struct {
	nextID   atomic.Int64
	duration time.Duration

	mu      sync.Mutex
	toasts  []Toast
	timers  map[int64]*time.Timer
	subs    map[int]chan Event
	nextSub int
	closed  bool
}

type Option func(*Notifier)

// WithDuration overrides the auto-expiry delay.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		duration: DefaultDuration,
		timers:   make(map[int64]*time.Timer),
		subs:     make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show appends a toast and schedules its removal.
func (n *Notifier) Show(message string, t Type) Toast {
	if t == "" {
		t = Info
	}
	toast := Toast{
		ID:        n.nextID.Add(1),
		Message:   strings.TrimSpace(message),
		Type:      t,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return toast
	}
	n.toasts = append(n.toasts, toast)
	id := toast.ID
	n.timers[id] = time.AfterFunc(n.duration, func() { n.Hide(id) })
	n.broadcastLocked(Event{Kind: EventShow, Toast: toast})
	n.mu.Unlock()

	metrics.IncrementToast(string(t))
	return toast
}

// Hide removes a toast. Unknown or already removed ids are ignored.
func (n *Notifier) Hide(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	for i, toast := range n.toasts {
		if toast.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			n.broadcastLocked(Event{Kind: EventHide, Toast: toast})
			return
		}
	}
}

// List returns the visible toasts in the order they were shown.
func (n *Notifier) List() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Subscribe streams show and hide events until cancel is called. Slow
// subscribers miss events rather than block the notifier.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Event, 32)
	if n.closed {
		close(ch)
		return ch, func() {}
	}
	id := n.nextSub
	n.nextSub++
	n.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if sub, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops pending expiry timers and ends every subscription.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	for id, sub := range n.subs {
		delete(n.subs, id)
		close(sub)
	}
	n.toasts = nil
}

func (n *Notifier) broadcastLocked(evt Event) {
	for _, sub := range n.subs {
		select {
		case sub <- evt:
		default:
		}
	}
}
