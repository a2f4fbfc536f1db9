package toast

import (
	"sync"
	"time"
)

// Registry hands out one notifier per admin session so toasts reach the
// browser that triggered them.
type Registry struct {
	opts []Option

	mu        sync.Mutex
	notifiers map[string]*entry
	now       func() time.Time
}

type entry struct {
	notifier *Notifier
	lastUsed time.Time
}

func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:      opts,
		notifiers: make(map[string]*entry),
		now:       time.Now,
	}
}

// For returns the notifier for key, creating it on first use.
func (r *Registry) For(key string) *Notifier {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.notifiers[key]
	if !ok {
		e = &entry{notifier: NewNotifier(r.opts...)}
		r.notifiers[key] = e
	}
	e.lastUsed = r.now()
	return e.notifier
}

// Drop closes and forgets the notifier for key.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	e, ok := r.notifiers[key]
	delete(r.notifiers, key)
	r.mu.Unlock()

	if ok {
		e.notifier.Close()
	}
}

// Prune drops notifiers unused for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Prune(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*Notifier
	for key, e := range r.notifiers {
		if e.lastUsed.Before(cutoff) {
			stale = append(stale, e.notifier)
			delete(r.notifiers, key)
		}
	}
	r.mu.Unlock()

	for _, n := range stale {
		n.Close()
	}
	return len(stale)
}

// Len reports how many sessions currently hold a notifier.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifiers)
}
