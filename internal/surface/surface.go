package surface

import (
	"sync"

	"github.com/google/uuid"
)

// Surface is an event target that pointer events are dispatched on.
type Surface struct {
	mu   sync.Mutex
	name string

	listeners map[Kind][]*subscription

	dragStartSuppressed bool
}

// New creates an empty surface with the given name.
func New(name string) *Surface {
	return &Surface{
		name:      name,
		listeners: make(map[Kind][]*subscription),
	}
}

var (
	globalSurface     *Surface
	globalSurfaceOnce sync.Once
)

// Global returns the process-wide ambient surface.
func Global() *Surface {
	globalSurfaceOnce.Do(func() {
		globalSurface = New("global")
	})
	return globalSurface
}

// Name returns the surface name.
func (s *Surface) Name() string {
	return s.name
}

// AddListener subscribes h to events of the given kind.
func (s *Surface) AddListener(kind Kind, h Handler, opts ...Option) Subscription {
	sub := &subscription{
		id:      uuid.New().String(),
		kind:    kind,
		handler: h,
		owner:   s,
	}
	for _, opt := range opts {
		opt(&sub.opts)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[kind] = append(s.listeners[kind], sub)
	return sub
}

// RemoveListener cancels sub. Subscriptions from other surfaces and nil are
// ignored.
func (s *Surface) RemoveListener(sub Subscription) {
	if sub == nil {
		return
	}
	if ss, ok := sub.(*subscription); ok && ss.owner == s {
		ss.Cancel()
	}
}

// remove drops sub from the listener list.
func (s *Surface) remove(sub *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.listeners[sub.kind]
	for i, existing := range list {
		if existing == sub {
			// Copy so that in-flight dispatch snapshots stay intact.
			next := make([]*subscription, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			s.listeners[sub.kind] = next
			return
		}
	}
}

// ListenerCount returns the number of active listeners for kind.
func (s *Surface) ListenerCount(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[kind])
}

// SuppressDragStart controls whether the surface's native drag gesture is
// blocked. While suppressed, every drag-start dispatch is default-prevented.
func (s *Surface) SuppressDragStart(suppress bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragStartSuppressed = suppress
}

// DragStartSuppressed reports whether native drag gestures are blocked.
func (s *Surface) DragStartSuppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragStartSuppressed
}

// Dispatch delivers ev to every listener subscribed to ev.Kind at the time of
// the call. Listeners added during dispatch do not see ev; listeners
// cancelled during dispatch are skipped. Handler panics are not recovered.
//
// Dispatch returns false if the default action was prevented.
func (s *Surface) Dispatch(ev *Event) bool {
	s.mu.Lock()
	snapshot := s.listeners[ev.Kind]
	if ev.Kind == KindDragStart && s.dragStartSuppressed {
		ev.defaultPrevented = true
	}
	s.mu.Unlock()

	for _, sub := range snapshot {
		if sub.opts.once {
			if sub.cancelled.Swap(true) {
				continue
			}
			s.remove(sub)
		} else if !sub.IsActive() {
			continue
		}

		ev.passive = sub.opts.passive
		sub.handler(ev)
		ev.passive = false
	}

	return !ev.defaultPrevented
}
