package surface

import "sync/atomic"

// Subscription is a registered listener on a Surface.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Kind returns the event kind the subscription listens for.
	Kind() Kind

	// IsActive returns true if the subscription can still receive events.
	IsActive() bool

	// Cancel permanently removes the subscription. Safe to call repeatedly.
	Cancel()
}

// Option configures a subscription.
type Option func(*options)

type options struct {
	once    bool
	passive bool
}

// WithOnce cancels the subscription before its first invocation.
func WithOnce() Option {
	return func(o *options) {
		o.once = true
	}
}

// WithPassive marks the listener as never preventing the default action.
func WithPassive() Option {
	return func(o *options) {
		o.passive = true
	}
}

type subscription struct {
	id      string
	kind    Kind
	handler Handler
	opts    options
	owner   *Surface

	cancelled atomic.Bool
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Kind() Kind {
	return s.kind
}

func (s *subscription) IsActive() bool {
	return !s.cancelled.Load()
}

func (s *subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.owner.remove(s)
}
