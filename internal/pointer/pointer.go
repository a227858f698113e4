package pointer

import "github.com/dshills/unipointer/internal/surface"

// Source is an event source a Pointer can subscribe to.
type Source interface {
	AddListener(kind surface.Kind, h surface.Handler, opts ...surface.Option) surface.Subscription
}

// Target is the bounded surface a Pointer is bound to.
type Target interface {
	Source
	SuppressDragStart(suppress bool)
}

// Option configures a Pointer.
type Option func(*Pointer)

// WithAmbient sets the ambient source used for drag tracking.
// Defaults to surface.Global().
func WithAmbient(src Source) Option {
	return func(p *Pointer) {
		p.ambient = src
	}
}

// Pointer tracks the pressed state of a single logical pointer bound to a
// target and dispatches state, movement and drag notifications.
type Pointer struct {
	target  Target
	ambient Source

	flags flagSet

	state    [len(categories)]stateListeners
	movement moveListeners
	drags    moveListeners

	drag dragSession

	subs []surface.Subscription
}

// New binds a Pointer to target.
func New(target Target, opts ...Option) *Pointer {
	p := &Pointer{target: target}
	for _, opt := range opts {
		opt(p)
	}
	if p.ambient == nil {
		p.ambient = surface.Global()
	}

	p.subs = append(p.subs,
		target.AddListener(surface.KindDown, p.handleDown),
		target.AddListener(surface.KindMove, p.handleMove),
		p.ambient.AddListener(surface.KindMove, preventDefault),
	)
	target.SuppressDragStart(true)

	return p
}

func preventDefault(ev *surface.Event) {
	ev.PreventDefault()
}

// Close detaches the pointer from its target and ambient sources and ends
// any drag in progress. Listener registrations are kept.
func (p *Pointer) Close() {
	for _, sub := range p.subs {
		sub.Cancel()
	}
	p.subs = nil
	p.drag.cancel()
	p.target.SuppressDragStart(false)
}

// Target returns the surface the pointer is bound to.
func (p *Pointer) Target() Target {
	return p.target
}

// Ambient returns the ambient source used for drag tracking.
func (p *Pointer) Ambient() Source {
	return p.ambient
}

// PrimaryPressed reports whether the left mouse button, pen contact or a
// touch contact is held.
func (p *Pointer) PrimaryPressed() bool {
	return p.flags.primary()
}

// MiddlePressed reports whether the middle mouse button is held.
func (p *Pointer) MiddlePressed() bool {
	return p.flags.middle()
}

// AuxiliaryPressed reports whether the right mouse button, pen barrel or
// pen eraser is held.
func (p *Pointer) AuxiliaryPressed() bool {
	return p.flags.auxiliary()
}

// Pressed reports the state of category c.
func (p *Pointer) Pressed(c Category) bool {
	return p.flags.pressed(c)
}

// Dragging reports whether a drag session is active.
func (p *Pointer) Dragging() bool {
	return p.drag.active()
}

// handleStateChange applies a down or up event and notifies listeners of
// every category whose state changed.
func (p *Pointer) handleStateChange(ev Event, down bool) {
	before := p.flags.snapshot()
	p.flags.apply(ev.Device, ev.Button, down)
	after := p.flags.snapshot()

	for _, c := range categories {
		if before[c] == after[c] {
			continue
		}
		if down {
			p.state[c].down(ev)
		} else {
			p.state[c].up()
		}
	}
}

func (p *Pointer) handleDown(raw *surface.Event) {
	p.handleStateChange(FromRaw(raw), true)
	p.drag.start(p)
}

func (p *Pointer) handleUp(raw *surface.Event) {
	p.handleStateChange(FromRaw(raw), false)
	p.drag.release(p)
}

func (p *Pointer) handleMove(raw *surface.Event) {
	p.movement.notify(FromRaw(raw))
}

func (p *Pointer) handleDrag(raw *surface.Event) {
	p.drags.notify(FromRaw(raw))
}

// AddStateListener registers l for category c. Registering the same handle
// twice creates two independent entries.
func (p *Pointer) AddStateListener(c Category, l *StateListener) {
	if int(c) >= len(p.state) {
		return
	}
	p.state[c].add(l)
}

// RemoveStateListener removes the earliest registration of l for c.
func (p *Pointer) RemoveStateListener(c Category, l *StateListener) {
	if int(c) >= len(p.state) {
		return
	}
	p.state[c].remove(l)
}

// ClearStateListeners removes every listener for c.
func (p *Pointer) ClearStateListeners(c Category) {
	if int(c) >= len(p.state) {
		return
	}
	p.state[c].clear()
}

// StateListenerCount returns the number of registrations for c.
func (p *Pointer) StateListenerCount(c Category) int {
	if int(c) >= len(p.state) {
		return 0
	}
	return p.state[c].len()
}

// AddPrimaryStateListener registers l for the primary state.
func (p *Pointer) AddPrimaryStateListener(l *StateListener) {
	p.AddStateListener(Primary, l)
}

// RemovePrimaryStateListener removes the earliest primary registration of l.
func (p *Pointer) RemovePrimaryStateListener(l *StateListener) {
	p.RemoveStateListener(Primary, l)
}

// ClearPrimaryStateListeners removes every primary state listener.
func (p *Pointer) ClearPrimaryStateListeners() {
	p.ClearStateListeners(Primary)
}

// AddMiddleStateListener registers l for the middle state.
func (p *Pointer) AddMiddleStateListener(l *StateListener) {
	p.AddStateListener(Middle, l)
}

// RemoveMiddleStateListener removes the earliest middle registration of l.
func (p *Pointer) RemoveMiddleStateListener(l *StateListener) {
	p.RemoveStateListener(Middle, l)
}

// ClearMiddleStateListeners removes every middle state listener.
func (p *Pointer) ClearMiddleStateListeners() {
	p.ClearStateListeners(Middle)
}

// AddAuxiliaryStateListener registers l for the auxiliary state.
func (p *Pointer) AddAuxiliaryStateListener(l *StateListener) {
	p.AddStateListener(Auxiliary, l)
}

// RemoveAuxiliaryStateListener removes the earliest auxiliary registration of l.
func (p *Pointer) RemoveAuxiliaryStateListener(l *StateListener) {
	p.RemoveStateListener(Auxiliary, l)
}

// ClearAuxiliaryStateListeners removes every auxiliary state listener.
func (p *Pointer) ClearAuxiliaryStateListeners() {
	p.ClearStateListeners(Auxiliary)
}

// AddMovementListener registers l for moves on the target.
func (p *Pointer) AddMovementListener(l *MoveListener) {
	p.movement.add(l)
}

// RemoveMovementListener removes the earliest registration of l.
func (p *Pointer) RemoveMovementListener(l *MoveListener) {
	p.movement.remove(l)
}

// ClearMovementListeners removes every movement listener.
func (p *Pointer) ClearMovementListeners() {
	p.movement.clear()
}

// MovementListenerCount returns the number of movement registrations.
func (p *Pointer) MovementListenerCount() int {
	return p.movement.len()
}

// AddDragListener registers l for moves during a drag.
func (p *Pointer) AddDragListener(l *MoveListener) {
	p.drags.add(l)
}

// RemoveDragListener removes the earliest registration of l.
func (p *Pointer) RemoveDragListener(l *MoveListener) {
	p.drags.remove(l)
}

// ClearDragListeners removes every drag listener.
func (p *Pointer) ClearDragListeners() {
	p.drags.clear()
}

// DragListenerCount returns the number of drag registrations.
func (p *Pointer) DragListenerCount() int {
	return p.drags.len()
}

// ClearListeners removes all state, movement and drag listeners.
func (p *Pointer) ClearListeners() {
	p.ClearPrimaryStateListeners()
	p.ClearMiddleStateListeners()
	p.ClearAuxiliaryStateListeners()
	p.ClearMovementListeners()
	p.ClearDragListeners()
}
