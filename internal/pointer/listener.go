package pointer

// UpFunc is called once when a pressed state is released.
type UpFunc func()

// DownFunc is called when a state becomes pressed. The returned UpFunc, if
// non-nil, is called when the state is released.
type DownFunc func(ev Event) UpFunc

// MoveFunc receives movement and drag events.
type MoveFunc func(ev Event)

// StateListener is a registration handle for a DownFunc. Listeners are
// identified by handle, so two handles wrapping the same function are
// distinct.
type StateListener struct {
	onDown DownFunc
}

// NewStateListener wraps fn in a registration handle.
func NewStateListener(fn DownFunc) *StateListener {
	return &StateListener{onDown: fn}
}

// MoveListener is a registration handle for a MoveFunc.
type MoveListener struct {
	fn MoveFunc
}

// NewMoveListener wraps fn in a registration handle.
func NewMoveListener(fn MoveFunc) *MoveListener {
	return &MoveListener{fn: fn}
}

// stateEntry pairs a listener with the up function returned by its last
// down call. The slot is overwritten on every down dispatch.
type stateEntry struct {
	listener *StateListener
	onUp     UpFunc
}

// stateListeners is the ordered registry for one category.
type stateListeners struct {
	entries []*stateEntry
}

func (r *stateListeners) add(l *StateListener) {
	r.entries = append(r.entries, &stateEntry{listener: l})
}

// remove drops the first entry registered with l.
func (r *stateListeners) remove(l *StateListener) {
	for i, e := range r.entries {
		if e.listener == l {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *stateListeners) clear() {
	r.entries = nil
}

func (r *stateListeners) len() int {
	return len(r.entries)
}

// down calls every down function and stores the returned up functions.
func (r *stateListeners) down(ev Event) {
	for _, e := range r.entries {
		if e.listener.onDown == nil {
			e.onUp = nil
			continue
		}
		e.onUp = e.listener.onDown(ev)
	}
}

// up calls every stored up function.
func (r *stateListeners) up() {
	for _, e := range r.entries {
		if e.onUp != nil {
			e.onUp()
		}
	}
}

// moveListeners is an ordered list of movement callbacks.
type moveListeners struct {
	list []*MoveListener
}

func (r *moveListeners) add(l *MoveListener) {
	r.list = append(r.list, l)
}

// remove drops the first occurrence of l.
func (r *moveListeners) remove(l *MoveListener) {
	for i, existing := range r.list {
		if existing == l {
			r.list = append(r.list[:i:i], r.list[i+1:]...)
			return
		}
	}
}

func (r *moveListeners) clear() {
	r.list = nil
}

func (r *moveListeners) len() int {
	return len(r.list)
}

func (r *moveListeners) notify(ev Event) {
	for _, l := range r.list {
		if l.fn != nil {
			l.fn(ev)
		}
	}
}
