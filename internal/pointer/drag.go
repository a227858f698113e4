package pointer

import "github.com/dshills/unipointer/internal/surface"

// dragSession forwards ambient moves to drag listeners from a down on the
// target until every contact has been released.
type dragSession struct {
	// forward is the ambient move subscription; nil while idle.
	forward surface.Subscription

	// up is the armed one-shot ambient up subscription; nil when none.
	up surface.Subscription
}

func (d *dragSession) active() bool {
	return d.forward != nil
}

// start arms the ambient up and begins forwarding moves. Neither is
// duplicated by repeated downs.
func (d *dragSession) start(p *Pointer) {
	d.arm(p)
	if d.forward == nil {
		d.forward = p.ambient.AddListener(surface.KindMove, p.handleDrag)
	}
}

// arm registers the one-shot ambient up unless one is already pending.
func (d *dragSession) arm(p *Pointer) {
	if d.up != nil {
		return
	}
	d.up = p.ambient.AddListener(surface.KindUp, func(ev *surface.Event) {
		d.up = nil
		p.handleUp(ev)
	}, surface.WithOnce())
}

// release is called after an ambient up has been applied. While any
// contact is still held the session stays open and the up is re-armed.
func (d *dragSession) release(p *Pointer) {
	if p.flags.any() {
		d.arm(p)
		return
	}
	d.stop()
}

// stop ends forwarding.
func (d *dragSession) stop() {
	if d.forward == nil {
		return
	}
	d.forward.Cancel()
	d.forward = nil
}

// cancel removes forwarding and the pending up subscription.
func (d *dragSession) cancel() {
	d.stop()
	if d.up != nil {
		d.up.Cancel()
		d.up = nil
	}
}
