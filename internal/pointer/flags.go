package pointer

// flagSet holds one flag per recognised (device, button) pair.
type flagSet struct {
	leftMouse   bool
	middleMouse bool
	rightMouse  bool
	penContact  bool
	penBarrel   bool
	penEraser   bool
	touch       bool
}

// apply sets the flag selected by device and button. Touch has a single
// contact, so every touch button code maps to it. Unrecognised pairs are
// ignored.
func (f *flagSet) apply(device DeviceType, button Button, pressed bool) {
	switch device {
	case DeviceMouse:
		switch button {
		case LeftMouse:
			f.leftMouse = pressed
		case MiddleMouse:
			f.middleMouse = pressed
		case RightMouse:
			f.rightMouse = pressed
		}
	case DevicePen:
		switch button {
		case PenContact:
			f.penContact = pressed
		case PenBarrel:
			f.penBarrel = pressed
		case PenEraser:
			f.penEraser = pressed
		}
	case DeviceTouch:
		f.touch = pressed
	}
}

// any reports whether any contact is held.
func (f *flagSet) any() bool {
	return f.primary() || f.middle() || f.auxiliary()
}

func (f *flagSet) primary() bool {
	return f.leftMouse || f.penContact || f.touch
}

func (f *flagSet) middle() bool {
	return f.middleMouse
}

func (f *flagSet) auxiliary() bool {
	return f.rightMouse || f.penBarrel || f.penEraser
}

// pressed returns the derived state for c.
func (f *flagSet) pressed(c Category) bool {
	switch c {
	case Primary:
		return f.primary()
	case Middle:
		return f.middle()
	case Auxiliary:
		return f.auxiliary()
	default:
		return false
	}
}

// snapshot returns all derived states indexed by Category.
func (f *flagSet) snapshot() [len(categories)]bool {
	var s [len(categories)]bool
	for _, c := range categories {
		s[c] = f.pressed(c)
	}
	return s
}
