package editor

// Chord is a key code with an optional Ctrl (or Cmd) modifier.
type Chord struct {
	Key  int
	Ctrl bool
}

// Keymap routes key presses to actions. Key codes are opaque here; the
// window layer supplies them.
type Keymap struct {
	bindings map[Chord]func()
}

func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[Chord]func())}
}

// Bind replaces any action already bound to the chord.
func (k *Keymap) Bind(key int, ctrl bool, fn func()) {
	k.bindings[Chord{Key: key, Ctrl: ctrl}] = fn
}

// Dispatch runs the action bound to the chord and reports whether one was
// found.
func (k *Keymap) Dispatch(key int, ctrl bool) bool {
	fn, ok := k.bindings[Chord{Key: key, Ctrl: ctrl}]
	if !ok {
		return false
	}
	fn()
	return true
}
