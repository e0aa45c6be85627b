package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"scroll-scene/core"
)

var ErrUnknownControl = errors.New("unknown control")

// Shortcuts are the key codes for the built-in panel actions.
type Shortcuts struct {
	HueDown, HueUp int
	Reset          int
	Undo, Redo     int // with Ctrl
}

// Editor applies panel edits from the keyboard and from background sources
// with undo support. Background sources only enqueue; Update applies the
// queue on the frame loop thread.
type Editor struct {
	Panel   *Panel
	History *History
	Keys    *Keymap
	HueStep float64 // degrees per nudge

	edits chan Edit
	log   *slog.Logger
}

func NewEditor(panel *Panel, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		Panel:   panel,
		History: NewHistory(100),
		Keys:    NewKeymap(),
		HueStep: 10,
		edits:   make(chan Edit, 16),
		log:     logger,
	}
}

// Apply sets a control through the history so the change can be undone.
func (e *Editor) Apply(label string, v core.Color) error {
	c, ok := e.Panel.Color(label)
	if !ok {
		return fmt.Errorf("apply %q: %w", label, ErrUnknownControl)
	}
	if c.Value() == v {
		return nil
	}
	cmd := NewSetColorCommand(c, v)
	e.History.Do(cmd)
	e.log.Debug("panel edit", "action", cmd.Description())
	return nil
}

func (e *Editor) NudgeHue(label string, degrees float64) error {
	c, ok := e.Panel.Color(label)
	if !ok {
		return fmt.Errorf("nudge %q: %w", label, ErrUnknownControl)
	}
	return e.Apply(label, RotateHue(c.Value(), degrees))
}

func (e *Editor) Reset(label string) error {
	c, ok := e.Panel.Color(label)
	if !ok {
		return fmt.Errorf("reset %q: %w", label, ErrUnknownControl)
	}
	return e.Apply(label, c.Initial())
}

// Queue returns the channel background sources send edits on. Sends must
// not block the sender for long; the buffer is drained every frame.
func (e *Editor) Queue() chan<- Edit {
	return e.edits
}

// Update applies every queued edit and returns how many were applied.
func (e *Editor) Update() int {
	applied := 0
	for {
		select {
		case ed := <-e.edits:
			if err := e.Apply(ed.Label, ed.Value); err != nil {
				e.log.Warn("dropping panel edit", "error", err)
				continue
			}
			applied++
		default:
			return applied
		}
	}
}

// BindShortcuts wires the hue, reset and history actions for one control.
func (e *Editor) BindShortcuts(label string, keys Shortcuts) {
	report := func(err error) {
		if err != nil {
			e.log.Warn("panel shortcut", "error", err)
		}
	}
	e.Keys.Bind(keys.HueDown, false, func() { report(e.NudgeHue(label, -e.HueStep)) })
	e.Keys.Bind(keys.HueUp, false, func() { report(e.NudgeHue(label, e.HueStep)) })
	e.Keys.Bind(keys.Reset, false, func() { report(e.Reset(label)) })
	e.Keys.Bind(keys.Undo, true, func() { e.History.Undo() })
	e.Keys.Bind(keys.Redo, true, func() { e.History.Redo() })
}
