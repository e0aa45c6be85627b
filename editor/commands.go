package editor

import "scroll-scene/core"

// Command represents an undoable panel edit
type Command interface {
	Execute()
	Undo()
	Description() string
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack
func (h *History) Do(cmd Command) {
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	// a new edit invalidates anything that was undone
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the last edit
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
	return true
}

// Redo reapplies the last undone edit
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// SetColorCommand records a color control change. Both directions go through
// SetValue, so bound materials follow undo and redo.
type SetColorCommand struct {
	Control *ColorControl
	Old     core.Color
	New     core.Color
}

func NewSetColorCommand(control *ColorControl, value core.Color) *SetColorCommand {
	return &SetColorCommand{Control: control, Old: control.Value(), New: value}
}

func (c *SetColorCommand) Execute() { c.Control.SetValue(c.New) }
func (c *SetColorCommand) Undo()    { c.Control.SetValue(c.Old) }
func (c *SetColorCommand) Description() string {
	return "Set " + c.Control.Label + " to " + c.New.Hex()
}
