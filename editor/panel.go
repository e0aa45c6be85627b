package editor

import (
	"fmt"
	stdmath "math"

	"github.com/lucasb-eyer/go-colorful"

	"scroll-scene/core"
)

// ColorControl is a labelled color parameter. Change handlers run
// synchronously, in registration order, whenever the value changes.
type ColorControl struct {
	Label    string
	value    core.Color
	initial  core.Color
	onChange []func(core.Color)
}

// OnChange registers fn and returns the control for chaining.
func (c *ColorControl) OnChange(fn func(core.Color)) *ColorControl {
	c.onChange = append(c.onChange, fn)
	return c
}

func (c *ColorControl) Value() core.Color {
	return c.value
}

// Initial returns the value the control was created with.
func (c *ColorControl) Initial() core.Color {
	return c.initial
}

// SetValue stores v and notifies handlers. Setting the current value again
// is a no-op.
func (c *ColorControl) SetValue(v core.Color) {
	if v == c.value {
		return
	}
	c.value = v
	for _, fn := range c.onChange {
		fn(v)
	}
}

// Panel is a flat list of parameter controls.
type Panel struct {
	controls map[string]*ColorControl
	order    []string
}

func NewPanel() *Panel {
	return &Panel{controls: make(map[string]*ColorControl)}
}

// AddColor adds a color control, or returns the existing one with that label.
func (p *Panel) AddColor(label string, initial core.Color) *ColorControl {
	if c, ok := p.controls[label]; ok {
		return c
	}
	c := &ColorControl{Label: label, value: initial, initial: initial}
	p.controls[label] = c
	p.order = append(p.order, label)
	return c
}

func (p *Panel) Color(label string) (*ColorControl, bool) {
	c, ok := p.controls[label]
	return c, ok
}

// Labels returns control labels in the order they were added.
func (p *Panel) Labels() []string {
	return append([]string(nil), p.order...)
}

// RotateHue turns c's hue by degrees in HSL space, keeping saturation and
// lightness.
func RotateHue(c core.Color, degrees float64) core.Color {
	h, s, l := c.Colorful().Hsl()
	h = stdmath.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	out := core.FromColorful(colorful.Hsl(h, s, l))
	out.A = c.A
	return out
}

// ParseEdit parses a hex color typed or loaded for a control.
func ParseEdit(label, hex string) (Edit, error) {
	c, err := core.ParseHex(hex)
	if err != nil {
		return Edit{}, fmt.Errorf("edit %q: %w", label, err)
	}
	return Edit{Label: label, Value: c}, nil
}

// Edit is a requested change to a control, produced off the frame loop.
type Edit struct {
	Label string
	Value core.Color
}
