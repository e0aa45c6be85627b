package materials

import (
	"errors"
	"fmt"

	"scroll-scene/core"
)

// ID is a handle into a Library. The zero ID is never issued.
type ID uint32

var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrStillReferenced = errors.New("material still referenced")
)

type slot struct {
	material *Material
	refs     int
}

// Library owns every material in a scene. Nodes hold IDs and take a
// reference for as long as they use one, so a single material can be
// shared by many meshes and edited in one place.
type Library struct {
	slots []slot
	free  []ID
}

func NewLibrary() *Library {
	// slot 0 is reserved so that a zero ID means "no material"
	return &Library{slots: make([]slot, 1)}
}

// Add stores m and returns its handle with a reference count of zero.
func (l *Library) Add(m *Material) ID {
	if n := len(l.free); n > 0 {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[id] = slot{material: m}
		return id
	}
	l.slots = append(l.slots, slot{material: m})
	return ID(len(l.slots) - 1)
}

// Get returns the material for id, or nil when id is not live.
func (l *Library) Get(id ID) *Material {
	if !l.valid(id) {
		return nil
	}
	return l.slots[id].material
}

// Acquire takes a reference on id.
func (l *Library) Acquire(id ID) error {
	if !l.valid(id) {
		return fmt.Errorf("acquire %d: %w", id, ErrUnknownMaterial)
	}
	l.slots[id].refs++
	return nil
}

// Release drops a reference on id.
func (l *Library) Release(id ID) error {
	if !l.valid(id) {
		return fmt.Errorf("release %d: %w", id, ErrUnknownMaterial)
	}
	if l.slots[id].refs > 0 {
		l.slots[id].refs--
	}
	return nil
}

func (l *Library) RefCount(id ID) int {
	if !l.valid(id) {
		return 0
	}
	return l.slots[id].refs
}

// Remove frees id. Materials that still have references are kept.
func (l *Library) Remove(id ID) error {
	if !l.valid(id) {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownMaterial)
	}
	if l.slots[id].refs > 0 {
		return fmt.Errorf("remove %q: %w", l.slots[id].material.Name, ErrStillReferenced)
	}
	l.slots[id] = slot{}
	l.free = append(l.free, id)
	return nil
}

// SetColor writes color into every listed material.
func (l *Library) SetColor(color core.Color, ids ...ID) error {
	for _, id := range ids {
		m := l.Get(id)
		if m == nil {
			return fmt.Errorf("set color on %d: %w", id, ErrUnknownMaterial)
		}
		m.Color = color
	}
	return nil
}

// Len reports the number of live materials.
func (l *Library) Len() int {
	return len(l.slots) - 1 - len(l.free)
}

func (l *Library) valid(id ID) bool {
	return id != 0 && int(id) < len(l.slots) && l.slots[id].material != nil
}
