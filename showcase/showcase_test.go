package showcase

import (
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scroll-scene/core"
	"scroll-scene/editor"
	"scroll-scene/input"
	"scroll-scene/io"
	"scroll-scene/materials"
	"scroll-scene/scene"
	"scroll-scene/textures"
)

type fakeSurface struct {
	width, height int
	ratio         float32
	renders       int
	err           error
}

func (f *fakeSurface) SetSize(w, h int)        { f.width, f.height = w, h }
func (f *fakeSurface) SetPixelRatio(r float32) { f.ratio = r }

func (f *fakeSurface) Render(*scene.Scene, *scene.Camera) error {
	f.renders++
	return f.err
}

func quiet() *slog.Logger { return slog.New(slog.DiscardHandler) }

func build(t *testing.T, edit func(*io.SceneFile)) *World {
	t.Helper()
	cfg := io.NewDefaultSceneFile()
	cfg.Scene.GradientMap = ""
	if edit != nil {
		edit(cfg)
	}
	w, err := Build(cfg, 16.0/9, textures.NewManager(), rand.New(rand.NewSource(7)), quiet())
	require.NoError(t, err)
	return w
}

// still disables the idle spin so rotations come only from impulses.
func still(cfg *io.SceneFile) { cfg.Motion.IdleSpin = [2]float32{} }

func TestBuildDefaults(t *testing.T) {
	w := build(t, nil)

	require.Len(t, w.Meshes, 3)
	xs := []float32{1.5, -1.5, 1.5}
	for i, n := range w.Meshes {
		assert.Equal(t, xs[i], n.Transform.Position.X, n.Name)
		assert.Equal(t, -4*float32(i), n.Transform.Position.Y, n.Name)
		assert.Equal(t, w.ToonMaterial, n.Material, n.Name)
	}
	assert.Equal(t, 3, w.Scene.Materials.RefCount(w.ToonMaterial))
	assert.Equal(t, 1, w.Scene.Materials.RefCount(w.PointsMaterial))
	assert.NotEqual(t, w.ToonMaterial, w.PointsMaterial)

	toon := w.Scene.Materials.Get(w.ToonMaterial)
	require.NotNil(t, toon.GradientMap)
	assert.Equal(t, textures.FilterNearest, toon.GradientMap.Filter)
	pts := w.Scene.Materials.Get(w.PointsMaterial)
	assert.Equal(t, materials.KindPoints, pts.Kind)
	assert.Equal(t, float32(0.02), pts.Size)
	assert.True(t, pts.SizeAttenuation)
	assert.Equal(t, toon.Color, pts.Color)

	assert.Equal(t, 400, w.Particles.Points.Count())
	assert.Equal(t, float32(-2), w.Particles.Transform.Position.Z)

	assert.Equal(t, float32(3), w.Rig.Transform.Position.Z)
	assert.Same(t, w.Rig, w.Camera.Node.Parent)
	assert.InDelta(t, 75*math32.Pi/180, w.Camera.FOV, 1e-6)
	assert.Equal(t, float32(0.05), w.Camera.NearPlane)
	assert.Equal(t, float32(100), w.Camera.FarPlane)

	require.Len(t, w.Scene.Lights, 1)
	assert.Equal(t, float32(2), w.Light.Intensity)
	assert.Equal(t, core.ColorWhite, w.Light.Color)
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := io.NewDefaultSceneFile()
	cfg.Scene.Color = "not a color"
	_, err := Build(cfg, 1, textures.NewManager(), rand.New(rand.NewSource(1)), quiet())
	assert.ErrorIs(t, err, io.ErrInvalidConfig)
}

func TestParticlePositions(t *testing.T) {
	pos := GenerateParticlePositions(rand.New(rand.NewSource(1)), 400, 15, 4, 3)
	require.Len(t, pos, 1200)
	for i := 0; i < len(pos); i += 3 {
		assert.True(t, pos[i] >= -7.5 && pos[i] <= 7.5, "x %v", pos[i])
		assert.True(t, pos[i+1] > -12 && pos[i+1] <= 4, "y %v", pos[i+1])
		assert.True(t, pos[i+2] >= -7.5 && pos[i+2] <= 7.5, "z %v", pos[i+2])
	}

	again := GenerateParticlePositions(rand.New(rand.NewSource(1)), 400, 15, 4, 3)
	assert.Equal(t, pos, again)
}

func TestIdleSpinAccumulates(t *testing.T) {
	w := build(t, nil)
	u := NewUpdater(w, &fakeSurface{})
	for _, d := range []float32{0.25, 0.5, 0.25} {
		require.NoError(t, u.Frame(input.Snapshot{}, d, 0))
	}
	for _, n := range w.Meshes {
		assert.InDelta(t, 0.2, n.Transform.Rotation.X, 1e-5)
		assert.InDelta(t, 0.12, n.Transform.Rotation.Y, 1e-5)
		assert.Zero(t, n.Transform.Rotation.Z)
	}
}

func TestRigFollowsScroll(t *testing.T) {
	w := build(t, nil)
	u := NewUpdater(w, &fakeSurface{})

	half := input.Snapshot{Scroll: input.ScrollState{ScrollY: 720, MaxScrollY: 1440}}
	require.NoError(t, u.Frame(half, 0.016, 0))
	assert.InDelta(t, -4, w.Rig.Transform.Position.Y, 1e-5)

	flat := input.Snapshot{Scroll: input.ScrollState{ScrollY: 0, MaxScrollY: 0}}
	require.NoError(t, u.Frame(flat, 0.016, 0))
	assert.Zero(t, w.Rig.Transform.Position.Y)
	assert.Equal(t, float32(3), w.Rig.Transform.Position.Z)
}

func TestSectionChangeImpulsesThatMesh(t *testing.T) {
	w := build(t, still)
	u := NewUpdater(w, &fakeSurface{})
	tr := input.NewTracker(len(w.Meshes), input.Viewport{Width: 1280, Height: 720, PixelRatio: 1})
	tr.OnSectionChange(u.OnSection)

	tr.ScrollTo(720)
	assert.Equal(t, 1, u.Pending())
	for i := 0; i < 20; i++ {
		require.NoError(t, u.Frame(tr.Snapshot(), 0.1, 0))
	}
	assert.Zero(t, u.Pending())

	got := w.Meshes[1].Transform.Rotation
	assert.InDelta(t, 6, got.X, 1e-4)
	assert.InDelta(t, 3, got.Y, 1e-4)
	assert.InDelta(t, 1.5, got.Z, 1e-4)
	assert.Zero(t, w.Meshes[0].Transform.Rotation.X)
	assert.Zero(t, w.Meshes[2].Transform.Rotation.X)

	tr.End()
	tr.ScrollTo(1e6)
	assert.Equal(t, 1, u.Pending(), "scrolling past the end fires once")

	u.OnSection(7)
	u.OnSection(-1)
	assert.Equal(t, 1, u.Pending())
}

func TestOverlappingImpulsesSum(t *testing.T) {
	w := build(t, still)
	u := NewUpdater(w, &fakeSurface{})
	u.OnSection(0)
	require.NoError(t, u.Frame(input.Snapshot{}, 0.5, 0))
	u.OnSection(0)
	for i := 0; i < 4; i++ {
		require.NoError(t, u.Frame(input.Snapshot{}, 0.5, 0))
	}
	assert.InDelta(t, 12, w.Meshes[0].Transform.Rotation.X, 1e-4)
}

func TestParallaxEasesWithoutOvershoot(t *testing.T) {
	w := build(t, nil)
	u := NewUpdater(w, &fakeSurface{})
	in := input.Snapshot{Cursor: input.Cursor{X: 0.5, Y: 0.5}}

	prev := u.Target()
	for i := 0; i < 30; i++ {
		require.NoError(t, u.Frame(in, 0.05, 0))
		cur := u.Target()
		assert.GreaterOrEqual(t, cur.X, prev.X)
		assert.LessOrEqual(t, cur.Y, prev.Y)
		assert.LessOrEqual(t, cur.X, float32(0.5))
		assert.GreaterOrEqual(t, cur.Y, float32(-0.5))
		prev = cur
	}
	cam := w.Camera.Position()
	assert.Equal(t, prev.X, cam.X)
	assert.Equal(t, prev.Y, cam.Y)
	assert.Zero(t, cam.Z)

	// A long frame would overshoot with an unclamped rate.
	require.NoError(t, u.Frame(in, 2, 0))
	assert.InDelta(t, 0.5, u.Target().X, 1e-6)
	assert.InDelta(t, -0.5, u.Target().Y, 1e-6)
}

func TestParticlesDrift(t *testing.T) {
	w := build(t, nil)
	u := NewUpdater(w, &fakeSurface{})
	require.NoError(t, u.Frame(input.Snapshot{}, 0.016, 50))
	assert.InDelta(t, 0.5*math32.Pi, w.Particles.Transform.Rotation.Y, 1e-4)
	require.NoError(t, u.Frame(input.Snapshot{}, 0.016, 100))
	assert.InDelta(t, math32.Pi, w.Particles.Transform.Rotation.Y, 1e-4)
}

func TestFrameRendersOnce(t *testing.T) {
	w := build(t, nil)
	s := &fakeSurface{}
	u := NewUpdater(w, s)
	require.NoError(t, u.Frame(input.Snapshot{}, 0.016, 0))
	require.NoError(t, u.Frame(input.Snapshot{}, 0.016, 0))
	assert.Equal(t, 2, s.renders)

	s.err = errors.New("lost context")
	assert.ErrorIs(t, u.Frame(input.Snapshot{}, 0.016, 0), s.err)
}

func TestResizeCapsPixelRatio(t *testing.T) {
	w := build(t, nil)
	s := &fakeSurface{}

	Resize(w.Camera, s, input.Viewport{Width: 800, Height: 400, PixelRatio: 3}, 2)
	assert.Equal(t, 800, s.width)
	assert.Equal(t, 400, s.height)
	assert.Equal(t, float32(2), s.ratio)
	assert.Equal(t, float32(2), w.Camera.AspectRatio)

	Resize(w.Camera, s, input.Viewport{Width: 600, Height: 600, PixelRatio: 1.5}, 2)
	assert.Equal(t, float32(1.5), s.ratio)
	assert.Equal(t, float32(1), w.Camera.AspectRatio)
}

func TestBindColorWritesBothMaterials(t *testing.T) {
	w := build(t, nil)
	ed := editor.NewEditor(editor.NewPanel(), quiet())
	c := BindColor(ed.Panel, w, quiet())
	lib := w.Scene.Materials
	initial := c.Value()

	teal := core.Color{R: 0, G: 0.5, B: 0.5, A: 1}
	require.NoError(t, ed.Apply(ColorLabel, teal))
	assert.Equal(t, teal, lib.Get(w.ToonMaterial).Color)
	assert.Equal(t, teal, lib.Get(w.PointsMaterial).Color)
	assert.Equal(t, teal, w.Color)

	require.True(t, ed.History.Undo())
	assert.Equal(t, initial, lib.Get(w.ToonMaterial).Color)
	assert.Equal(t, initial, lib.Get(w.PointsMaterial).Color)
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock(func() time.Time { return now })

	now = now.Add(250 * time.Millisecond)
	d, e := c.Tick()
	assert.InDelta(t, 0.25, d, 1e-6)
	assert.InDelta(t, 0.25, e, 1e-6)

	now = now.Add(time.Second)
	d, e = c.Tick()
	assert.InDelta(t, 1, d, 1e-6)
	assert.InDelta(t, 1.25, e, 1e-6)
}

func TestConfigEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	write := func(body string) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	load := ConfigEdits(core.ColorWhite)

	write("[scene]\ncolor = \"#ffffff\"\n")
	edits, err := load(path)
	require.NoError(t, err)
	assert.Empty(t, edits, "color matches the starting value")

	write("[scene]\ncolor = \"#00ff00\"\n")
	edits, err = load(path)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, ColorLabel, edits[0].Label)
	assert.Equal(t, "#00ff00", edits[0].Value.Hex())

	write("[scene]\ncolor = \"#00ff00\"\ngap = 5\n")
	edits, err = load(path)
	require.NoError(t, err)
	assert.Empty(t, edits, "saving other keys keeps panel edits")

	write("[scene]\ncolor = \"nope\"\n")
	_, err = load(path)
	assert.Error(t, err)
}
