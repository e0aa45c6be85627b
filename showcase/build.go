// Package showcase assembles the scroll-driven scene and advances it each
// frame.
package showcase

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/chewxy/math32"

	"scroll-scene/core"
	"scroll-scene/io"
	"scroll-scene/materials"
	"scroll-scene/math"
	"scroll-scene/scene"
	"scroll-scene/textures"
)

// World is the assembled scene plus direct handles to the parts the frame
// loop animates.
type World struct {
	Scene     *scene.Scene
	Camera    *scene.Camera
	Rig       *scene.Node
	Meshes    []*scene.Node // one per section, top to bottom
	Particles *scene.Node
	Light     *scene.Light

	ToonMaterial   materials.ID
	PointsMaterial materials.ID
	Color          core.Color

	Config *io.SceneFile
}

// Build creates the camera rig, light, shared toon material, section meshes
// and particle field described by cfg. A gradient map that fails to load is
// replaced by a procedural ramp and logged.
func Build(cfg *io.SceneFile, aspect float32, texs *textures.Manager, rng *rand.Rand, logger *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	color, err := core.ParseHex(cfg.Scene.Color)
	if err != nil {
		return nil, fmt.Errorf("scene color: %w", err)
	}
	background, err := core.ParseHex(cfg.Scene.Background)
	if err != nil {
		return nil, fmt.Errorf("scene background: %w", err)
	}
	lightColor, err := core.ParseHex(cfg.Light.Color)
	if err != nil {
		return nil, fmt.Errorf("light color: %w", err)
	}

	s := scene.NewScene()
	s.Background = background
	w := &World{Scene: s, Color: color, Config: cfg}

	// ── Camera rig ───────────────────────────────────────────────────────────
	w.Rig = scene.NewNode("CameraRig")
	w.Rig.SetPosition(math.NewVec3(0, 0, cfg.Camera.Distance))
	w.Camera = scene.NewCamera(cfg.Camera.FOV*math32.Pi/180, aspect, cfg.Camera.Near, cfg.Camera.Far)
	w.Rig.AddChild(w.Camera.Node)
	s.AddNode(w.Rig)
	s.SetCamera(w.Camera)

	// ── Light ────────────────────────────────────────────────────────────────
	w.Light = &scene.Light{
		Position:  io.ArrayToVec3(cfg.Light.Position),
		Color:     lightColor,
		Intensity: cfg.Light.Intensity,
	}
	s.AddLight(w.Light)

	// ── Materials ────────────────────────────────────────────────────────────
	gradient, err := texs.GradientOrFallback(cfg.Scene.GradientMap, cfg.Scene.GradientBands)
	if err != nil {
		logger.Warn("gradient map unavailable, using procedural bands",
			"path", cfg.Scene.GradientMap, "bands", cfg.Scene.GradientBands, "error", err)
	}
	w.ToonMaterial = s.Materials.Add(materials.NewToon("toon", color, gradient))
	w.PointsMaterial = s.Materials.Add(materials.NewPoints("particles", color, cfg.Particles.Size, cfg.Particles.Attenuation))

	// ── Section meshes ───────────────────────────────────────────────────────
	for i, md := range cfg.Meshes {
		mesh, err := CreateMesh(md)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		n := scene.NewNode(fmt.Sprintf("%s_%d", md.Kind, i))
		n.Mesh = mesh
		n.SetPosition(math.NewVec3(md.X, -cfg.Scene.Gap*float32(i), 0))
		if err := s.AttachMaterial(n, w.ToonMaterial); err != nil {
			return nil, err
		}
		s.AddNode(n)
		w.Meshes = append(w.Meshes, n)
	}

	// ── Particles ────────────────────────────────────────────────────────────
	positions := GenerateParticlePositions(rng, cfg.Particles.Count, cfg.Particles.Spread, cfg.Scene.Gap, len(w.Meshes))
	w.Particles = scene.NewNode("Particles")
	w.Particles.Points = scene.NewPoints("particles", positions)
	w.Particles.SetPosition(math.NewVec3(0, 0, cfg.Particles.Depth))
	if err := s.AttachMaterial(w.Particles, w.PointsMaterial); err != nil {
		return nil, err
	}
	s.AddNode(w.Particles)

	logger.Info("scene built",
		"meshes", len(w.Meshes), "particles", w.Particles.Points.Count(), "color", color.Hex())
	return w, nil
}

// CreateMesh builds the geometry for one configured section object.
func CreateMesh(md io.MeshData) (*scene.Mesh, error) {
	switch md.Kind {
	case io.MeshTorus:
		return scene.CreateTorus(md.Radius, md.Tube, md.RadialSegments, md.TubularSegments), nil
	case io.MeshCone:
		return scene.CreateCone(md.Radius, md.Height, md.RadialSegments), nil
	case io.MeshTorusKnot:
		return scene.CreateTorusKnot(md.Radius, md.Tube, md.TubularSegments, md.RadialSegments, md.P, md.Q), nil
	case io.MeshSphere:
		return scene.CreateSphere(md.Radius, md.RadialSegments, md.RadialSegments/2), nil
	case io.MeshGLTF:
		return scene.LoadGLTFMesh(md.Path)
	default:
		return nil, fmt.Errorf("unknown mesh kind %q", md.Kind)
	}
}

// GenerateParticlePositions returns count x,y,z triples. X and Z are uniform
// in [-spread/2, spread/2]; Y is uniform in (gap - gap*(meshCount+1), gap],
// covering one gap above the first object to one gap below the last.
func GenerateParticlePositions(rng *rand.Rand, count int, spread, gap float32, meshCount int) []float32 {
	positions := make([]float32, count*3)
	height := gap * float32(meshCount+1)
	for i := 0; i < count; i++ {
		i3 := i * 3
		positions[i3] = (rng.Float32() - 0.5) * spread
		positions[i3+1] = gap - rng.Float32()*height
		positions[i3+2] = (rng.Float32() - 0.5) * spread
	}
	return positions
}
