package io

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"scroll-scene/core"
	"scroll-scene/math"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Mesh kinds accepted in [[meshes]].
const (
	MeshTorus     = "torus"
	MeshCone      = "cone"
	MeshTorusKnot = "torus_knot"
	MeshSphere    = "sphere"
	MeshGLTF      = "gltf"
)

// SceneFile is the top-level structure of the TOML scene config.
type SceneFile struct {
	Window    WindowData    `toml:"window"`
	Scene     SettingsData  `toml:"scene"`
	Camera    CameraData    `toml:"camera"`
	Light     LightData     `toml:"light"`
	Meshes    []MeshData    `toml:"meshes"`
	Particles ParticlesData `toml:"particles"`
	Motion    MotionData    `toml:"motion"`
}

type WindowData struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Title     string  `toml:"title"`
	VSync     bool    `toml:"vsync"`
	WheelStep float32 `toml:"wheel_step"` // pixels per wheel notch
}

// SettingsData holds the shared look of the scene.
type SettingsData struct {
	Color         string  `toml:"color"`
	Background    string  `toml:"background"`
	Gap           float32 `toml:"gap"` // vertical distance between objects
	GradientMap   string  `toml:"gradient_map"`
	GradientBands int     `toml:"gradient_bands"` // used when the map cannot be loaded
	Seed          int64   `toml:"seed"`           // 0 picks a time-based seed
}

type CameraData struct {
	FOV      float32 `toml:"fov"` // degrees
	Near     float32 `toml:"near"`
	Far      float32 `toml:"far"`
	Distance float32 `toml:"distance"` // rig distance from the objects
}

type LightData struct {
	Color     string     `toml:"color"`
	Intensity float32    `toml:"intensity"`
	Position  [3]float32 `toml:"position"`
}

// MeshData describes one section object. Fields that do not apply to Kind
// are ignored.
type MeshData struct {
	Kind            string  `toml:"kind"`
	X               float32 `toml:"x"`
	Radius          float32 `toml:"radius"`
	Tube            float32 `toml:"tube"`
	Height          float32 `toml:"height"`
	RadialSegments  int     `toml:"radial_segments"`
	TubularSegments int     `toml:"tubular_segments"`
	P               int     `toml:"p"`
	Q               int     `toml:"q"`
	Path            string  `toml:"path"`
}

type ParticlesData struct {
	Count       int     `toml:"count"`
	Spread      float32 `toml:"spread"` // x/z extent, centered
	Size        float32 `toml:"size"`
	Attenuation bool    `toml:"attenuation"`
	Depth       float32 `toml:"depth"` // z of the cloud
}

type MotionData struct {
	IdleSpin        [2]float32 `toml:"idle_spin"` // rad/s on X and Y
	Impulse         [3]float32 `toml:"impulse"`   // radians added per axis
	ImpulseDuration float32    `toml:"impulse_duration"`
	ParallaxRate    float32    `toml:"parallax_rate"` // per second
	DriftSpeed      float32    `toml:"drift_speed"`   // particle turns, in units of pi rad/s
	MaxPixelRatio   float32    `toml:"max_pixel_ratio"`
}

// NewDefaultSceneFile returns the stock scene: three toon objects spaced
// four units apart, a 400 point field and a pink palette.
func NewDefaultSceneFile() *SceneFile {
	return &SceneFile{
		Window: WindowData{
			Width:     1280,
			Height:    720,
			Title:     "Scroll Scene",
			VSync:     true,
			WheelStep: 100,
		},
		Scene: SettingsData{
			Color:         "#fb4dfe",
			Background:    "#1e1a20",
			Gap:           4,
			GradientMap:   "textures/gradients/3.jpg",
			GradientBands: 3,
		},
		Camera: CameraData{FOV: 75, Near: 0.05, Far: 100, Distance: 3},
		Light: LightData{
			Color:     "#ffffff",
			Intensity: 2,
			Position:  [3]float32{1, 1, 0},
		},
		Meshes: []MeshData{
			{Kind: MeshTorus, X: 1.5, Radius: 1, Tube: 0.4, RadialSegments: 16, TubularSegments: 60},
			{Kind: MeshCone, X: -1.5, Radius: 1, Height: 2, RadialSegments: 32},
			{Kind: MeshTorusKnot, X: 1.5, Radius: 0.8, Tube: 0.35, TubularSegments: 100, RadialSegments: 16, P: 2, Q: 3},
		},
		Particles: ParticlesData{
			Count:       400,
			Spread:      15,
			Size:        0.02,
			Attenuation: true,
			Depth:       -2,
		},
		Motion: MotionData{
			IdleSpin:        [2]float32{0.2, 0.12},
			Impulse:         [3]float32{6, 3, 1.5},
			ImpulseDuration: 1.5,
			ParallaxRate:    2,
			DriftSpeed:      0.01,
			MaxPixelRatio:   2,
		},
	}
}

// LoadScene reads a TOML config on top of the defaults, so a file only
// needs the keys it changes. A [[meshes]] list replaces the default list.
func LoadScene(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*SceneFile, error) {
	sf := NewDefaultSceneFile()
	// decode meshes separately so a file without them keeps the defaults
	var probe struct {
		Meshes []MeshData `toml:"meshes"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	defaults := sf.Meshes
	sf.Meshes = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if len(probe.Meshes) == 0 {
		sf.Meshes = defaults
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return sf, nil
}

// SaveScene writes the config as TOML.
func SaveScene(path string, sf *SceneFile) error {
	data, err := toml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first invalid key.
func (sf *SceneFile) Validate() error {
	bad := func(key string, format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, key, fmt.Sprintf(format, args...))
	}
	if sf.Window.Width <= 0 || sf.Window.Height <= 0 {
		return bad("window", "size must be positive, got %dx%d", sf.Window.Width, sf.Window.Height)
	}
	if sf.Window.WheelStep <= 0 {
		return bad("window.wheel_step", "must be positive")
	}
	for key, hex := range map[string]string{
		"scene.color":      sf.Scene.Color,
		"scene.background": sf.Scene.Background,
		"light.color":      sf.Light.Color,
	} {
		if _, err := core.ParseHex(hex); err != nil {
			return bad(key, "%v", err)
		}
	}
	if sf.Scene.Gap <= 0 {
		return bad("scene.gap", "must be positive")
	}
	if sf.Scene.GradientBands < 1 {
		return bad("scene.gradient_bands", "must be at least 1")
	}
	if sf.Camera.FOV <= 0 || sf.Camera.FOV >= 180 {
		return bad("camera.fov", "must be in (0, 180), got %v", sf.Camera.FOV)
	}
	if sf.Camera.Near <= 0 || sf.Camera.Far <= sf.Camera.Near {
		return bad("camera", "need 0 < near < far")
	}
	if len(sf.Meshes) == 0 {
		return bad("meshes", "at least one mesh is required")
	}
	for i, m := range sf.Meshes {
		key := fmt.Sprintf("meshes[%d]", i)
		kind := strings.ToLower(m.Kind)
		sf.Meshes[i].Kind = kind
		switch kind {
		case MeshTorus, MeshTorusKnot:
			if m.Radius <= 0 || m.Tube <= 0 {
				return bad(key, "%s needs radius and tube", m.Kind)
			}
		case MeshCone:
			if m.Radius <= 0 || m.Height <= 0 {
				return bad(key, "cone needs radius and height")
			}
		case MeshSphere:
			if m.Radius <= 0 {
				return bad(key, "sphere needs radius")
			}
		case MeshGLTF:
			if m.Path == "" {
				return bad(key, "gltf needs path")
			}
		default:
			return bad(key, "unknown kind %q", m.Kind)
		}
	}
	if sf.Particles.Count < 0 {
		return bad("particles.count", "must not be negative")
	}
	if sf.Particles.Size <= 0 {
		return bad("particles.size", "must be positive")
	}
	if sf.Motion.ImpulseDuration < 0 {
		return bad("motion.impulse_duration", "must not be negative")
	}
	if sf.Motion.MaxPixelRatio <= 0 {
		return bad("motion.max_pixel_ratio", "must be positive")
	}
	return nil
}

// --- Helper conversions ---

func ArrayToVec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
