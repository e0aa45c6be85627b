package scene

import (
	"github.com/chewxy/math32"

	"scroll-scene/core"
	"scroll-scene/math"
)

const twoPi = 2 * math32.Pi

// CreateTorus builds a ring in the XY plane around the Z axis.
// radius is the distance from the center to the tube center, tube is the
// tube radius. The grid is (radialSegments+1) x (tubularSegments+1).
func CreateTorus(radius, tube float32, radialSegments, tubularSegments int) *Mesh {
	if radialSegments < 2 {
		radialSegments = 2
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	vertices := make([]core.Vertex, 0, (radialSegments+1)*(tubularSegments+1))
	for j := 0; j <= radialSegments; j++ {
		v := float32(j) / float32(radialSegments) * twoPi
		sinV, cosV := math32.Sincos(v)
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * twoPi
			sinU, cosU := math32.Sincos(u)

			pos := math.Vec3{
				X: (radius + tube*cosV) * cosU,
				Y: (radius + tube*cosV) * sinU,
				Z: tube * sinV,
			}
			center := math.Vec3{X: radius * cosU, Y: radius * sinU}
			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   pos.Sub(center).Normalize(),
				UV:       math.Vec2{X: float32(i) / float32(tubularSegments), Y: float32(j) / float32(radialSegments)},
			})
		}
	}

	indices := make([]uint32, 0, radialSegments*tubularSegments*6)
	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	return CreateMeshFromData("Torus", vertices, indices)
}

// CreateCone builds a cone along +Y centered on the origin with a closed
// base. The apex ring holds one vertex per segment so each side keeps its
// own smooth normal.
func CreateCone(radius, height float32, radialSegments int) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	half := height / 2
	slope := radius / height

	var vertices []core.Vertex
	var indices []uint32

	// side: row 0 is the apex, row 1 the base rim
	for y := 0; y <= 1; y++ {
		r := float32(y) * radius
		py := half - float32(y)*height
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			sinT, cosT := math32.Sincos(u * twoPi)
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: r * sinT, Y: py, Z: r * cosT},
				Normal:   math.Vec3{X: sinT, Y: slope, Z: cosT}.Normalize(),
				UV:       math.Vec2{X: u, Y: 1 - float32(y)},
			})
		}
	}
	row := uint32(radialSegments + 1)
	for x := uint32(0); x < uint32(radialSegments); x++ {
		b := row + x
		c := row + x + 1
		d := x + 1
		indices = append(indices, b, c, d)
	}

	// base cap
	center := uint32(len(vertices))
	vertices = append(vertices, core.Vertex{
		Position: math.Vec3{Y: -half},
		Normal:   math.Vec3{Y: -1},
		UV:       math.Vec2{X: 0.5, Y: 0.5},
	})
	rim := uint32(len(vertices))
	for x := 0; x <= radialSegments; x++ {
		sinT, cosT := math32.Sincos(float32(x) / float32(radialSegments) * twoPi)
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: radius * sinT, Y: -half, Z: radius * cosT},
			Normal:   math.Vec3{Y: -1},
			UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
		})
	}
	for x := uint32(0); x < uint32(radialSegments); x++ {
		indices = append(indices, rim+x+1, rim+x, center)
	}

	return CreateMeshFromData("Cone", vertices, indices)
}

// CreateTorusKnot sweeps a tube along a (p, q) torus knot. The defaults used
// by the scene are p=2, q=3.
func CreateTorusKnot(radius, tube float32, tubularSegments, radialSegments, p, q int) *Mesh {
	if tubularSegments < 3 {
		tubularSegments = 3
	}
	if radialSegments < 3 {
		radialSegments = 3
	}
	if p == 0 {
		p = 2
	}
	if q == 0 {
		q = 3
	}

	curve := func(u float32) math.Vec3 {
		sinU, cosU := math32.Sincos(u)
		quOverP := float32(q) / float32(p) * u
		sinQ, cosQ := math32.Sincos(quOverP)
		return math.Vec3{
			X: radius * (2 + cosQ) * 0.5 * cosU,
			Y: radius * (2 + cosQ) * sinU * 0.5,
			Z: radius * sinQ * 0.5,
		}
	}

	vertices := make([]core.Vertex, 0, (tubularSegments+1)*(radialSegments+1))
	for i := 0; i <= tubularSegments; i++ {
		u := float32(i) / float32(tubularSegments) * float32(p) * twoPi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		// Frenet-like frame from two nearby curve samples
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n)
		n = b.Cross(t)
		b = b.Normalize()
		n = n.Normalize()

		for j := 0; j <= radialSegments; j++ {
			v := float32(j) / float32(radialSegments) * twoPi
			sinV, cosV := math32.Sincos(v)
			cx := -tube * cosV
			cy := tube * sinV

			pos := p1.Add(n.Mul(cx)).Add(b.Mul(cy))
			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   pos.Sub(p1).Normalize(),
				UV:       math.Vec2{X: float32(i) / float32(tubularSegments), Y: float32(j) / float32(radialSegments)},
			})
		}
	}

	indices := make([]uint32, 0, tubularSegments*radialSegments*6)
	row := uint32(radialSegments + 1)
	for j := uint32(1); j <= uint32(tubularSegments); j++ {
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			a := row*(j-1) + (i - 1)
			b := row*j + (i - 1)
			c := row*j + i
			d := row*(j-1) + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	return CreateMeshFromData("TorusKnot", vertices, indices)
}

// CreateSphere builds a UV sphere. It is available to config-defined
// section meshes.
func CreateSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	var vertices []core.Vertex
	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		sinPhi, cosPhi := math32.Sincos(v * math32.Pi)
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			sinT, cosT := math32.Sincos(u * twoPi)
			n := math.Vec3{X: -cosT * sinPhi, Y: cosPhi, Z: sinT * sinPhi}
			vertices = append(vertices, core.Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       math.Vec2{X: u, Y: 1 - v},
			})
		}
	}

	var indices []uint32
	row := uint32(widthSegments + 1)
	for y := uint32(0); y < uint32(heightSegments); y++ {
		for x := uint32(0); x < uint32(widthSegments); x++ {
			a := y*row + x + 1
			b := y*row + x
			c := (y+1)*row + x
			d := (y+1)*row + x + 1
			if y != 0 {
				indices = append(indices, a, b, d)
			}
			if y != uint32(heightSegments)-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}
