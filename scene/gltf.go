package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"scroll-scene/core"
	"scroll-scene/math"
)

// ExportGLTF writes a binary glTF snapshot of every visible mesh and point
// cloud, with world transforms baked into the node TRS and material colors
// stored as base color factors.
func ExportGLTF(s *Scene, path string) error {
	doc := gltf.NewDocument()
	matIndex := make(map[uint32]int)

	material := func(n *Node) *int {
		m := s.Materials.Get(n.Material)
		if m == nil {
			return nil
		}
		if idx, ok := matIndex[uint32(n.Material)]; ok {
			return gltf.Index(idx)
		}
		lin := m.Color.Linear()
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: m.Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{float64(lin.X), float64(lin.Y), float64(lin.Z), float64(m.Color.A)},
			},
		})
		idx := len(doc.Materials) - 1
		matIndex[uint32(n.Material)] = idx
		return gltf.Index(idx)
	}

	addNode := func(n *Node, meshIdx int) {
		world := n.GetWorldMatrix()
		pos := world.Translation()
		q := worldRotation(n)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        n.Name,
			Mesh:        gltf.Index(meshIdx),
			Translation: [3]float64{float64(pos.X), float64(pos.Y), float64(pos.Z)},
			Rotation:    [4]float64{float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)},
			Scale:       [3]float64{1, 1, 1},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	for _, n := range s.MeshNodes() {
		positions := make([][3]float32, len(n.Mesh.Vertices))
		normals := make([][3]float32, len(n.Mesh.Vertices))
		for i, v := range n.Mesh.Vertices {
			positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
			normals[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
		}
		prim := &gltf.Primitive{
			Indices: gltf.Index(modeler.WriteIndices(doc, n.Mesh.Indices)),
			Attributes: map[string]int{
				"POSITION": modeler.WritePosition(doc, positions),
				"NORMAL":   modeler.WriteNormal(doc, normals),
			},
			Material: material(n),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: n.Mesh.Name, Primitives: []*gltf.Primitive{prim}})
		addNode(n, len(doc.Meshes)-1)
	}

	for _, n := range s.PointNodes() {
		count := n.Points.Count()
		positions := make([][3]float32, count)
		for i := 0; i < count; i++ {
			positions[i] = [3]float32{n.Points.Positions[i*3], n.Points.Positions[i*3+1], n.Points.Positions[i*3+2]}
		}
		prim := &gltf.Primitive{
			Mode:       gltf.PrimitivePoints,
			Attributes: map[string]int{"POSITION": modeler.WritePosition(doc, positions)},
			Material:   material(n),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: n.Points.Name, Primitives: []*gltf.Primitive{prim}})
		addNode(n, len(doc.Meshes)-1)
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("gltf save %q: %w", path, err)
	}
	return nil
}

// worldRotation accumulates Euler rotations up the parent chain. Scene
// nodes are unscaled, so composing the quaternions is exact.
func worldRotation(n *Node) math.Quaternion {
	q := n.Transform.Quaternion()
	for p := n.Parent; p != nil; p = p.Parent {
		q = p.Transform.Quaternion().Mul(q)
	}
	return q.Normalize()
}

// LoadGLTFMesh reads the first triangle primitive of a .glb or .gltf file
// into a Mesh. It lets a section display a model instead of a generated
// primitive.
func LoadGLTFMesh(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			m, err := loadGLTFPrimitive(doc, gm.Name, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf %q mesh %q: %w", path, gm.Name, err)
			}
			return m, nil
		}
	}
	return nil, fmt.Errorf("gltf %q: no triangle mesh", path)
}

func loadGLTFPrimitive(doc *gltf.Document, name string, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3Up,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if name == "" {
		name = "gltf"
	}
	return CreateMeshFromData(name, verts, indices), nil
}
