package terrain

import (
	"github.com/Faultbox/midgard-terrain/pkg/formats"
)

// Asset packages the mesh buffers for serialization. Buffers are shared,
// not copied.
func (m *Mesh) Asset() *formats.TMSH {
	return &formats.TMSH{
		Version:   formats.CurrentTMSHVersion,
		Width:     m.Width,
		Depth:     m.Depth,
		BoundsMin: m.Bounds.Min,
		BoundsMax: m.Bounds.Max,
		Positions: m.Positions,
		Normals:   m.Normals,
		UVs:       m.UVs,
		Indices:   m.Indices,
	}
}

// MeshFromAsset rebuilds a Mesh from a parsed asset.
func MeshFromAsset(t *formats.TMSH) (*Mesh, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Mesh{
		Width:     t.Width,
		Depth:     t.Depth,
		Positions: t.Positions,
		Normals:   t.Normals,
		UVs:       t.UVs,
		Indices:   t.Indices,
		Bounds:    Bounds{Min: t.BoundsMin, Max: t.BoundsMax},
	}, nil
}
