package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultOptions returns the settings the terrain demo was tuned with.
func DefaultOptions() Options {
	return Options{
		HeightScale:   1.0,
		PhysicalScale: 10.0,
		Normals:       NormalsSlope,
	}
}

// Validate checks the scale factors.
func (o Options) Validate() error {
	if math.IsNaN(o.PhysicalScale) || math.IsInf(o.PhysicalScale, 0) || o.PhysicalScale <= 0 {
		return fmt.Errorf("%w: physical scale must be a positive number, got %v", ErrInvalidOptions, o.PhysicalScale)
	}
	if math.IsNaN(o.HeightScale) || math.IsInf(o.HeightScale, 0) {
		return fmt.Errorf("%w: height scale must be finite, got %v", ErrInvalidOptions, o.HeightScale)
	}
	if o.Normals != NormalsSlope && o.Normals != NormalsUp {
		return fmt.Errorf("%w: unknown normal mode %d", ErrInvalidOptions, o.Normals)
	}
	return nil
}

// BuildMesh converts a height field into vertex and index buffers.
// The surface is centred on the origin and spans PhysicalScale along X and Z.
func BuildMesh(hf *HeightField, opts Options) (*Mesh, error) {
	spec := GridSpec{Width: hf.Width, Depth: hf.Depth}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(hf.Samples) != VertexCount(spec) {
		return nil, fmt.Errorf("%w: height field has %d samples, want %d", ErrInvalidGridSpec, len(hf.Samples), VertexCount(spec))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := VertexCount(spec)
	positions := make([]mgl32.Vec3, n)
	normals := make([]mgl32.Vec3, n)
	uvs := make([]mgl32.Vec2, n)

	w := float64(hf.Width)
	d := float64(hf.Depth)
	s := opts.PhysicalScale

	bounds := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	for row := range hf.Depth + 1 {
		for col := range hf.Width + 1 {
			i := LatticeIndex(col, row, hf.Width)
			c, r := float64(col), float64(row)

			pos := mgl32.Vec3{
				float32((c - w/2) * s / w),
				float32(hf.At(col, row) * opts.HeightScale),
				float32((r - d/2) * s / d),
			}
			positions[i] = pos
			updateBounds(&bounds, pos)

			if opts.Normals == NormalsUp {
				normals[i] = mgl32.Vec3{0, 1, 0}
			} else {
				normals[i] = slopeNormal(hf, col, row, opts)
			}

			uvs[i] = mgl32.Vec2{float32(c / w), float32(r / d)}
		}
	}

	return &Mesh{
		Width:     hf.Width,
		Depth:     hf.Depth,
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   triangulate(hf.Width, hf.Depth),
		Bounds:    bounds,
	}, nil
}

// slopeNormal estimates the surface normal at (col, row) from the height
// gradient. Interior points use central differences; border points fall back
// to one-sided differences.
func slopeNormal(hf *HeightField, col, row uint32, opts Options) mgl32.Vec3 {
	dx := opts.PhysicalScale / float64(hf.Width)
	dz := opts.PhysicalScale / float64(hf.Depth)

	left, right := col, col
	if col > 0 {
		left = col - 1
	}
	if col < hf.Width {
		right = col + 1
	}
	down, up := row, row
	if row > 0 {
		down = row - 1
	}
	if row < hf.Depth {
		up = row + 1
	}

	// For y = h(x, z) the upward normal is (-dh/dx, 1, -dh/dz).
	// Written as (low - high) so a flat field yields +0, never -0.
	nx := (hf.At(left, row) - hf.At(right, row)) * opts.HeightScale / (float64(right-left) * dx)
	nz := (hf.At(col, down) - hf.At(col, up)) * opts.HeightScale / (float64(up-down) * dz)

	n := mgl64.Vec3{nx, 1, nz}.Normalize()
	return mgl32.Vec3{float32(n[0]), float32(n[1]), float32(n[2])}
}

// triangulate emits two counter-clockwise (viewed from +Y) triangles per
// cell, split along the (col,row)-(col+1,row+1) diagonal.
func triangulate(width, depth uint32) []uint32 {
	indices := make([]uint32, 0, int(width)*int(depth)*6)

	for row := range depth {
		for col := range width {
			i00 := LatticeIndex(col, row, width)
			i10 := LatticeIndex(col+1, row, width)
			i01 := LatticeIndex(col, row+1, width)
			i11 := LatticeIndex(col+1, row+1, width)

			indices = append(indices,
				i00, i01, i11,
				i00, i11, i10,
			)
		}
	}
	return indices
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for axis := range 3 {
		if p[axis] < b.Min[axis] {
			b.Min[axis] = p[axis]
		}
		if p[axis] > b.Max[axis] {
			b.Max[axis] = p[axis]
		}
	}
}
