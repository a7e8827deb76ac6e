// Package terrain builds triangulated terrain meshes from sampled noise height fields.
package terrain

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Generation errors.
var (
	ErrInvalidGridSpec = errors.New("invalid grid spec")
	ErrInvalidOptions  = errors.New("invalid mesh options")
)

// GridSpec describes the lattice a terrain is sampled and triangulated on.
type GridSpec struct {
	Width        uint32  // Cells along X
	Depth        uint32  // Cells along Z
	SampleExtent float64 // Half-width of the square noise domain
}

// HeightField is a dense row-major grid of elevation samples, one per
// lattice point of a GridSpec.
type HeightField struct {
	Width   uint32
	Depth   uint32
	Samples []float64
}

// NormalMode selects how vertex normals are derived.
type NormalMode int

const (
	// NormalsSlope derives each normal from the local height gradient.
	NormalsSlope NormalMode = iota
	// NormalsUp points every normal straight up, regardless of slope.
	NormalsUp
)

// String returns the config spelling of the mode.
func (m NormalMode) String() string {
	switch m {
	case NormalsSlope:
		return "slope"
	case NormalsUp:
		return "up"
	default:
		return "unknown"
	}
}

// Options controls how a height field is turned into a mesh.
type Options struct {
	HeightScale   float64    // Multiplier applied to every elevation sample
	PhysicalScale float64    // Edge length of the mesh in model units
	Normals       NormalMode // Normal derivation
	Parallel      bool       // Sample height field rows concurrently
}

// Mesh holds the vertex and index buffers of a terrain surface, ready for
// upload as a triangle list. Lattice point (col, row) lives at buffer index
// row*(Width+1)+col.
type Mesh struct {
	Width     uint32
	Depth     uint32
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}
