package terrain

import (
	"fmt"
	"math"
)

// maxVertices is the number of vertices addressable by a uint32 index buffer.
const maxVertices = uint64(math.MaxUint32) + 1

// Validate reports whether the grid can be triangulated.
// A grid needs at least one cell along each axis, and every lattice point
// must be addressable by a uint32 index.
func (g GridSpec) Validate() error {
	if g.Width == 0 {
		return fmt.Errorf("%w: width must be > 0", ErrInvalidGridSpec)
	}
	if g.Depth == 0 {
		return fmt.Errorf("%w: depth must be > 0", ErrInvalidGridSpec)
	}
	cols, rows := uint64(g.Width)+1, uint64(g.Depth)+1
	if cols > maxVertices/rows {
		return fmt.Errorf("%w: %dx%d grid exceeds %d vertices", ErrInvalidGridSpec, g.Width, g.Depth, maxVertices)
	}
	return nil
}

// VertexCount returns the number of lattice points, (width+1)*(depth+1).
func VertexCount(g GridSpec) int {
	return (int(g.Width) + 1) * (int(g.Depth) + 1)
}

// TriangleIndexCount returns the index buffer length: two triangles of
// three indices per cell.
func TriangleIndexCount(g GridSpec) int {
	return int(g.Width) * int(g.Depth) * 6
}

// LatticeIndex maps lattice point (col, row) to its row-major buffer index.
func LatticeIndex(col, row, width uint32) uint32 {
	return row*(width+1) + col
}

// SampleCoord maps lattice coordinate i in [0, n] onto [-extent, extent].
// Both ends of the range are hit exactly.
func SampleCoord(i, n uint32, extent float64) float64 {
	t := float64(i) / float64(n)
	return extent * (2*t - 1)
}
