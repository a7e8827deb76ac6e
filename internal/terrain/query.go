package terrain

// HeightAt returns the terrain height at model-space (x, z), bilinearly
// interpolated between the four lattice points of the containing cell.
// ok is false when the point lies outside the mesh footprint.
func (m *Mesh) HeightAt(x, z float32) (height float32, ok bool) {
	if m.Width == 0 || m.Depth == 0 || len(m.Positions) != VertexCount(GridSpec{Width: m.Width, Depth: m.Depth}) {
		return 0, false
	}

	// Lattice corners give the footprint; positions are regular along X and Z.
	minX := m.Positions[0].X()
	minZ := m.Positions[0].Z()
	maxX := m.Positions[LatticeIndex(m.Width, 0, m.Width)].X()
	maxZ := m.Positions[LatticeIndex(0, m.Depth, m.Width)].Z()

	if x < minX || x > maxX || z < minZ || z > maxZ {
		return 0, false
	}

	// Convert to fractional lattice coordinates
	cellFX := (x - minX) / (maxX - minX) * float32(m.Width)
	cellFZ := (z - minZ) / (maxZ - minZ) * float32(m.Depth)

	col := uint32(cellFX)
	row := uint32(cellFZ)
	if col >= m.Width {
		col = m.Width - 1
	}
	if row >= m.Depth {
		row = m.Depth - 1
	}

	fracX := clampf(cellFX-float32(col), 0, 1)
	fracZ := clampf(cellFZ-float32(row), 0, 1)

	h00 := m.Positions[LatticeIndex(col, row, m.Width)].Y()
	h10 := m.Positions[LatticeIndex(col+1, row, m.Width)].Y()
	h01 := m.Positions[LatticeIndex(col, row+1, m.Width)].Y()
	h11 := m.Positions[LatticeIndex(col+1, row+1, m.Width)].Y()

	near := h00*(1-fracX) + h10*fracX
	far := h01*(1-fracX) + h11*fracX
	return near*(1-fracZ) + far*fracZ, true
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
