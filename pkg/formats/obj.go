package formats

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the mesh as a Wavefront OBJ with positions, texture
// coordinates and normals. Face indices are 1-based and share one index
// across all three attributes.
func WriteOBJ(w io.Writer, t *TMSH) error {
	if err := t.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# terrain %dx%d\n", t.Width, t.Depth)
	fmt.Fprintf(bw, "# vertices %d triangles %d\n", len(t.Positions), len(t.Indices)/3)
	fmt.Fprintln(bw, "o terrain")

	for _, p := range t.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, uv := range t.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, n := range t.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	for i := 0; i+2 < len(t.Indices); i += 3 {
		a, b, c := t.Indices[i]+1, t.Indices[i+1]+1, t.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}
