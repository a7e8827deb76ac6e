// Package formats reads and writes terrain mesh and heightmap assets.
package formats

// Note: TMSH (binary terrain mesh) is implemented in tmsh.go
// Note: Wavefront OBJ export is implemented in obj.go
// Note: BMP heightmap export is implemented in heightmap.go
