package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// TMSH format errors.
var (
	ErrInvalidTMSHMagic       = errors.New("invalid TMSH magic: expected 'TMSH'")
	ErrUnsupportedTMSHVersion = errors.New("unsupported TMSH version")
	ErrTruncatedTMSHData      = errors.New("truncated TMSH data")
	ErrCorruptTMSHData        = errors.New("corrupt TMSH data")
)

const (
	tmshMagic      = "TMSH"
	tmshHeaderSize = 46
)

// TMSHVersion represents the TMSH file version.
type TMSHVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TMSHVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentTMSHVersion is the version written by Encode.
var CurrentTMSHVersion = TMSHVersion{Major: 1, Minor: 0}

// TMSH is a grid terrain mesh asset: parallel vertex attribute arrays over a
// (Width+1)x(Depth+1) lattice plus a triangle-list index buffer.
//
// Layout (little endian):
//
//	magic "TMSH" | major u8 | minor u8 | width u32 | depth u32
//	vertexCount u32 | indexCount u32 | boundsMin 3xf32 | boundsMax 3xf32
//	positions vertexCount x 3xf32 | normals vertexCount x 3xf32
//	uvs vertexCount x 2xf32 | indices indexCount x u32
type TMSH struct {
	Version   TMSHVersion
	Width     uint32
	Depth     uint32
	BoundsMin [3]float32
	BoundsMax [3]float32
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// Validate checks that the buffers are consistent with the grid dimensions
// and that every index addresses a vertex.
func (t *TMSH) Validate() error {
	if t.Width == 0 || t.Depth == 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrCorruptTMSHData, t.Width, t.Depth)
	}

	vertexCount := (uint64(t.Width) + 1) * (uint64(t.Depth) + 1)
	indexCount := uint64(t.Width) * uint64(t.Depth) * 6

	if uint64(len(t.Positions)) != vertexCount {
		return fmt.Errorf("%w: %d positions, want %d", ErrCorruptTMSHData, len(t.Positions), vertexCount)
	}
	if len(t.Normals) != len(t.Positions) || len(t.UVs) != len(t.Positions) {
		return fmt.Errorf("%w: attribute lengths differ (positions %d, normals %d, uvs %d)",
			ErrCorruptTMSHData, len(t.Positions), len(t.Normals), len(t.UVs))
	}
	if uint64(len(t.Indices)) != indexCount {
		return fmt.Errorf("%w: %d indices, want %d", ErrCorruptTMSHData, len(t.Indices), indexCount)
	}
	for i, idx := range t.Indices {
		if uint64(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d references vertex %d of %d", ErrCorruptTMSHData, i, idx, vertexCount)
		}
	}
	return nil
}

// Encode serializes the mesh.
func (t *TMSH) Encode() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.Grow(tmshHeaderSize + len(t.Positions)*32 + len(t.Indices)*4)

	buf.WriteString(tmshMagic)
	buf.WriteByte(CurrentTMSHVersion.Major)
	buf.WriteByte(CurrentTMSHVersion.Minor)

	// bytes.Buffer writes cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, t.Width)
	_ = binary.Write(buf, binary.LittleEndian, t.Depth)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(t.Positions)))
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(t.Indices)))
	_ = binary.Write(buf, binary.LittleEndian, t.BoundsMin)
	_ = binary.Write(buf, binary.LittleEndian, t.BoundsMax)
	_ = binary.Write(buf, binary.LittleEndian, t.Positions)
	_ = binary.Write(buf, binary.LittleEndian, t.Normals)
	_ = binary.Write(buf, binary.LittleEndian, t.UVs)
	_ = binary.Write(buf, binary.LittleEndian, t.Indices)

	return buf.Bytes(), nil
}

// Save writes the encoded mesh to path.
func (t *TMSH) Save(path string) error {
	data, err := t.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTMSH reads and parses a TMSH file from disk.
func LoadTMSH(path string) (*TMSH, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TMSH file: %w", err)
	}
	return ParseTMSH(data)
}

// ParseTMSH parses a TMSH file from raw bytes.
func ParseTMSH(data []byte) (*TMSH, error) {
	if len(data) < tmshHeaderSize {
		return nil, ErrTruncatedTMSHData
	}

	if string(data[0:4]) != tmshMagic {
		return nil, ErrInvalidTMSHMagic
	}

	version := TMSHVersion{Major: data[4], Minor: data[5]}
	if version.Major != CurrentTMSHVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTMSHVersion, version)
	}

	r := bytes.NewReader(data[6:])
	t := &TMSH{Version: version}

	var vertexCount, indexCount uint32
	header := []struct {
		name string
		dst  any
	}{
		{"width", &t.Width},
		{"depth", &t.Depth},
		{"vertex count", &vertexCount},
		{"index count", &indexCount},
		{"bounds min", &t.BoundsMin},
		{"bounds max", &t.BoundsMax},
	}
	for _, field := range header {
		if err := binary.Read(r, binary.LittleEndian, field.dst); err != nil {
			return nil, fmt.Errorf("%w: reading %s", ErrTruncatedTMSHData, field.name)
		}
	}

	// Check the payload size before allocating so a corrupt header cannot
	// request gigabytes.
	want := uint64(vertexCount)*(12+12+8) + uint64(indexCount)*4
	if uint64(r.Len()) < want {
		return nil, fmt.Errorf("%w: payload has %d bytes, header needs %d", ErrTruncatedTMSHData, r.Len(), want)
	}

	t.Positions = make([]mgl32.Vec3, vertexCount)
	t.Normals = make([]mgl32.Vec3, vertexCount)
	t.UVs = make([]mgl32.Vec2, vertexCount)
	t.Indices = make([]uint32, indexCount)

	payload := []struct {
		name string
		dst  any
	}{
		{"positions", t.Positions},
		{"normals", t.Normals},
		{"uvs", t.UVs},
		{"indices", t.Indices},
	}
	for _, field := range payload {
		if err := binary.Read(r, binary.LittleEndian, field.dst); err != nil {
			return nil, fmt.Errorf("%w: reading %s", ErrTruncatedTMSHData, field.name)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
