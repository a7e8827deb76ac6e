package formats

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, createTestTMSH()); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	counts := map[string]int{}
	var faces []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "f" {
			faces = append(faces, line)
		}
	}

	if counts["v"] != 4 || counts["vt"] != 4 || counts["vn"] != 4 {
		t.Errorf("expected 4 v/vt/vn lines, got %d/%d/%d", counts["v"], counts["vt"], counts["vn"])
	}
	if len(faces) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(faces))
	}

	// Indices are 1-based in OBJ.
	if faces[0] != "f 1/1/1 3/3/3 4/4/4" {
		t.Errorf("unexpected first face %q", faces[0])
	}
	if faces[1] != "f 1/1/1 4/4/4 2/2/2" {
		t.Errorf("unexpected second face %q", faces[1])
	}

	if !strings.Contains(buf.String(), "v 0.5 0.25 -0.5\n") {
		t.Error("expected second vertex position in output")
	}
}

func TestWriteOBJ_Invalid(t *testing.T) {
	m := createTestTMSH()
	m.Indices = m.Indices[:4]

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err == nil {
		t.Error("expected error for invalid mesh")
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written for invalid mesh")
	}
}
