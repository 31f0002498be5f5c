package mesh

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"

	"spectral-renderer/internal/mathutil"
)

// LoadObj reads an OBJ file (subset: v, vn, f with 3 vertices per face) and
// returns an unbuilt mesh. A `.lz4` suffix selects the LZ4-compressed
// reader. Face indices are 1-based on disk, texture indices are ignored.
func LoadObj(path string, shadingMode ShadingMode) (*Mesh, error) {
	var content []byte

	switch {
	case strings.HasSuffix(path, ".obj"):
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("mesh: read %s: %w", path, err)
		}
		content = data
	case strings.HasSuffix(path, ".lz4"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("mesh: open %s: %w", path, err)
		}
		defer f.Close()

		data, err := io.ReadAll(lz4.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("mesh: decompress %s: %w", path, err)
		}
		content = data
	default:
		return nil, fmt.Errorf("mesh: unknown file ending: %s", path)
	}

	var (
		vertices []mathutil.Vec3
		normals  []mathutil.Vec3
		faces    []Face
	)

	for lineNum, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("mesh: line %d: invalid line", lineNum)
		}

		switch id {
		case "v", "vn":
			vec, err := parseVec3(rest)
			if err != nil {
				return nil, fmt.Errorf("mesh: line %d: %w", lineNum, err)
			}
			if id == "v" {
				vertices = append(vertices, vec)
			} else {
				normals = append(normals, vec)
			}
		case "f":
			face, err := parseFace(rest)
			if err != nil {
				return nil, fmt.Errorf("mesh: line %d: %w", lineNum, err)
			}
			faces = append(faces, face)
		default:
			return nil, fmt.Errorf("mesh: line %d: unknown id %q, only v/vn/f are supported", lineNum, id)
		}
	}

	return New(vertices, normals, faces, shadingMode), nil
}

func parseVec3(part string) (mathutil.Vec3, error) {
	fields := strings.Fields(part)
	if len(fields) < 3 {
		return mathutil.Vec3{}, fmt.Errorf("expecting 3 floats, got %d", len(fields))
	}

	var v mathutil.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// parseFaceComponent parses "v", "v/vt" or "v/vt/vn"; the normal index
// defaults to the vertex index.
func parseFaceComponent(part string) (uint32, uint32, error) {
	split := strings.SplitN(part, "/", 3)

	v64, err := strconv.ParseUint(split[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("vertex index: %w", err)
	}
	v := uint32(v64)

	vn := v
	if len(split) == 3 && split[2] != "" {
		vn64, err := strconv.ParseUint(split[2], 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("normal index: %w", err)
		}
		vn = uint32(vn64)
	}

	return v, vn, nil
}

func parseFace(part string) (Face, error) {
	fields := strings.Fields(part)
	if len(fields) != 3 {
		return Face{}, fmt.Errorf("expecting 3 face components, got %d", len(fields))
	}

	var face Face
	for i, field := range fields {
		v, vn, err := parseFaceComponent(field)
		if err != nil {
			return Face{}, err
		}
		if v == 0 || vn == 0 {
			return Face{}, fmt.Errorf("face indices are 1-based")
		}
		face.V[i] = v - 1
		face.VN[i] = vn - 1
	}
	return face, nil
}
