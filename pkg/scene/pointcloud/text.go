package pointcloud

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseXYZ reads "x y z [r g b]" lines. Colours are 0-255 integers. Blank
// lines and lines starting with # are skipped.
func ParseXYZ(r io.Reader) (*Cloud, error) {
	sc := bufio.NewScanner(r)
	var points []Point
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		p, err := parsePoint(fields, 0, 1, 2, 3, 4, 5)
		if err != nil {
			return nil, fmt.Errorf("pointcloud: xyz %w", lineError(n, err))
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointcloud: xyz: %w", err)
	}
	return newCloud(points), nil
}

// ParsePLY reads ASCII PLY. Only the vertex element is used; its x, y, z
// and optional red, green, blue (or r, g, b) properties become points.
func ParsePLY(r io.Reader) (*Cloud, error) {
	sc := bufio.NewScanner(r)
	n := 0
	next := func() (string, bool) {
		for sc.Scan() {
			n++
			if line := strings.TrimSpace(sc.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}

	if line, ok := next(); !ok || line != "ply" {
		return nil, errors.New("pointcloud: ply: missing magic")
	}

	var (
		vertices   = -1
		props      = map[string]int{}
		propCount  int
		inVertex   bool
		seenFormat bool
	)
	for {
		line, ok := next()
		if !ok {
			return nil, errors.New("pointcloud: ply: missing end_header")
		}
		if line == "end_header" {
			break
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, fmt.Errorf("pointcloud: ply: unsupported format %q", strings.Join(fields[1:], " "))
			}
			seenFormat = true
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("pointcloud: ply %w", lineError(n, errors.New("malformed element")))
			}
			inVertex = fields[1] == "vertex"
			if inVertex {
				count, err := strconv.Atoi(fields[2])
				if err != nil || count < 0 {
					return nil, fmt.Errorf("pointcloud: ply %w", lineError(n, errors.New("bad vertex count")))
				}
				vertices = count
			}
		case "property":
			if inVertex {
				props[fields[len(fields)-1]] = propCount
				propCount++
			}
		}
	}
	if !seenFormat {
		return nil, errors.New("pointcloud: ply: missing format")
	}
	if vertices < 0 {
		return nil, errors.New("pointcloud: ply: no vertex element")
	}
	ix, okx := props["x"]
	iy, oky := props["y"]
	iz, okz := props["z"]
	if !okx || !oky || !okz {
		return nil, errors.New("pointcloud: ply: vertex lacks x, y or z")
	}
	ir, ig, ib := colorIndex(props)

	points := make([]Point, 0, vertices)
	for len(points) < vertices {
		line, ok := next()
		if !ok {
			return nil, fmt.Errorf("pointcloud: ply: expected %d vertices, got %d", vertices, len(points))
		}
		p, err := parsePoint(strings.Fields(line), ix, iy, iz, ir, ig, ib)
		if err != nil {
			return nil, fmt.Errorf("pointcloud: ply %w", lineError(n, err))
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointcloud: ply: %w", err)
	}
	return newCloud(points), nil
}

func colorIndex(props map[string]int) (r, g, b int) {
	r, g, b = -1, -1, -1
	for _, names := range [][3]string{{"red", "green", "blue"}, {"r", "g", "b"}} {
		ir, okr := props[names[0]]
		ig, okg := props[names[1]]
		ib, okb := props[names[2]]
		if okr && okg && okb {
			return ir, ig, ib
		}
	}
	return r, g, b
}

// parsePoint reads a point from fields using the given column indexes. A
// negative or missing colour column leaves the point in DefaultColor.
func parsePoint(fields []string, ix, iy, iz, ir, ig, ib int) (Point, error) {
	coord := func(i int) (float32, error) {
		if i >= len(fields) {
			return 0, fmt.Errorf("missing column %d", i+1)
		}
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return 0, fmt.Errorf("column %d: %w", i+1, err)
		}
		return float32(v), nil
	}
	var (
		p   = Point{Color: DefaultColor, Alpha: 1}
		err error
	)
	if p.Pos.X, err = coord(ix); err != nil {
		return p, err
	}
	if p.Pos.Y, err = coord(iy); err != nil {
		return p, err
	}
	if p.Pos.Z, err = coord(iz); err != nil {
		return p, err
	}
	if ir < 0 || ig < 0 || ib < 0 || ir >= len(fields) || ig >= len(fields) || ib >= len(fields) {
		return p, nil
	}
	var c [3]uint8
	for k, i := range []int{ir, ig, ib} {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return p, fmt.Errorf("column %d: %w", i+1, err)
		}
		c[k] = uint8(v)
	}
	p.Color = rgb8(c[0], c[1], c[2])
	return p, nil
}
