package pointcloud

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"tableflip.dev/herbview/pkg/scene"
)

// SplatRecordSize is the size of one .splat record in bytes. Records are
// little-endian: three float32 position, three float32 scale, RGBA bytes and
// a quantised rotation quaternion.
const SplatRecordSize = 32

// ParseSplat reads records until EOF. A trailing partial record is an error.
func ParseSplat(r io.Reader) (*Cloud, error) {
	br := bufio.NewReaderSize(r, 64*SplatRecordSize)
	var (
		points []Point
		buf    [SplatRecordSize]byte
	)
	for i := 0; ; i++ {
		_, err := io.ReadFull(br, buf[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("pointcloud: splat record %d truncated", i)
		}
		if err != nil {
			return nil, fmt.Errorf("pointcloud: splat record %d: %w", i, err)
		}
		points = append(points, Point{
			Pos: scene.Vec3{
				X: float32At(buf[:], 0),
				Y: float32At(buf[:], 4),
				Z: float32At(buf[:], 8),
			},
			Color: rgb8(buf[24], buf[25], buf[26]),
			Alpha: float32(buf[27]) / 255,
		})
	}
	return newCloud(points), nil
}

func float32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

// EncodeSplat writes points in the .splat layout with unit scale and an
// identity rotation.
func EncodeSplat(w io.Writer, points []Point) error {
	var buf [SplatRecordSize]byte
	for _, p := range points {
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(p.Pos.X))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(p.Pos.Y))
		binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(p.Pos.Z))
		for off := 12; off < 24; off += 4 {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(1))
		}
		r, g, b := p.Color.Clamped().RGB255()
		buf[24], buf[25], buf[26] = r, g, b
		buf[27] = uint8(p.Alpha * 255)
		buf[28], buf[29], buf[30], buf[31] = 255, 128, 128, 128
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("pointcloud: write splat: %w", err)
		}
	}
	return nil
}
