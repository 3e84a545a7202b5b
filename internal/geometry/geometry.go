package geometry

import (
	"math"
	"strconv"
	"strings"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/mapscan"
)

// Vec3 is a point or offset in map units.
type Vec3 struct {
	X, Y, Z float64
}

// ParseVec3 parses three space- or comma-separated numbers. It returns the
// zero vector and false when fewer than three fields parse.
func ParseVec3(s string) (Vec3, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) < 3 {
		return Vec3{}, false
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Vec3{}, false
		}
		out[i] = v
	}
	return Vec3{X: out[0], Y: out[1], Z: out[2]}, true
}

// RotateYaw rotates p about the z axis by yaw degrees, then adds offset.
// Z passes through untouched apart from the offset.
func RotateYaw(p Vec3, yawDegrees float64, offset Vec3) Vec3 {
	sin, cos := math.Sincos(yawDegrees * math.Pi / 180)
	return Vec3{
		X: p.X*cos - p.Y*sin + offset.X,
		Y: p.X*sin + p.Y*cos + offset.Y,
		Z: p.Z + offset.Z,
	}
}

// FormatCoord renders a coordinate with six decimal places, then strips
// trailing zeros and a dangling decimal point so integral values print bare.
func FormatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// TransformFaceLine applies the yaw and offset to the first three point
// triples of a face line and re-renders only those triples. Everything after
// the third triple, texture token and numeric tail included, is preserved
// verbatim. Lines that are not strict face lines come back unchanged.
func TransformFaceLine(line string, yawDegrees float64, offset Vec3) string {
	face, ok := mapscan.ParseFace(line)
	if !ok {
		return line
	}
	var sb strings.Builder
	sb.Grow(len(line) + 16)
	sb.WriteString(line[:face.Start])
	for i, p := range face.Points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v := RotateYaw(Vec3{X: p[0], Y: p[1], Z: p[2]}, yawDegrees, offset)
		sb.WriteString("( ")
		sb.WriteString(FormatCoord(v.X))
		sb.WriteByte(' ')
		sb.WriteString(FormatCoord(v.Y))
		sb.WriteByte(' ')
		sb.WriteString(FormatCoord(v.Z))
		sb.WriteString(" )")
	}
	sb.WriteString(line[face.End:])
	return sb.String()
}
