package sequin

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// TypeCode identifies an object, component or container kind. On the wire it
// is 4 bytes stored in reverse order; the logical value is those bytes read
// little-endian. It is only ever used as a dispatch key.
type TypeCode uint32

// TypeCodeFromBytes builds a TypeCode from 4 bytes in file order.
func TypeCodeFromBytes(b [4]byte) TypeCode {
	return TypeCode(binary.LittleEndian.Uint32(b[:]))
}

// ParseTypeCode parses the lowercase hex rendering produced by String.
func ParseTypeCode(s string) (TypeCode, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("type code %q: want 8 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("type code %q: %w", s, err)
	}
	return TypeCode(v), nil
}

// Bytes returns the code in file order.
func (t TypeCode) Bytes() [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(t))
	return b
}

// String renders the code as 8 lowercase hex digits.
func (t TypeCode) String() string {
	return fmt.Sprintf("%08x", uint32(t))
}

// Color is an RGBA color with float components.
type Color = mgl32.Vec4

// Transform is a position, three basis rows and a scale.
type Transform struct {
	Position mgl32.Vec3
	RotX     mgl32.Vec3
	RotY     mgl32.Vec3
	RotZ     mgl32.Vec3
	Scale    mgl32.Vec3
}

// Basis returns the three rotation rows as a matrix.
func (t Transform) Basis() mgl32.Mat3 {
	return mgl32.Mat3FromRows(t.RotX, t.RotY, t.RotZ)
}

// FilePath is a path relative to an entry of the game's path root table.
// Root 0 means the path is used as-is.
type FilePath struct {
	Root int32
	Path string
}

// IsBare reports whether the path has no root table indirection.
func (p FilePath) IsBare() bool {
	return p.Root == 0
}

func (p FilePath) String() string {
	if p.IsBare() {
		return p.Path
	}
	return fmt.Sprintf("(%d, %s)", p.Root, p.Path)
}

// NoIndex marks a trait path segment that does not index into a collection.
const NoIndex int32 = -1

// TraitPathSegment is one member access of a TraitPath.
type TraitPathSegment struct {
	Member TypeCode
	Index  int32
}

// HasIndex reports whether the segment carries an index.
func (s TraitPathSegment) HasIndex() bool {
	return s.Index != NoIndex
}

// TraitPath is a field-access path into the game's object graph.
type TraitPath []TraitPathSegment

// First returns the leading segment, or a zero segment with no index when the
// path is empty.
func (p TraitPath) First() TraitPathSegment {
	if len(p) == 0 {
		return TraitPathSegment{Index: NoIndex}
	}
	return p[0]
}
