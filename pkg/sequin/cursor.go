package sequin

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
)

// Cursor is a forward-only reader over one in-memory buffer. Every read
// advances by exactly the width of the construct it decodes; a read that would
// run past the end fails with ErrTruncated and leaves the offset unchanged.
//
// A Cursor is not safe for concurrent use. Objects in one file must be decoded
// in order over a single Cursor.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Rest returns the unread bytes without advancing.
func (c *Cursor) Rest() []byte {
	return c.data[c.pos:]
}

func (c *Cursor) fail(kind Kind, construct, detail string) *DecodeError {
	return &DecodeError{
		Kind:      kind,
		Offset:    c.pos,
		Construct: construct,
		Detail:    detail,
	}
}

// take returns the next n bytes and advances past them.
func (c *Cursor) take(n int, construct string) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, c.fail(KindTruncated, construct, "")
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Bytes reads n raw bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n, "bytes")
}

// Int32 reads a little-endian int32.
func (c *Cursor) Int32() (int32, error) {
	b, err := c.take(4, "int32")
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// Short reads an int16 stored in a 4-byte slot. Only the low two bytes carry
// the value; the slot width is preserved as observed in mesh face data.
func (c *Cursor) Short() (int16, error) {
	b, err := c.take(4, "short")
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// Float32 reads a little-endian IEEE 754 float.
func (c *Cursor) Float32() (float32, error) {
	b, err := c.take(4, "float32")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// Bool reads a single byte. Any non-zero value is true.
func (c *Cursor) Bool() (bool, error) {
	b, err := c.take(1, "bool")
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// String reads an int32 length followed by that many bytes of UTF-8 text.
func (c *Cursor) String() (string, error) {
	start := c.pos
	size, err := c.Int32()
	if err != nil {
		return "", err
	}
	if size < 0 {
		c.pos = start
		return "", c.fail(KindTruncated, "string", "negative length")
	}
	b, err := c.take(int(size), "string")
	if err != nil {
		c.pos = start
		return "", err
	}
	if !utf8.Valid(b) {
		c.pos = start
		return "", c.fail(KindInvalidText, "string", "")
	}
	return string(b), nil
}

// Hash reads a 4-byte type code.
func (c *Cursor) Hash() (TypeCode, error) {
	b, err := c.take(4, "hash")
	if err != nil {
		return 0, err
	}
	return TypeCode(binary.LittleEndian.Uint32(b)), nil
}

// Vector3 reads three floats.
func (c *Cursor) Vector3() (mgl32.Vec3, error) {
	b, err := c.take(12, "vector3")
	if err != nil {
		return mgl32.Vec3{}, err
	}
	var v mgl32.Vec3
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

// Color reads four floats in r, g, b, a order.
func (c *Cursor) Color() (Color, error) {
	b, err := c.take(16, "color")
	if err != nil {
		return Color{}, err
	}
	var v Color
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

// Transform reads position, the three basis rows and scale.
func (c *Cursor) Transform() (Transform, error) {
	if c.Remaining() < 60 {
		return Transform{}, c.fail(KindTruncated, "transform", "")
	}
	var t Transform
	for _, dst := range []*mgl32.Vec3{&t.Position, &t.RotX, &t.RotY, &t.RotZ, &t.Scale} {
		*dst, _ = c.Vector3()
	}
	return t, nil
}

// FilePath reads a path root index followed by a string.
func (c *Cursor) FilePath() (FilePath, error) {
	start := c.pos
	root, err := c.Int32()
	if err != nil {
		return FilePath{}, err
	}
	path, err := c.String()
	if err != nil {
		c.pos = start
		return FilePath{}, err
	}
	return FilePath{Root: root, Path: path}, nil
}

// TraitPath reads a count-prefixed list of (member, index) segments.
func (c *Cursor) TraitPath() (TraitPath, error) {
	n, err := c.Count(8, "trait path")
	if err != nil {
		return nil, err
	}
	path := make(TraitPath, 0, n)
	for range n {
		member, _ := c.Hash()
		index, _ := c.Int32()
		path = append(path, TraitPathSegment{Member: member, Index: index})
	}
	return path, nil
}

// Count reads an int32 list count and validates it against the remaining
// buffer given the minimum encoded size of one element. Negative counts read
// as empty lists.
func (c *Cursor) Count(minElem int, construct string) (int, error) {
	start := c.pos
	n, err := c.Int32()
	if err != nil {
		return 0, err
	}
	return c.checkCount(start, n, minElem, construct)
}

// checkCount validates a count already read at offset start, rewinding to
// start when it cannot fit.
func (c *Cursor) checkCount(start int, n int32, minElem int, construct string) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	if minElem > 0 && int(n) > c.Remaining()/minElem {
		c.pos = start
		return 0, c.fail(KindTruncated, construct, "count exceeds remaining bytes")
	}
	return int(n), nil
}
