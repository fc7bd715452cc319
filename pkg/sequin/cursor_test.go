package sequin

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCursorPrimitives(t *testing.T) {
	t.Run("Int32", func(t *testing.T) {
		c := NewCursor(newFixture().I32(-2).Bytes())
		v, err := c.Int32()
		if err != nil || v != -2 {
			t.Fatalf("got %d, %v", v, err)
		}
		if c.Offset() != 4 {
			t.Errorf("offset: got %d, want 4", c.Offset())
		}
	})

	t.Run("Float32", func(t *testing.T) {
		c := NewCursor(newFixture().F32(1.5).Bytes())
		v, err := c.Float32()
		if err != nil || v != 1.5 {
			t.Fatalf("got %v, %v", v, err)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		c := NewCursor([]byte{0, 1, 0x7f})
		for i, want := range []bool{false, true, true} {
			v, err := c.Bool()
			if err != nil || v != want {
				t.Errorf("byte %d: got %v, %v", i, v, err)
			}
		}
		if c.Remaining() != 0 {
			t.Errorf("remaining: got %d", c.Remaining())
		}
	})

	t.Run("ShortReadsFourByteSlot", func(t *testing.T) {
		c := NewCursor([]byte{0x34, 0x12, 0xff, 0xff, 0xaa})
		v, err := c.Short()
		if err != nil || v != 0x1234 {
			t.Fatalf("got %#x, %v", v, err)
		}
		if c.Offset() != 4 {
			t.Errorf("offset: got %d, want 4", c.Offset())
		}
	})

	t.Run("String", func(t *testing.T) {
		c := NewCursor(newFixture().Str("tunnel").Str("").Bytes())
		for _, want := range []string{"tunnel", ""} {
			v, err := c.String()
			if err != nil || v != want {
				t.Errorf("got %q, %v; want %q", v, err, want)
			}
		}
	})

	t.Run("Vector3AndColor", func(t *testing.T) {
		c := NewCursor(newFixture().Vec3(1, 2, 3).Color(0.5, 0.25, 0, 1).Bytes())
		v, err := c.Vector3()
		if err != nil || v != (mgl32.Vec3{1, 2, 3}) {
			t.Fatalf("vector: got %v, %v", v, err)
		}
		col, err := c.Color()
		if err != nil || col != (Color{0.5, 0.25, 0, 1}) {
			t.Fatalf("color: got %v, %v", col, err)
		}
	})

	t.Run("Transform", func(t *testing.T) {
		c := NewCursor(newFixture().Identity().Bytes())
		xfm, err := c.Transform()
		if err != nil {
			t.Fatal(err)
		}
		if c.Offset() != 60 {
			t.Errorf("offset: got %d, want 60", c.Offset())
		}
		if xfm.Basis() != mgl32.Ident3() {
			t.Errorf("basis: got %v", xfm.Basis())
		}
		if xfm.Scale != (mgl32.Vec3{1, 1, 1}) {
			t.Errorf("scale: got %v", xfm.Scale)
		}
	})
}

func TestCursorHash(t *testing.T) {
	c := NewCursor([]byte{0xce, 0x7e, 0x85, 0xf6})
	code, err := c.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if code.String() != "f6857ece" {
		t.Errorf("string: got %q, want %q", code, "f6857ece")
	}
	if code != CodeLeaf || !KnownObject(code) {
		t.Errorf("code %s does not dispatch to the leaf reader", code)
	}

	parsed, err := ParseTypeCode("f6857ece")
	if err != nil || parsed != code {
		t.Errorf("parse: got %s, %v", parsed, err)
	}
	if b := code.Bytes(); b != [4]byte{0xce, 0x7e, 0x85, 0xf6} {
		t.Errorf("bytes: got % x", b)
	}
}

func TestContainerCodeMatchesMagic(t *testing.T) {
	// objlib caches open with the container code, so it doubles as the magic
	if b := CodeLevelLibrary.Bytes(); b != MagicLevel {
		t.Errorf("level library bytes: got % x, want % x", b, MagicLevel)
	}
	if got := DescribeMagic(CodeLevelLibrary.Bytes()); got != "Level" {
		t.Errorf("magic name: got %q", got)
	}
}

func TestParseTypeCodeInvalid(t *testing.T) {
	for _, s := range []string{"", "f6857ec", "f6857ecez", "zzzzzzzz"} {
		if _, err := ParseTypeCode(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestCursorFilePath(t *testing.T) {
	tests := []struct {
		name     string
		root     int32
		wantBare bool
		want     string
	}{
		{"Bare", 0, true, "foo.mesh"},
		{"Rooted", 2, false, "(2, foo.mesh)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(newFixture().FilePath(tt.root, "foo.mesh").Bytes())
			p, err := c.FilePath()
			if err != nil {
				t.Fatal(err)
			}
			if p.IsBare() != tt.wantBare {
				t.Errorf("bare: got %v, want %v", p.IsBare(), tt.wantBare)
			}
			if p.Root != tt.root || p.Path != "foo.mesh" {
				t.Errorf("got %+v", p)
			}
			if p.String() != tt.want {
				t.Errorf("string: got %q, want %q", p.String(), tt.want)
			}
		})
	}
}

func TestCursorTraitPath(t *testing.T) {
	c := NewCursor(newFixture().TraitPath(
		TraitPathSegment{Member: 0x11223344, Index: NoIndex},
		TraitPathSegment{Member: 0x55667788, Index: 3},
	).Bytes())

	path, err := c.TraitPath()
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 2 {
		t.Fatalf("len: got %d, want 2", len(path))
	}
	if path[0].HasIndex() || !path[1].HasIndex() || path[1].Index != 3 {
		t.Errorf("got %+v", path)
	}
	if path.First().Member != 0x11223344 {
		t.Errorf("first: got %+v", path.First())
	}
	if first := TraitPath(nil).First(); first.HasIndex() || first.Member != 0 {
		t.Errorf("empty first: got %+v", first)
	}
}

func TestCursorErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(c *Cursor) error
		want error
	}{
		{"Int32Short", []byte{1, 2, 3}, func(c *Cursor) error { _, err := c.Int32(); return err }, ErrTruncated},
		{"BoolEmpty", nil, func(c *Cursor) error { _, err := c.Bool(); return err }, ErrTruncated},
		{"ShortShort", []byte{1, 2}, func(c *Cursor) error { _, err := c.Short(); return err }, ErrTruncated},
		{"StringPastEnd", newFixture().I32(10).Raw('a', 'b').Bytes(), func(c *Cursor) error { _, err := c.String(); return err }, ErrTruncated},
		{"StringNegativeLength", newFixture().I32(-1).Bytes(), func(c *Cursor) error { _, err := c.String(); return err }, ErrTruncated},
		{"StringInvalidUTF8", newFixture().I32(2).Raw(0xff, 0xfe).Bytes(), func(c *Cursor) error { _, err := c.String(); return err }, ErrInvalidText},
		{"TransformShort", newFixture().Vec3(1, 2, 3).Bytes(), func(c *Cursor) error { _, err := c.Transform(); return err }, ErrTruncated},
		{"FilePathShort", newFixture().I32(0).I32(8).Raw('f').Bytes(), func(c *Cursor) error { _, err := c.FilePath(); return err }, ErrTruncated},
		{"TraitPathCount", newFixture().I32(1000).Bytes(), func(c *Cursor) error { _, err := c.TraitPath(); return err }, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			err := tt.read(c)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if c.Offset() != 0 {
				t.Errorf("cursor advanced to %d on failure", c.Offset())
			}
		})
	}
}

func TestCursorCount(t *testing.T) {
	t.Run("NegativeIsEmpty", func(t *testing.T) {
		c := NewCursor(newFixture().I32(-5).Bytes())
		n, err := c.Count(4, "list")
		if err != nil || n != 0 {
			t.Fatalf("got %d, %v", n, err)
		}
		if c.Offset() != 4 {
			t.Errorf("offset: got %d, want 4", c.Offset())
		}
	})

	t.Run("FitsRemaining", func(t *testing.T) {
		c := NewCursor(newFixture().I32(2).I32(0).I32(0).Bytes())
		n, err := c.Count(4, "list")
		if err != nil || n != 2 {
			t.Fatalf("got %d, %v", n, err)
		}
	})

	t.Run("ExceedsRemaining", func(t *testing.T) {
		c := NewCursor(newFixture().I32(3).I32(0).I32(0).Bytes())
		_, err := c.Count(4, "list")
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("got %v, want truncated", err)
		}
		if c.Offset() != 0 {
			t.Errorf("offset: got %d, want 0", c.Offset())
		}
	})
}
