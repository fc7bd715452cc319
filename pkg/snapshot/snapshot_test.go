package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestHeader(t *testing.T) {
	t.Run("AppendParse", func(t *testing.T) {
		original := Header{
			Version:          RecordVersion,
			Level:            -3,
			Length:           1024,
			CompressedLength: 512,
		}

		data, err := original.AppendBinary([]byte("x"))
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if len(data) != 1+HeaderSize {
			t.Fatalf("size: got %d, want %d", len(data), 1+HeaderSize)
		}
		if string(data[1:5]) != "SQSN" {
			t.Errorf("magic: got %q", data[1:5])
		}

		decoded, err := ParseHeader(data[1:])
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if decoded != original {
			t.Errorf("mismatch: got %+v, want %+v", decoded, original)
		}
	})

	valid := Header{Version: RecordVersion, Length: 1, CompressedLength: 1}
	tests := []struct {
		name   string
		modify func(h *Header)
		want   error
	}{
		{"StaleVersion", func(h *Header) { h.Version = RecordVersion + 1 }, ErrVersion},
		{"ZeroVersion", func(h *Header) { h.Version = 0 }, ErrVersion},
		{"ZeroLength", func(h *Header) { h.Length = 0 }, nil},
		{"ZeroCompressedLength", func(h *Header) { h.CompressedLength = 0 }, nil},
		{"HugeLength", func(h *Header) { h.Length = 1 << 62 }, ErrTooLarge},
		{"HugeCompressedLength", func(h *Header) { h.CompressedLength = 1 << 63 }, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.modify(&h)
			err := h.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("BadMagic", func(t *testing.T) {
		data, _ := valid.AppendBinary(nil)
		copy(data, "ZSTD")
		if _, err := ParseHeader(data); !errors.Is(err, ErrBadMagic) {
			t.Errorf("got %v, want bad magic", err)
		}
	})

	t.Run("ShortData", func(t *testing.T) {
		if _, err := ParseHeader(make([]byte, HeaderSize-1)); err == nil {
			t.Error("expected error for short header")
		}
	})
}

func TestEncodeReadAll(t *testing.T) {
	text := []byte("{\n\t'obj_type': 'SequinLeaf',\n\t'obj_name': 'sample.leaf',\n\t'beat_cnt': 8,\n}")

	t.Run("RoundTrip", func(t *testing.T) {
		ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
		if err := Encode(ws, text); err != nil {
			t.Fatalf("encode: %v", err)
		}

		got, err := ReadAll(bytes.NewReader(ws.Bytes()))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !bytes.Equal(got, text) {
			t.Errorf("text mismatch: got %q, want %q", got, text)
		}
	})

	t.Run("HeaderPatched", func(t *testing.T) {
		ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
		if err := Encode(ws, text, WithCompressionLevel(1)); err != nil {
			t.Fatalf("encode: %v", err)
		}

		h, err := ParseHeader(ws.Bytes())
		if err != nil {
			t.Fatalf("header: %v", err)
		}
		if h.Level != 1 {
			t.Errorf("level: got %d, want 1", h.Level)
		}
		if h.Length != uint64(len(text)) {
			t.Errorf("length: got %d, want %d", h.Length, len(text))
		}
		if want := uint64(ws.Len() - HeaderSize); h.CompressedLength != want {
			t.Errorf("compressed length: got %d, want %d", h.CompressedLength, want)
		}
	})

	t.Run("TrailingData", func(t *testing.T) {
		ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
		if err := Encode(ws, text); err != nil {
			t.Fatalf("encode: %v", err)
		}
		ws.WriteString("trailing garbage")

		got, err := ReadAll(bytes.NewReader(ws.Bytes()))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !bytes.Equal(got, text) {
			t.Errorf("text mismatch: got %q", got)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := ReadAll(strings.NewReader("SQSN"))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("got %v, want unexpected EOF", err)
		}
	})

	t.Run("HugeDeclaredLength", func(t *testing.T) {
		data, _ := Header{Version: RecordVersion, Length: 1 << 62, CompressedLength: 1}.AppendBinary(nil)
		_, err := ReadAll(bytes.NewReader(append(data, 'x')))
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("got %v, want %v", err, ErrTooLarge)
		}
	})

	t.Run("StreamShorterThanDeclared", func(t *testing.T) {
		ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
		if err := Encode(ws, text); err != nil {
			t.Fatalf("encode: %v", err)
		}
		data := ws.Bytes()
		binary.LittleEndian.PutUint64(data[8:], uint64(len(text)+100))

		_, err := ReadAll(bytes.NewReader(data))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("got %v, want unexpected EOF", err)
		}
	})

	t.Run("RecordTooLarge", func(t *testing.T) {
		ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
		if _, err := NewWriter(ws, MaxRecordSize+1); !errors.Is(err, ErrTooLarge) {
			t.Errorf("got %v, want %v", err, ErrTooLarge)
		}
		if ws.Len() != 0 {
			t.Errorf("wrote %d bytes", ws.Len())
		}
	})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		fresh     string
		wantLine  int
		wantShort bool
	}{
		{"Identical", "{\n\t'a': 1,\n}", "{\n\t'a': 1,\n}", 0, false},
		{"ChangedLine", "{\n\t'a': 1,\n}", "{\n\t'a': 2,\n}", 2, false},
		{"FreshLonger", "{\n}", "{\n}\n", 3, true},
		{"FreshShorter", "[\n\t1,\n]", "[\n\t1,", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare([]byte(tt.stored), []byte(tt.fresh))
			if tt.wantLine == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var mismatch *MismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("got %v, want *MismatchError", err)
			}
			if mismatch.Line != tt.wantLine {
				t.Errorf("line: got %d, want %d", mismatch.Line, tt.wantLine)
			}
			if mismatch.Short != tt.wantShort {
				t.Errorf("short: got %v, want %v", mismatch.Short, tt.wantShort)
			}
		})
	}
}

type seekableBuffer struct {
	*bytes.Buffer
	pos int64
}

func (s *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(s.Buffer.Len()) + offset
	}
	return s.pos, nil
}

func (s *seekableBuffer) Write(p []byte) (n int, err error) {
	for int64(s.Buffer.Len()) < s.pos {
		s.Buffer.WriteByte(0)
	}
	if s.pos < int64(s.Buffer.Len()) {
		data := s.Buffer.Bytes()
		n = copy(data[s.pos:], p)
		if n < len(p) {
			m, err := s.Buffer.Write(p[n:])
			n += m
			if err != nil {
				return n, err
			}
		}
	} else {
		n, err = s.Buffer.Write(p)
	}
	s.pos += int64(n)
	return n, err
}
