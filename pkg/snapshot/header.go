// Package snapshot stores emitted decoder records as zstd-compressed
// regression snapshots and compares fresh output against them.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic identifies a snapshot file.
var Magic = [4]byte{'S', 'Q', 'S', 'N'}

// RecordVersion is the version of the record text layout. Bump it whenever
// the emitter output changes shape, so stale snapshots are rejected instead of
// reported as line mismatches.
const RecordVersion = 1

// HeaderSize is the fixed binary size of a snapshot header.
const HeaderSize = 24

// MaxRecordSize bounds the record text a snapshot may declare.
const MaxRecordSize = 256 << 20

var (
	ErrBadMagic = errors.New("not a snapshot")
	ErrVersion  = errors.New("unsupported record version")
	ErrTooLarge = errors.New("record too large")
)

// Header precedes the compressed record text:
//
//	0   magic "SQSN"
//	4   uint16 record version
//	6   int16 zstd level of the stream
//	8   uint64 record text size
//	16  uint64 zstd stream size
type Header struct {
	Version          uint16
	Level            int16
	Length           uint64
	CompressedLength uint64
}

// Validate checks the header for validity.
func (h Header) Validate() error {
	switch {
	case h.Version != RecordVersion:
		return fmt.Errorf("%w: %d, this build reads %d", ErrVersion, h.Version, RecordVersion)
	case h.Length == 0:
		return errors.New("record length is zero")
	case h.Length > MaxRecordSize:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, h.Length, MaxRecordSize)
	case h.CompressedLength == 0:
		return errors.New("compressed length is zero")
	case h.CompressedLength > MaxRecordSize:
		return fmt.Errorf("%w: %d compressed bytes, limit %d", ErrTooLarge, h.CompressedLength, MaxRecordSize)
	}
	return nil
}

// AppendBinary appends the encoded header to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, Magic[:]...)
	b = binary.LittleEndian.AppendUint16(b, h.Version)
	b = binary.LittleEndian.AppendUint16(b, uint16(h.Level))
	b = binary.LittleEndian.AppendUint64(b, h.Length)
	return binary.LittleEndian.AppendUint64(b, h.CompressedLength), nil
}

// ParseHeader decodes and validates the header at the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(b))
	}
	if [4]byte(b[:4]) != Magic {
		return Header{}, fmt.Errorf("%w: magic %q", ErrBadMagic, b[:4])
	}
	h := Header{
		Version:          binary.LittleEndian.Uint16(b[4:]),
		Level:            int16(binary.LittleEndian.Uint16(b[6:])),
		Length:           binary.LittleEndian.Uint64(b[8:]),
		CompressedLength: binary.LittleEndian.Uint64(b[16:]),
	}
	return h, h.Validate()
}
