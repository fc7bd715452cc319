package snapshot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// Reader decompresses the record text of a snapshot.
type Reader struct {
	header  Header
	zReader io.ReadCloser
}

// NewReader reads and validates the snapshot header from r.
func NewReader(r io.Reader) (*Reader, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := ParseHeader(buf[:])
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	return &Reader{
		header:  h,
		zReader: zstd.NewReader(io.LimitReader(r, int64(h.CompressedLength))),
	}, nil
}

// Header returns the snapshot header.
func (r *Reader) Header() Header {
	return r.header
}

// Read reads decompressed record text.
func (r *Reader) Read(p []byte) (int, error) {
	return r.zReader.Read(p)
}

// Close releases the decompressor.
func (r *Reader) Close() error {
	return r.zReader.Close()
}

// ReadAll returns the full record text of a snapshot. The stream must hold
// exactly the declared length; text past it is ignored.
func ReadAll(r io.Reader) ([]byte, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var text bytes.Buffer
	n, err := io.Copy(&text, io.LimitReader(reader, int64(reader.header.Length)))
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	if uint64(n) != reader.header.Length {
		return nil, fmt.Errorf("read record: got %d of %d bytes: %w", n, reader.header.Length, io.ErrUnexpectedEOF)
	}
	return text.Bytes(), nil
}
