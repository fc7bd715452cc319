package snapshot

import (
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// DefaultCompressionLevel favours ratio; snapshots are written rarely and
// kept in version control.
const DefaultCompressionLevel = zstd.DefaultCompression

// Writer compresses record text into a snapshot. The header is written first
// with a zero compressed length and patched on Close.
type Writer struct {
	dst     io.WriteSeeker
	zWriter *zstd.Writer
	header  Header
	start   int64
	level   int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompressionLevel sets the zstd level.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) {
		w.level = level
	}
}

// NewWriter starts a snapshot of size bytes of record text at the current
// position of dst.
func NewWriter(dst io.WriteSeeker, size uint64, opts ...WriterOption) (*Writer, error) {
	if size > MaxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, size, MaxRecordSize)
	}
	w := &Writer{
		dst:   dst,
		level: DefaultCompressionLevel,
		header: Header{
			Version: RecordVersion,
			Length:  size,
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.header.Level = int16(w.level)

	start, err := dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	w.start = start

	buf, _ := w.header.AppendBinary(nil)
	if _, err := dst.Write(buf); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	w.zWriter = zstd.NewWriterLevel(dst, w.level)
	return w, nil
}

// Write compresses p.
func (w *Writer) Write(p []byte) (int, error) {
	return w.zWriter.Write(p)
}

// Close flushes the stream and patches the compressed length into the header.
func (w *Writer) Close() error {
	if err := w.zWriter.Close(); err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}

	end, err := w.dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}
	w.header.CompressedLength = uint64(end - w.start - HeaderSize)

	if _, err := w.dst.Seek(w.start, io.SeekStart); err != nil {
		return fmt.Errorf("seek to header: %w", err)
	}
	buf, _ := w.header.AppendBinary(nil)
	if _, err := w.dst.Write(buf); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.dst.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}
	return nil
}

// Encode writes text as a complete snapshot to dst.
func Encode(dst io.WriteSeeker, text []byte, opts ...WriterOption) error {
	w, err := NewWriter(dst, uint64(len(text)), opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(text); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return w.Close()
}
