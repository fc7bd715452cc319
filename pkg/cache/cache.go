// Package cache resolves asset paths to cache file names and scans cache files
// for embedded path references.
package cache

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Ext is the extension of every cache file.
const Ext = ".pc"

const (
	fnvOffset = 0x811c9dc5
	fnvPrime  = 0x1000193
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger. It is a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Hash32 hashes an asset path the way the game names its cache files: FNV-1a
// over the path prefixed with 'A', followed by a shift-multiply finish. The
// result is lowercase hex without leading zeros.
func Hash32(path string) string {
	h := uint32(fnvOffset)
	h = (h ^ 'A') * fnvPrime
	for _, r := range path {
		h = (h ^ uint32(r)) * fnvPrime
	}
	h *= 0x2001
	h = (h ^ h>>7) * 9
	h = (h ^ h>>17) * 0x21
	return strconv.FormatUint(uint64(h), 16)
}

// FileName returns the cache file name for an asset path.
func FileName(path string) string {
	return Hash32(path) + Ext
}

// Reference is a path found inside a cache file.
type Reference struct {
	Offset int
	Path   string
}

// FindReferences returns every run of bytes that starts with prefix and ends
// with the first suffix ending at or after the end of the prefix, so a suffix
// may overlap the prefix. Runs that are not valid UTF-8 are logged and
// skipped.
func FindReferences(data []byte, prefix, suffix string) ([]Reference, error) {
	if prefix == "" || suffix == "" {
		return nil, fmt.Errorf("find references: prefix and suffix must be non-empty")
	}
	p, s := []byte(prefix), []byte(suffix)

	var refs []Reference
	for start := bytes.Index(data, p); start >= 0; {
		from := start + max(0, len(p)-len(s))
		end := bytes.Index(data[from:], s)
		if end < 0 {
			break
		}
		end += from + len(s)

		candidate := data[start:end]
		if utf8.Valid(candidate) {
			refs = append(refs, Reference{Offset: start, Path: string(candidate)})
		} else {
			Logger().Debug("skipping undecodable reference",
				zap.Int("offset", start),
				zap.Binary("bytes", candidate))
		}

		next := bytes.Index(data[end:], p)
		if next < 0 {
			break
		}
		start = end + next
	}
	return refs, nil
}

// Slice returns a copy of data[start:end].
func Slice(data []byte, start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(data) {
		return nil, fmt.Errorf("slice [%d:%d] out of range for %d bytes", start, end, len(data))
	}
	return bytes.Clone(data[start:end]), nil
}
