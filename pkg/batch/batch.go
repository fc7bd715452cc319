// Package batch decodes many cache files concurrently while delivering
// results in input order.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/EchoTools/sequinFileTools/pkg/cache"
	"github.com/EchoTools/sequinFileTools/pkg/record"
	"github.com/EchoTools/sequinFileTools/pkg/sequin"
)

// Status is the outcome for one file. Files that are not object libraries
// are Skipped.
type Status int

const (
	Decoded Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Decoded:
		return "decoded"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result is the outcome of decoding one file. Text holds the emitted record
// of a decoded library.
type Result struct {
	File    cache.ScannedFile
	Status  Status
	Header  sequin.Header
	Library *sequin.ObjectLibrary
	Text    []byte
	Err     error
}

// Summary counts results by status.
type Summary struct {
	RunID   ulid.ULID
	Decoded int
	Skipped int
	Failed  int
}

func (s Summary) Total() int {
	return s.Decoded + s.Skipped + s.Failed
}

type config struct {
	lookahead int
	logger    *zap.Logger
}

// Option configures Decode.
type Option func(*config)

// WithLookahead bounds the number of files decoded ahead of the consumer.
func WithLookahead(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.lookahead = n
		}
	}
}

// WithLogger sets the logger for per-file failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Decode decodes files concurrently and calls sink once per file in input
// order. A failing file is logged and counted; it never stops the run. An
// error from sink or a cancelled ctx stops the run.
func Decode(ctx context.Context, files []cache.ScannedFile, sink func(Result) error, opts ...Option) (Summary, error) {
	cfg := config{
		lookahead: runtime.NumCPU() * 4,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sum := Summary{RunID: ulid.Make()}
	log := cfg.logger.With(zap.Stringer("run", sum.RunID))
	log.Info("batch started", zap.Int("files", len(files)), zap.Int("lookahead", cfg.lookahead))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	futureResults := make(chan chan Result, cfg.lookahead)
	go func() {
		defer close(futureResults)
		for _, f := range files {
			resultChan := make(chan Result, 1)
			select {
			case futureResults <- resultChan:
			case <-ctx.Done():
				return
			}
			go func(f cache.ScannedFile, ch chan Result) {
				ch <- DecodeOne(f)
			}(f, resultChan)
		}
	}()

	for resultChan := range futureResults {
		res := <-resultChan
		switch res.Status {
		case Decoded:
			sum.Decoded++
		case Skipped:
			sum.Skipped++
		case Failed:
			sum.Failed++
			log.Warn("decode failed", zap.String("file", res.File.Path), zap.Error(res.Err))
		}
		if err := sink(res); err != nil {
			return sum, fmt.Errorf("%s: %w", res.File.Name(), err)
		}
	}

	log.Info("batch finished",
		zap.Int("decoded", sum.Decoded),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed))
	return sum, ctx.Err()
}

// DecodeOne reads and decodes a single cache file.
func DecodeOne(f cache.ScannedFile) Result {
	res := Result{File: f}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		res.Status, res.Err = Failed, fmt.Errorf("read file: %w", err)
		return res
	}
	if res.Header, err = sequin.ReadHeader(data); err != nil {
		res.Status, res.Err = Failed, err
		return res
	}
	if res.Header.Kind != sequin.FileKindObjLib {
		res.Status = Skipped
		return res
	}

	if res.Library, err = sequin.DecodeFile(data); err != nil {
		res.Status, res.Err = Failed, err
		return res
	}
	res.Status = Decoded
	res.Text = []byte(record.Emit(sequin.LibraryRecord(res.Library)))
	return res
}
