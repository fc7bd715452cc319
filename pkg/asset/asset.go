// Package asset dispatches cache file payloads to format extractors.
//
// The decoder only identifies a payload by file kind and magic. Meshes are
// copied out as is and DDS textures are decoded to PNG. Audio banks need an
// external codec, which is plugged in as an Extractor.
package asset

import (
	"errors"
	"fmt"
	"io"

	"github.com/EchoTools/sequinFileTools/pkg/sequin"
)

var (
	// ErrUnknownKind is returned for a file kind with no extraction route.
	ErrUnknownKind = errors.New("unknown file kind")
	// ErrNoExtractor is returned for a known payload with no registered
	// extractor.
	ErrNoExtractor = errors.New("no extractor registered")
)

// Extractor writes the usable form of a payload to dst. src starts at the
// magic.
type Extractor interface {
	Name() string
	Extract(src []byte, dst io.Writer) error
}

// route keys an extractor. anyMagic matches every magic of a kind.
type route struct {
	kind     sequin.FileKind
	magic    [4]byte
	anyMagic bool
}

// Dispatcher resolves a cache file header to an extractor.
type Dispatcher struct {
	routes map[route]Extractor
}

// kinds that have a route in principle, even when no extractor is registered
var knownKinds = map[sequin.FileKind]bool{
	sequin.FileKindScoring:   true,
	sequin.FileKindConfig:    true,
	sequin.FileKindMenus:     true,
	sequin.FileKindMesh:      true,
	sequin.FileKindObjLib:    true,
	sequin.FileKindLevelCfg:  true,
	sequin.FileKindTexture:   true,
	sequin.FileKindAsset:     true,
	sequin.FileKindLevelList: true,
	sequin.FileKindShader:    true,
	sequin.FileKindUnknown93: true,
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExtractor routes payloads of kind with the given magic to e.
func WithExtractor(kind sequin.FileKind, magic [4]byte, e Extractor) Option {
	return func(d *Dispatcher) {
		d.routes[route{kind: kind, magic: magic}] = e
	}
}

// WithKindExtractor routes every payload of kind to e regardless of magic.
func WithKindExtractor(kind sequin.FileKind, e Extractor) Option {
	return func(d *Dispatcher) {
		d.routes[route{kind: kind, anyMagic: true}] = e
	}
}

// NewDispatcher creates a dispatcher with the raw mesh extractor registered
// for FileKindMesh and DDSToPNG for DDS assets, then applies opts.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{routes: make(map[route]Extractor)}
	d.routes[route{kind: sequin.FileKindMesh, anyMagic: true}] = RawMesh{}
	d.routes[route{kind: sequin.FileKindAsset, magic: sequin.MagicTexture}] = DDSToPNG{}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup returns the extractor for h.
func (d *Dispatcher) Lookup(h sequin.Header) (Extractor, error) {
	if e, ok := d.routes[route{kind: h.Kind, magic: h.Magic}]; ok {
		return e, nil
	}
	if e, ok := d.routes[route{kind: h.Kind, anyMagic: true}]; ok {
		return e, nil
	}
	if !knownKinds[h.Kind] {
		return nil, fmt.Errorf("file kind %d: %w", int32(h.Kind), ErrUnknownKind)
	}
	return nil, fmt.Errorf("%s: %w", h, ErrNoExtractor)
}

// Extract reads the header of a cache file and runs the matching extractor on
// its payload.
func (d *Dispatcher) Extract(data []byte, dst io.Writer) (Extractor, error) {
	h, err := sequin.ReadHeader(data)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	e, err := d.Lookup(h)
	if err != nil {
		return nil, err
	}
	if err := e.Extract(h.Payload, dst); err != nil {
		return e, fmt.Errorf("extract %s: %w", e.Name(), err)
	}
	return e, nil
}

// RawMesh copies a mesh payload unchanged. Mesh caches hold a stripped DirectX
// .x file starting at the magic.
type RawMesh struct{}

// Name implements Extractor.
func (RawMesh) Name() string { return "mesh" }

// Extract implements Extractor.
func (RawMesh) Extract(src []byte, dst io.Writer) error {
	if _, err := dst.Write(src); err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}
	return nil
}
