package sequin

import "fmt"

// Domain names a dispatch table. The same code may mean different things in
// different domains.
type Domain string

const (
	DomainFileKind  Domain = "file kind"
	DomainContainer Domain = "container"
	DomainObject    Domain = "object"
	DomainComponent Domain = "component"
)

// Registry maps dispatch keys to readers for one domain. It is populated once
// during package initialization and frozen; lookups are then safe from any
// number of goroutines.
type Registry[K comparable, F any] struct {
	domain  Domain
	missing Kind
	entries map[K]F
	frozen  bool
}

// NewRegistry creates an empty registry for domain. Lookup misses report
// KindUnknownType.
func NewRegistry[K comparable, F any](domain Domain) *Registry[K, F] {
	return &Registry[K, F]{
		domain:  domain,
		missing: KindUnknownType,
		entries: make(map[K]F),
	}
}

// Register adds a reader for key. It panics on a frozen registry or a
// duplicate key.
func (r *Registry[K, F]) Register(key K, reader F) *Registry[K, F] {
	if r.frozen {
		panic(fmt.Sprintf("sequin: register %v in frozen %s registry", key, r.domain))
	}
	if _, dup := r.entries[key]; dup {
		panic(fmt.Sprintf("sequin: duplicate %s registration for %v", r.domain, key))
	}
	r.entries[key] = reader
	return r
}

// Freeze makes the registry read-only.
func (r *Registry[K, F]) Freeze() *Registry[K, F] {
	r.frozen = true
	return r
}

// Domain returns the registry's dispatch domain.
func (r *Registry[K, F]) Domain() Domain {
	return r.domain
}

// Len returns the number of registered keys.
func (r *Registry[K, F]) Len() int {
	return len(r.entries)
}

// Has reports whether key is registered.
func (r *Registry[K, F]) Has(key K) bool {
	_, ok := r.entries[key]
	return ok
}

// Lookup returns the reader for key. The cursor supplies the offset reported
// on a miss, which is the offset just past the key.
func (r *Registry[K, F]) Lookup(c *Cursor, key K) (F, error) {
	reader, ok := r.entries[key]
	if !ok {
		var zero F
		return zero, &DecodeError{
			Kind:   r.missing,
			Domain: r.domain,
			Code:   fmt.Sprint(key),
			Offset: c.Offset(),
		}
	}
	return reader, nil
}
