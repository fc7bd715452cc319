package sequin

import (
	"strconv"
	"strings"
)

// Kind categorizes a decode failure.
type Kind string

const (
	KindTruncated            Kind = "truncated"              // buffer exhausted mid-read
	KindInvalidText          Kind = "invalid_text"           // string payload is not UTF-8
	KindUnknownType          Kind = "unknown_type"           // type code not registered in its domain
	KindUnsupportedTraitType Kind = "unsupported_trait_type" // trait type has no payload decoder
	KindUnknownFileKind      Kind = "unknown_file_kind"      // outer file kind not registered
)

// Sentinels for errors.Is. They match any *DecodeError of the same Kind.
var (
	ErrTruncated            = &DecodeError{Kind: KindTruncated}
	ErrInvalidText          = &DecodeError{Kind: KindInvalidText}
	ErrUnknownType          = &DecodeError{Kind: KindUnknownType}
	ErrUnsupportedTraitType = &DecodeError{Kind: KindUnsupportedTraitType}
	ErrUnknownFileKind      = &DecodeError{Kind: KindUnknownFileKind}
)

// DecodeError is returned by every failing decode. All decode errors are
// terminal for the file being decoded.
type DecodeError struct {
	Cause     error
	Kind      Kind
	Domain    Domain   // dispatch domain, for unknown_type and unknown_file_kind
	Code      string   // offending type code, file kind or trait type
	Construct string   // what was being read when the failure happened
	Detail    string
	Path      []string // object path from the outermost reader inward
	Offset    int      // cursor offset at the start of the failing read
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b strings.Builder

	b.WriteString("sequin: ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	b.WriteString(" (offset ")
	b.WriteString(strconv.Itoa(e.Offset))
	b.WriteByte(')')

	if e.Construct != "" {
		b.WriteString(" reading ")
		b.WriteString(e.Construct)
	}
	if e.Domain != "" {
		b.WriteString(" in ")
		b.WriteString(string(e.Domain))
	}
	if e.Code != "" {
		b.WriteString(" code ")
		b.WriteString(e.Code)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *DecodeError of the same Kind.
func (e *DecodeError) Is(target error) bool {
	if t, ok := target.(*DecodeError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// within prefixes the path of a *DecodeError with segment. Other errors pass
// through untouched.
func within(err error, segment string) error {
	if de, ok := err.(*DecodeError); ok {
		de.Path = append([]string{segment}, de.Path...)
	}
	return err
}

// withinIndex is within for list elements, e.g. "seq_objs[2]".
func withinIndex(err error, list string, i int) error {
	return within(err, list+"["+strconv.Itoa(i)+"]")
}
