package snapshot

import (
	"bytes"
	"fmt"
)

// MismatchError reports the first line where fresh output departs from a
// stored snapshot. Lines are numbered from 1.
type MismatchError struct {
	Line  int
	Want  string
	Got   string
	Short bool // one side ended before the other
}

func (e *MismatchError) Error() string {
	if e.Short {
		return fmt.Sprintf("snapshot mismatch at line %d: length differs (want %q, got %q)", e.Line, e.Want, e.Got)
	}
	return fmt.Sprintf("snapshot mismatch at line %d: want %q, got %q", e.Line, e.Want, e.Got)
}

// Compare returns nil when stored and fresh are identical and a
// *MismatchError otherwise.
func Compare(stored, fresh []byte) error {
	if bytes.Equal(stored, fresh) {
		return nil
	}

	want := bytes.Split(stored, []byte{'\n'})
	got := bytes.Split(fresh, []byte{'\n'})
	for i := 0; i < len(want) && i < len(got); i++ {
		if !bytes.Equal(want[i], got[i]) {
			return &MismatchError{Line: i + 1, Want: string(want[i]), Got: string(got[i])}
		}
	}

	n := min(len(want), len(got))
	e := &MismatchError{Line: n + 1, Short: true}
	if n < len(want) {
		e.Want = string(want[n])
	}
	if n < len(got) {
		e.Got = string(got[n])
	}
	return e
}
