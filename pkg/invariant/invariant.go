// Package invariant provides fatal checks for conditions that can only fail
// when an upstream component broke its contract.
//
// A failed check panics with a *Violation. Entry points that must be
// all-or-nothing use Recover to turn the panic back into an error.
package invariant

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrViolation is the sentinel wrapped by every *Violation.
var ErrViolation = errors.New("invariant violation")

// Violation describes a broken invariant together with the values that were
// involved when it was detected.
type Violation struct {
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if len(v.Context) == 0 {
		return v.Message
	}

	keys := make([]string, 0, len(v.Context))
	for key := range v.Context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, v.Context[key]))
	}
	return v.Message + " (" + strings.Join(parts, ", ") + ")"
}

// Unwrap allows errors.Is(err, ErrViolation).
func (v *Violation) Unwrap() error {
	return ErrViolation
}

// Fail panics with a Violation built from msg and alternating key/value pairs.
func Fail(msg string, keyvals ...any) {
	panic(newViolation(msg, keyvals))
}

// Assert panics when cond is false.
func Assert(cond bool, msg string, keyvals ...any) {
	if !cond {
		if msg == "" {
			msg = "assertion failed"
		}
		panic(newViolation(msg, keyvals))
	}
}

// Unreachable marks the fallthrough of a switch over a closed set of kinds.
func Unreachable(keyvals ...any) {
	panic(newViolation("reached unreachable code", keyvals))
}

// Recover converts a Violation panic into an error stored in *errp.
// Any other panic is re-raised. Use it as `defer invariant.Recover(&err)`.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	var v *Violation
	if err, ok := r.(error); ok && errors.As(err, &v) {
		*errp = v
		return
	}
	panic(r)
}

// SpliceOnce removes target from items. Target must occur exactly once.
func SpliceOnce[T comparable](items []T, target T) []T {
	idx := indexOnce(items, target, "SpliceOnce")
	return append(items[:idx:idx], items[idx+1:]...)
}

// ReplaceOnce replaces target in items with replacements. Target must occur
// exactly once.
func ReplaceOnce[T comparable](items []T, target T, replacements ...T) []T {
	idx := indexOnce(items, target, "ReplaceOnce")
	out := make([]T, 0, len(items)-1+len(replacements))
	out = append(out, items[:idx]...)
	out = append(out, replacements...)
	return append(out, items[idx+1:]...)
}

func indexOnce[T comparable](items []T, target T, op string) int {
	first, last := -1, -1
	for i, item := range items {
		if item == target {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 || first != last {
		Fail(op+": target must occur exactly once", "first", first, "last", last, "len", len(items))
	}
	return first
}

func newViolation(msg string, keyvals []any) *Violation {
	v := &Violation{Message: msg}
	if len(keyvals) == 0 {
		return v
	}
	v.Context = make(map[string]any, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 < len(keyvals) {
			v.Context[key] = keyvals[i+1]
		} else {
			v.Context[key] = "(missing)"
		}
	}
	return v
}
