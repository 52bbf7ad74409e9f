package querycache

import (
	"encoding/json"
	"fmt"
)

// Key identifies a cached dataset. It is an ordered tuple of a kind string
// plus primitive arguments; two keys address the same entry iff their
// canonical serialized forms match exactly (order- and case-sensitive).
type Key struct {
	kind  string
	canon string
}

// NewKey builds a key from a kind and its parameters. Arguments must be
// JSON-encodable primitives (strings, numbers, booleans); anything else
// still produces a usable key but equality then depends on the argument's
// JSON form.
func NewKey(kind string, args ...any) Key {
	parts := make([]any, 0, len(args)+1)
	parts = append(parts, kind)
	parts = append(parts, args...)

	raw, err := json.Marshal(parts)
	if err != nil {
		// Non-encodable arguments degrade to their fmt representation so a
		// bad key stays addressable instead of panicking mid-render.
		raw = fmt.Appendf(nil, "%q:%v", kind, parts[1:])
	}
	return Key{kind: kind, canon: string(raw)}
}

// Kind returns the first tuple element, used to select TTL and retention
// policy for the entry.
func (k Key) Kind() string { return k.kind }

// String returns the canonical serialized form.
func (k Key) String() string { return k.canon }

// IsZero reports whether the key was never initialized via NewKey.
func (k Key) IsZero() bool { return k.canon == "" }
