package querycache

import "testing"

func TestNewKey_CanonicalEquality(t *testing.T) {
	a := NewKey("animal", "A001")
	b := NewKey("animal", "A001")
	if a.String() != b.String() {
		t.Fatalf("identical tuples differ: %q vs %q", a, b)
	}

	c := NewKey("animal", "a001")
	if a.String() == c.String() {
		t.Fatalf("case-insensitive match: %q vs %q", a, c)
	}

	d := NewKey("animal", 7)
	e := NewKey("animal", "7")
	if d.String() == e.String() {
		t.Fatalf("number and string should not collide: %q vs %q", d, e)
	}

	f := NewKey("animal-search", 0, 20)
	g := NewKey("animal-search", 20, 0)
	if f.String() == g.String() {
		t.Fatalf("argument order should matter: %q vs %q", f, g)
	}
}

func TestNewKey_KindAndZero(t *testing.T) {
	k := NewKey("race")
	if k.Kind() != "race" {
		t.Fatalf("Kind() = %q, want race", k.Kind())
	}
	if k.IsZero() {
		t.Fatal("IsZero() = true for initialized key")
	}
	var zero Key
	if !zero.IsZero() {
		t.Fatal("IsZero() = false for zero key")
	}
}

func TestCacheGet_DistinctKeysDistinctEntries(t *testing.T) {
	c := New(Policy{})
	c.Apply(Replace(NewKey("animal", "A001"), "first"))
	c.Apply(Replace(NewKey("animal", "a001"), "second"))

	e1, ok := c.Get(NewKey("animal", "A001"))
	if !ok || e1.Data != "first" {
		t.Fatalf("entry A001 = %#v, want first", e1)
	}
	e2, ok := c.Get(NewKey("animal", "a001"))
	if !ok || e2.Data != "second" {
		t.Fatalf("entry a001 = %#v, want second", e2)
	}
}
