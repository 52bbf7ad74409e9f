package querycache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testPage struct {
	Total int
	Items []string
}

func (p testPage) AppendItem(item any) any {
	s, ok := item.(string)
	if !ok {
		return p
	}
	p.Items = append(p.Items, s)
	p.Total++
	return p
}

type testRecord struct {
	Name  string
	Notes string
}

func (r testRecord) MergeWith(partial any) any {
	p, ok := partial.(testRecord)
	if !ok {
		return r
	}
	if p.Name != "" {
		r.Name = p.Name
	}
	if p.Notes != "" {
		r.Notes = p.Notes
	}
	return r
}

func TestExecute_AppliesPatchesInOrderBeforeReturn(t *testing.T) {
	c, clock := newTestCache(Policy{Default: KindPolicy{TTL: time.Hour, Retention: time.Hour}})
	listKey := NewKey("adopter-search", 0, 20)
	statsKey := NewKey("stats")

	c.Apply(Replace(listKey, testPage{Total: 1, Items: []string{"anna"}}))
	c.Apply(Replace(statsKey, "stats-v1"))

	m := Mutation[string, string]{
		Run: func(ctx context.Context, in string) (string, error) { return in, nil },
		Patches: func(out, in string) []Patch {
			return []Patch{AppendTo(listKey, out), Invalidate(statsKey)}
		},
	}

	out, err := Execute(context.Background(), c, m, "mario")
	if err != nil || out != "mario" {
		t.Fatalf("Execute = %v, %v", out, err)
	}

	// Both patches must be observable the moment Execute returns.
	page, ok := Get[testPage](c, listKey)
	if !ok {
		t.Fatal("list entry missing")
	}
	if page.Total != 2 || len(page.Items) != 2 || page.Items[1] != "mario" {
		t.Fatalf("list after AppendTo = %#v, want mario appended", page)
	}
	stats, _ := c.Get(statsKey)
	if stats.StaleAfter.After(clock.Now()) {
		t.Fatalf("stats StaleAfter = %v, want <= now %v", stats.StaleAfter, clock.Now())
	}
	if stats.Data != "stats-v1" {
		t.Fatalf("Invalidate dropped data: %v", stats.Data)
	}
}

func TestExecute_FailureLeavesCacheUntouched(t *testing.T) {
	c, _ := newTestCache(Policy{Default: KindPolicy{TTL: time.Hour}})
	key := NewKey("animal", 7)
	c.Apply(Replace(key, "before"))

	boom := errors.New("duplicate chip code")
	var onErrorSeen error
	m := Mutation[string, string]{
		Run: func(ctx context.Context, in string) (string, error) { return "", boom },
		Patches: func(out, in string) []Patch {
			t.Error("Patches called for a failed mutation")
			return nil
		},
		OnError: func(err error) { onErrorSeen = err },
	}

	if _, err := Execute(context.Background(), c, m, "input"); !errors.Is(err, boom) {
		t.Fatalf("Execute error = %v, want duplicate chip code", err)
	}
	if !errors.Is(onErrorSeen, boom) {
		t.Fatalf("OnError got %v, want duplicate chip code", onErrorSeen)
	}
	e, _ := c.Get(key)
	if e.Data != "before" {
		t.Fatalf("cache changed on failed mutation: %v", e.Data)
	}
}

func TestPatch_AppendToPlainSlice(t *testing.T) {
	c, _ := newTestCache(Policy{Default: KindPolicy{TTL: time.Hour}})
	key := NewKey("race")
	c.Apply(Replace(key, []string{"dog"}))
	c.Apply(AppendTo(key, "cat"))

	got, ok := Get[[]string](c, key)
	if !ok || len(got) != 2 || got[1] != "cat" {
		t.Fatalf("AppendTo slice = %#v, want [dog cat]", got)
	}
}

func TestPatch_AppendToMissingDataIsNoop(t *testing.T) {
	c, _ := newTestCache(Policy{})
	key := NewKey("race")
	c.Apply(AppendTo(key, "cat"))

	e, ok := c.Get(key)
	if ok && e.HasData() {
		t.Fatalf("AppendTo conjured data: %#v", e.Data)
	}
}

func TestPatch_MergeIntoMerger(t *testing.T) {
	c, _ := newTestCache(Policy{Default: KindPolicy{TTL: time.Hour}})
	key := NewKey("adopter", 42)
	c.Apply(Replace(key, testRecord{Name: "Anna", Notes: "old"}))
	c.Apply(MergeInto(key, testRecord{Notes: "updated"}))

	got, ok := Get[testRecord](c, key)
	if !ok || got.Name != "Anna" || got.Notes != "updated" {
		t.Fatalf("MergeInto = %#v, want name kept and notes updated", got)
	}
}

func TestPatch_MergeIntoMaps(t *testing.T) {
	c, _ := newTestCache(Policy{Default: KindPolicy{TTL: time.Hour}})
	key := NewKey("stats")
	c.Apply(Replace(key, map[string]any{"present": 10, "adopted": 3}))
	c.Apply(MergeInto(key, map[string]any{"adopted": 4}))

	got, ok := Get[map[string]any](c, key)
	if !ok || got["present"] != 10 || got["adopted"] != 4 {
		t.Fatalf("MergeInto maps = %#v", got)
	}
}

func TestPatch_ReplaceCreatesFreshEntry(t *testing.T) {
	c, clock := newTestCache(Policy{Default: KindPolicy{TTL: time.Minute}})
	key := NewKey("vet", 5)
	c.Apply(Replace(key, "dr-rossi"))

	e, ok := c.Get(key)
	if !ok || e.Status != StatusSuccess || e.Data != "dr-rossi" {
		t.Fatalf("Replace on missing key = %#v", e)
	}
	if !e.Fresh(clock.Now()) {
		t.Fatal("replaced entry should be fresh per kind TTL")
	}
}
