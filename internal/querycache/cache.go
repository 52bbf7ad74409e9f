package querycache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache coordinates keyed entity data shared between views: it stores
// fetched entries, de-duplicates concurrent fetches, serves stale data
// while revalidating, and applies mutation patches. Construct one per
// application (or per test) with New; there is no package-level instance.
type Cache struct {
	mu      sync.Mutex
	policy  Policy
	entries map[string]*entryState
	group   singleflight.Group
	now     func() time.Time
	nextSub uint64
}

// entryState is the authoritative, mutex-guarded record behind an Entry.
type entryState struct {
	entry    Entry
	refs     int
	subs     []subscriber
	released time.Time // when refs last dropped to zero
	fetchSeq uint64    // sequence of the most recently started fetch
}

type subscriber struct {
	id uint64
	fn func(Entry)
}

// New builds an empty cache governed by the given policy.
func New(policy Policy) *Cache {
	return &Cache{
		policy:  policy,
		entries: make(map[string]*entryState),
		now:     time.Now,
	}
}

// ensureLocked returns the state for key, creating an Idle entry on first
// sight. Callers hold c.mu.
func (c *Cache) ensureLocked(key Key) *entryState {
	st, ok := c.entries[key.canon]
	if !ok {
		// released starts at creation so an entry fetched without any
		// subscriber still gets a full retention window before a sweep
		// may take it.
		st = &entryState{entry: Entry{Key: key, Status: StatusIdle}, released: c.now()}
		c.entries[key.canon] = st
	}
	return st
}

// notice is a deferred subscriber callback, collected under the mutex and
// delivered after release so callbacks may re-enter the cache.
type notice struct {
	fn    func(Entry)
	entry Entry
}

// noticesLocked snapshots the subscriber list for key in subscription
// order, pairing each with a copy of the current entry.
func (c *Cache) noticesLocked(st *entryState) []notice {
	if len(st.subs) == 0 {
		return nil
	}
	out := make([]notice, len(st.subs))
	for i, s := range st.subs {
		out[i] = notice{fn: s.fn, entry: st.entry}
	}
	return out
}

func deliver(pending []notice) {
	for _, n := range pending {
		n.fn(n.entry)
	}
}

// Get returns a copy of the entry for key, if present. It never triggers
// a fetch.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.entries[key.canon]
	if !ok {
		return Entry{}, false
	}
	return st.entry, true
}

// MarkStale sets the entry's stale deadline to now, so the next read
// revalidates. Data is kept (stale-while-revalidate); missing keys are a
// no-op.
func (c *Cache) MarkStale(key Key) {
	c.mu.Lock()
	st, ok := c.entries[key.canon]
	if !ok {
		c.mu.Unlock()
		return
	}
	st.entry.StaleAfter = c.now()
	pending := c.noticesLocked(st)
	c.mu.Unlock()
	deliver(pending)
}

// Len reports the number of resident entries. Intended for diagnostics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
