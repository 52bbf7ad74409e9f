package querycache

import (
	"context"
)

// FetchFunc loads the dataset for one key from the backend. It is called
// at most once per started fetch; concurrent EnsureFresh callers share a
// single invocation.
type FetchFunc func(ctx context.Context) (any, error)

// EnsureFresh returns data for key, fetching only when needed:
//
//   - fresh entry: cached data, no network call
//   - fetch already in flight: joins it (request de-duplication)
//   - stale entry with data: returns the stale data immediately and
//     revalidates in the background (stale-while-revalidate)
//   - empty entry: fetches and waits
//
// A fetch error is stored on the entry but never clears previously
// fetched data. Results of superseded fetches are discarded: whichever
// fetch for a key started last wins, regardless of completion order.
func (c *Cache) EnsureFresh(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	st := c.ensureLocked(key)
	e := st.entry
	now := c.now()
	c.mu.Unlock()

	if e.Fresh(now) {
		return e.Data, nil
	}
	if e.HasData() {
		// Serve stale data synchronously; the revalidation must outlive
		// this call, so it detaches from the caller's cancellation.
		bg := context.WithoutCancel(ctx)
		go func() {
			_, _, _ = c.group.Do(key.canon, c.fetchOnce(bg, key, fetch, false))
		}()
		return e.Data, nil
	}
	v, err, _ := c.group.Do(key.canon, c.fetchOnce(ctx, key, fetch, false))
	return v, err
}

// Refetch starts a new fetch for key unconditionally, bypassing both the
// freshness check and join-in-flight de-duplication. Any older in-flight
// fetch for the key keeps running but its result is discarded when it
// completes.
func (c *Cache) Refetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.group.Forget(key.canon)
	v, err, _ := c.group.Do(key.canon, c.fetchOnce(ctx, key, fetch, true))
	return v, err
}

// fetchOnce wraps one fetch attempt: it claims the next per-key sequence
// number, marks the entry Loading, runs the fetch, and applies the result
// only if no newer fetch for the key started in the meantime. Unless
// forced, it rechecks freshness under the lock first: a fetch that
// completed between the caller's freshness check and this point makes
// the network call redundant.
func (c *Cache) fetchOnce(ctx context.Context, key Key, fetch FetchFunc, force bool) func() (any, error) {
	return func() (any, error) {
		c.mu.Lock()
		st := c.ensureLocked(key)
		if !force && st.entry.Fresh(c.now()) {
			data := st.entry.Data
			c.mu.Unlock()
			return data, nil
		}
		st.fetchSeq++
		seq := st.fetchSeq
		st.entry.Status = StatusLoading
		pending := c.noticesLocked(st)
		c.mu.Unlock()
		deliver(pending)

		data, err := fetch(ctx)

		c.mu.Lock()
		st, ok := c.entries[key.canon]
		if !ok || seq != st.fetchSeq {
			// Entry evicted mid-flight, or a newer fetch started after this
			// one: drop the result but still hand it to waiting callers.
			c.mu.Unlock()
			return data, err
		}
		now := c.now()
		if err != nil {
			st.entry.Status = StatusError
			st.entry.Err = err
		} else {
			st.entry.Status = StatusSuccess
			st.entry.Err = nil
			st.entry.Data = data
			st.entry.LastFetchedAt = now
			st.entry.StaleAfter = staleDeadline(now, c.policy.For(key.kind).TTL)
		}
		pending = c.noticesLocked(st)
		c.mu.Unlock()
		deliver(pending)

		return data, err
	}
}
