package querycache

// Subscribe registers interest in key and returns a cancel function. The
// entry is created Idle on first subscription and kept resident while at
// least one subscription remains; callbacks for a key run in subscription
// order whenever the entry changes.
//
// Cancel is idempotent. When the last subscription for a key is cancelled
// the entry becomes eligible for eviction once the kind's retention window
// has elapsed (immediately, with the zero policy).
func (c *Cache) Subscribe(key Key, fn func(Entry)) (cancel func()) {
	c.mu.Lock()
	st := c.ensureLocked(key)
	st.refs++
	c.nextSub++
	id := c.nextSub
	st.subs = append(st.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	done := false
	return func() {
		c.mu.Lock()
		if done {
			c.mu.Unlock()
			return
		}
		done = true
		if st, ok := c.entries[key.canon]; ok {
			for i, s := range st.subs {
				if s.id == id {
					st.subs = append(st.subs[:i], st.subs[i+1:]...)
					break
				}
			}
			st.refs--
			if st.refs <= 0 {
				st.refs = 0
				st.released = c.now()
			}
		}
		c.sweepLocked()
		c.mu.Unlock()
	}
}

// Sweep evicts entries that have had zero subscriptions for at least their
// kind's retention window. It runs automatically on unsubscribe; call it
// periodically if long-lived keys with non-zero retention should not
// linger until the next unsubscribe.
func (c *Cache) Sweep() {
	c.mu.Lock()
	c.sweepLocked()
	c.mu.Unlock()
}

func (c *Cache) sweepLocked() {
	now := c.now()
	for canon, st := range c.entries {
		if st.refs > 0 {
			continue
		}
		retention := c.policy.For(st.entry.Key.kind).Retention
		if now.Sub(st.released) >= retention {
			delete(c.entries, canon)
		}
	}
}
