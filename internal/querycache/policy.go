package querycache

import "time"

// TTLForever marks data that never goes stale on its own (lookup lists
// such as provinces or document kinds). Invalidation patches still apply.
const TTLForever time.Duration = -1

// foreverHorizon stands in for "infinity" without overflowing time.Time
// arithmetic.
const foreverHorizon = 100 * 365 * 24 * time.Hour

// KindPolicy tunes freshness and eviction for one key kind.
type KindPolicy struct {
	// TTL is how long a successful fetch stays fresh. Zero means data is
	// stale immediately (every read revalidates); TTLForever means never.
	TTL time.Duration

	// Retention is how long an unreferenced entry survives after its last
	// subscriber leaves. Zero evicts immediately.
	Retention time.Duration
}

// Policy maps key kinds to their freshness/retention tuning. The zero
// value is usable: everything is immediately stale and evicted as soon as
// it is unreferenced.
type Policy struct {
	Default KindPolicy
	Kinds   map[string]KindPolicy
}

// For resolves the policy for a kind, falling back to the default.
func (p Policy) For(kind string) KindPolicy {
	if kp, ok := p.Kinds[kind]; ok {
		return kp
	}
	return p.Default
}

func staleDeadline(now time.Time, ttl time.Duration) time.Time {
	if ttl == TTLForever {
		return now.Add(foreverHorizon)
	}
	return now.Add(ttl)
}
