package querycache

import (
	"context"
	"reflect"
)

// Appender lets typed collection values (e.g. a result page) define how an
// AppendTo patch adds an item. The method returns the updated value.
type Appender interface {
	AppendItem(item any) any
}

// Merger lets typed values define how a MergeInto patch folds a partial
// update in. The method returns the updated value.
type Merger interface {
	MergeWith(partial any) any
}

type patchOp int

const (
	opReplace patchOp = iota
	opAppend
	opMerge
	opInvalidate
)

// Patch is a declarative cache modification applied after a successful
// mutation, in declaration order, before Execute returns.
type Patch struct {
	op    patchOp
	key   Key
	value any
}

// Replace swaps the entry's data for value and marks it freshly fetched.
func Replace(key Key, value any) Patch { return Patch{op: opReplace, key: key, value: value} }

// AppendTo adds item to the entry's data. Data implementing Appender
// decides placement itself; plain slices get a reflect-based append. An
// entry without data is left untouched (the list is fetched fresh later).
func AppendTo(key Key, item any) Patch { return Patch{op: opAppend, key: key, value: item} }

// MergeInto folds a partial value into the entry's data. Data implementing
// Merger decides the semantics; map[string]any merges shallowly; any other
// data is replaced whole.
func MergeInto(key Key, partial any) Patch { return Patch{op: opMerge, key: key, value: partial} }

// Invalidate marks the entry stale so the next read revalidates. Data is
// kept for stale-while-revalidate rendering.
func Invalidate(key Key) Patch { return Patch{op: opInvalidate, key: key} }

// Mutation describes one write operation: how to run it and which cache
// patches follow success. Patches and OnError are optional.
type Mutation[In, Out any] struct {
	Run     func(ctx context.Context, in In) (Out, error)
	Patches func(out Out, in In) []Patch
	OnError func(err error)
}

// Execute runs the mutation exactly once. Concurrent executions are
// independent — a write is a distinct user intent, never de-duplicated,
// and never idempotent by construction.
//
// On success all declared patches are applied atomically, in order, before
// Execute returns, so callers observe the patched cache state immediately.
// On failure the cache is untouched; OnError runs and the error is
// returned for the caller's own handling.
func Execute[In, Out any](ctx context.Context, c *Cache, m Mutation[In, Out], in In) (Out, error) {
	out, err := m.Run(ctx, in)
	if err != nil {
		if m.OnError != nil {
			m.OnError(err)
		}
		var zero Out
		return zero, err
	}
	if m.Patches != nil {
		c.Apply(m.Patches(out, in)...)
	}
	return out, nil
}

// Apply applies patches in order under a single critical section, then
// notifies affected subscribers in subscription order. Mutation executors
// use it via Execute; it is exported for consumers that patch outside a
// Mutation (e.g. pushing server-sent state).
func (c *Cache) Apply(patches ...Patch) {
	if len(patches) == 0 {
		return
	}
	c.mu.Lock()
	var pending []notice
	now := c.now()
	for _, p := range patches {
		st, ok := c.entries[p.key.canon]
		if !ok {
			if p.op == opInvalidate {
				continue
			}
			st = c.ensureLocked(p.key)
		}
		switch p.op {
		case opReplace:
			st.entry.Data = p.value
			st.entry.Status = StatusSuccess
			st.entry.Err = nil
			st.entry.LastFetchedAt = now
			st.entry.StaleAfter = staleDeadline(now, c.policy.For(p.key.kind).TTL)
		case opAppend:
			if st.entry.Data == nil {
				continue
			}
			st.entry.Data = appendValue(st.entry.Data, p.value)
		case opMerge:
			if st.entry.Data == nil {
				continue
			}
			st.entry.Data = mergeValue(st.entry.Data, p.value)
		case opInvalidate:
			st.entry.StaleAfter = now
		}
		pending = append(pending, c.noticesLocked(st)...)
	}
	c.mu.Unlock()
	deliver(pending)
}

func appendValue(data, item any) any {
	if a, ok := data.(Appender); ok {
		return a.AppendItem(item)
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		return data
	}
	iv := reflect.ValueOf(item)
	if !iv.IsValid() || !iv.Type().AssignableTo(rv.Type().Elem()) {
		return data
	}
	return reflect.Append(rv, iv).Interface()
}

func mergeValue(data, partial any) any {
	if m, ok := data.(Merger); ok {
		return m.MergeWith(partial)
	}
	dst, okDst := data.(map[string]any)
	src, okSrc := partial.(map[string]any)
	if okDst && okSrc {
		merged := make(map[string]any, len(dst)+len(src))
		for k, v := range dst {
			merged[k] = v
		}
		for k, v := range src {
			merged[k] = v
		}
		return merged
	}
	return partial
}
