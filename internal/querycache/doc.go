// Package querycache implements the entity query/cache coordinator shared
// by every Hermadata console view.
//
// # Overview
//
// Views declare interest in keyed datasets (an animal record, a search
// page, a lookup list, dashboard stats). The cache serves what it has,
// fetches what it lacks, de-duplicates concurrent fetches, and patches
// dependent entries after writes so that every view converges without a
// full refetch.
//
// # Architecture
//
//	UI consumer                 Cache                       Backend
//	┌───────────────┐   ┌─────────────────────┐   ┌──────────────────┐
//	│ Subscribe(key)│──→│ entry registry       │   │                  │
//	│ Fetch[T](key) │──→│ freshness check      │──→│ one HTTP call per│
//	│               │←──│ stale data at once   │   │ in-flight key    │
//	│ Execute(mut)  │──→│ patches, in order    │   │ (singleflight)   │
//	└───────────────┘   └─────────────────────┘   └──────────────────┘
//
// # Keys and entries
//
// A Key is an ordered tuple: a kind string plus primitive parameters.
// Equality is canonical-serialization equality, so ("animal", 7) and
// ("animal", "7") address different entries. The kind selects TTL and
// retention policy.
//
// An Entry carries data, status (idle/loading/success/error), the last
// fetch time and the stale deadline. A fetch error never clears prior
// data: views render stale content with an error indicator instead of
// going blank.
//
// # Fetch discipline
//
//   - De-duplication: concurrent EnsureFresh calls for one key share a
//     single backend call (golang.org/x/sync/singleflight).
//   - Stale-while-revalidate: a stale entry with data answers immediately
//     while a background fetch refreshes it.
//   - Race policy: each started fetch takes the next per-key sequence
//     number; a completed fetch writes only if no newer fetch started
//     after it. Start order wins, completion order is irrelevant, and
//     superseded results are discarded rather than cancelled.
//
// # Mutations
//
// Execute runs a write exactly once — user intents are never de-duplicated
// and no idempotence is assumed; the UI disables duplicate submits. On
// success the mutation's declared patches (Replace, AppendTo, MergeInto,
// Invalidate) apply atomically and in order before Execute returns, so a
// caller's follow-up code always observes the patched state. On failure
// the cache is untouched and the error stays local to the caller.
//
// # Lifecycle
//
// Entries are created on first subscription (or first fetch), kept while
// referenced, and evicted by sweep once unreferenced past the kind's
// retention window. The default policy evicts immediately and treats all
// data as immediately stale; per-kind tuning comes from the application
// config.
//
// # Concurrency
//
// One mutex guards all entry state, in the style of the application state
// stores this package grew out of. Subscriber callbacks are collected
// under the lock and delivered after release, in subscription order, so a
// callback may re-enter the cache. Returned Entry values and data are
// copies-by-interface: consumers must not mutate data in place.
package querycache
