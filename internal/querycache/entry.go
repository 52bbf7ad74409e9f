package querycache

import "time"

// Status describes an entry's fetch lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// String returns a short lowercase name for logging.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a read-only view of one cached dataset. The cache owns the
// authoritative copy; consumers receive value copies and must not mutate
// Data in place — all changes flow through fetches and patches so that
// subscriber notification stays correct.
type Entry struct {
	Key           Key
	Data          any
	Status        Status
	Err           error
	LastFetchedAt time.Time
	StaleAfter    time.Time
}

// Fresh reports whether Data can be served without revalidation.
func (e Entry) Fresh(now time.Time) bool {
	return e.Status == StatusSuccess && now.Before(e.StaleAfter)
}

// HasData reports whether the entry carries previously fetched data. An
// entry in StatusError keeps its prior data so the UI can render stale
// content alongside the error.
func (e Entry) HasData() bool { return e.Data != nil }
