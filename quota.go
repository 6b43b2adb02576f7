package smartreply

import "time"

// QuotaRecord is the persisted per-window call counter.
type QuotaRecord struct {
	Count           int
	WindowStartedAt time.Time
}

// QuotaStore owns the durable call counter for the current quota window.
// Implementations apply the lazy window reset before every operation and
// must not split a read-modify-write across suspension points.
type QuotaStore interface {
	// Read returns the current record, initializing a fresh one if none
	// exists and resetting it first if the window has expired.
	Read() QuotaRecord

	// Increment applies any pending reset, then counts one more call.
	Increment() QuotaRecord

	// SetUsed overwrites the counter with a server-reported used count.
	SetUsed(used int) QuotaRecord
}
