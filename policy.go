package smartreply

import "time"

const (
	// DefaultMaxCalls is the daily call allowance.
	DefaultMaxCalls = 5

	// DefaultWindow is the period over which the call counter
	// accumulates before resetting.
	DefaultWindow = 24 * time.Hour
)

// View derives the displayable quota state from a record. Pure; callers
// should re-derive from the freshest record immediately before use.
func View(rec QuotaRecord, maxCalls int) QuotaView {
	remaining := maxCalls - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	return QuotaView{
		Used:        rec.Count,
		Remaining:   remaining,
		MaxCalls:    maxCalls,
		CanMakeCall: remaining > 0,
	}
}

// Admit reports whether a new call is permitted under maxCalls.
func Admit(rec QuotaRecord, maxCalls int) bool {
	return View(rec, maxCalls).CanMakeCall
}
