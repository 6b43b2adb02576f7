package smartreply

// Reconciler merges server-reported quota (authoritative) with the local
// optimistic counter after every attempt. The server wins whenever it
// reported quota; failures that never reached generation leave the
// counter untouched so the user can retry without penalty.
type Reconciler struct {
	store    QuotaStore
	maxCalls int
}

// NewReconciler creates a Reconciler over the given store.
func NewReconciler(store QuotaStore, maxCalls int) *Reconciler {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxCalls
	}
	return &Reconciler{store: store, maxCalls: maxCalls}
}

// Reconcile returns the quota view to display after an outcome.
func (r *Reconciler) Reconcile(o Outcome) QuotaView {
	switch o.Kind {
	case OutcomeSuccess:
		if o.ServerQuota != nil {
			// Server is authoritative; write its count back so the next
			// session starts in sync.
			r.store.SetUsed(o.ServerQuota.Used)
			return *o.ServerQuota
		}
		return View(r.store.Increment(), r.maxCalls)

	case OutcomeQuotaExceeded:
		// The server said no. Block locally even if the local counter
		// disagrees; the counter itself is left alone so the next window
		// reset clears the block.
		used := r.store.Read().Count
		if o.ServerQuota != nil {
			used = o.ServerQuota.Used
		}
		if used < r.maxCalls {
			used = r.maxCalls
		}
		return QuotaView{Used: used, Remaining: 0, MaxCalls: r.maxCalls, CanMakeCall: false}

	default:
		// No evidence the attempt consumed server-side quota.
		return View(r.store.Read(), r.maxCalls)
	}
}
