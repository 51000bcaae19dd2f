package domain

// ActionBreakdown aggregates events for a single action tag.
type ActionBreakdown struct {
	Action  string
	Total   int64
	Denied  int64
	Allowed int64
}

// SecurityReport aggregates the audit trail into allowed/denied counts,
// overall and grouped by action. Invariants: Denied + Allowed == TotalEvents,
// and the per-action totals sum to TotalEvents.
type SecurityReport struct {
	TotalEvents int64
	Denied      int64
	Allowed     int64
	ByAction    []ActionBreakdown
}
