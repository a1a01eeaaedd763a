package requests

import "time"

// DefaultOverdueThreshold is how long a request may sit PENDING before it is
// flagged on alert surfaces.
const DefaultOverdueThreshold = 7 * 24 * time.Hour

// IsOverdue reports whether a request has been pending for at least the
// threshold as of now. Resolved requests are never overdue, regardless of age.
// The flag is recomputed on every read and never stored.
func IsOverdue(req *TradeRequest, now time.Time, threshold time.Duration) bool {
	if req.Status != StatusPending {
		return false
	}
	return now.Sub(req.RequestDate) >= threshold
}
