package domain

import (
	"fmt"
	"time"
)

// QuotaDecision is the outcome of a publication-quota check. Rollover is set
// when the check crossed into a new calendar month and the stored counter
// must be reset before the decision is acted on.
type QuotaDecision struct {
	Eligible bool
	Reason   string
	Count    int
	Limit    int
	Rollover bool
}

// EvaluateQuota decides whether a seller may publish at the given instant.
// It is side-effect free; persisting the rollover is the caller's job.
//
// The quota period is the calendar month of LastPublicationReset: as soon as
// the evaluation time falls in a different month (or year), the counter is
// considered reset to zero.
func EvaluateQuota(u *User, now time.Time) QuotaDecision {
	limit := u.PublicationLimit
	if limit <= 0 {
		limit = DefaultPublicationLimit
	}

	if now.Month() != u.LastPublicationReset.Month() || now.Year() != u.LastPublicationReset.Year() {
		return QuotaDecision{Eligible: true, Count: 0, Limit: limit, Rollover: true}
	}

	if u.PublicationCount >= limit {
		return QuotaDecision{
			Eligible: false,
			Reason:   fmt.Sprintf("limit reached (%d listings/month)", limit),
			Count:    u.PublicationCount,
			Limit:    limit,
		}
	}

	return QuotaDecision{Eligible: true, Count: u.PublicationCount, Limit: limit}
}
