package subsidy

import (
	"math"
	"time"
)

// Status is the lifecycle state of a subsidy deadline.
type Status string

const (
	StatusOpen        Status = "open"
	StatusClosingSoon Status = "closing_soon"
	StatusClosed      Status = "closed"
)

// BudgetCapSentinel is the registry convention for programmes that accept
// applications until their budget runs out ("until budget exhaustion").
const BudgetCapSentinel = "予算上限まで"

// dateLayout is the ISO date form used for deadlines and start dates.
const dateLayout = "2006-01-02"

// Classification is the full deadline verdict for one subsidy.
type Classification struct {
	Status Status `json:"status"`

	// DaysRemaining counts whole days until the deadline, rounding partial
	// days up.  The deadline day itself is day 0.  Negative once closed.
	// Meaningless when OpenEnded is true.
	DaysRemaining int `json:"days_remaining"`

	// OpenEnded is true when the deadline field does not parse as a date.
	// Open-ended programmes are never closed.
	OpenEnded bool `json:"open_ended"`

	// BudgetCapped is true only for the exact BudgetCapSentinel literal.
	BudgetCapped bool `json:"budget_capped"`
}

// Active reports whether the subsidy still accepts applications.
func (c Classification) Active() bool {
	return c.Status != StatusClosed
}

// ParseDeadline interprets a deadline string as an ISO date.  The second
// return value is false for open-ended free text.
func ParseDeadline(deadline string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Classifier turns deadline strings into Classifications relative to a
// reference instant.  Window is the closing-soon horizon in days; list and
// detail views use the 30-day window, the dashboard's expiring list a wider
// one.
type Classifier struct {
	Window int
}

// Classify evaluates deadline against now.
//
// Rules, in order:
//   - unparseable deadline → open, never closed; the budget-cap sentinel is
//     additionally flagged
//   - deadline before now → closed
//   - otherwise days remaining = ceil(deadline − now), with day 0 (deadline
//     today) counting as closing soon, and closing soon iff the count is
//     within the window
func (cl Classifier) Classify(deadline string, now time.Time) Classification {
	t, ok := ParseDeadline(deadline)
	if !ok {
		return Classification{
			Status:       StatusOpen,
			OpenEnded:    true,
			BudgetCapped: deadline == BudgetCapSentinel,
		}
	}

	days := int(math.Ceil(t.Sub(now).Hours() / 24))
	if t.Before(now) {
		return Classification{Status: StatusClosed, DaysRemaining: days}
	}

	status := StatusOpen
	if days <= cl.Window {
		status = StatusClosingSoon
	}
	return Classification{Status: status, DaysRemaining: days}
}

// DaysUntil returns the whole-day countdown to an ISO deadline.  The second
// return value is false for open-ended deadlines.
func DaysUntil(deadline string, now time.Time) (int, bool) {
	t, ok := ParseDeadline(deadline)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), true
}
