// Package fine computes the overdue estimate offered at return time. The
// remote API is the authority on persisted fines; this is only the client
// side arithmetic the staff member confirms or declines.
package fine

import (
	"fmt"
	"math"
	"time"

	"github.com/fajrulhm/perpus-admin/model"
)

// RatePerDay is the fixed late fee in whole rupiah per day overdue.
const RatePerDay = 1500

// Outcome of assessing a return. Both paths end with the loan in the
// returned view; only the late path proposes a fine first.
type Outcome int

const (
	OnTime Outcome = iota
	Late
)

func (o Outcome) String() string {
	if o == Late {
		return "late"
	}
	return "on_time"
}

// Assessment is the proposal shown for confirmation on a late return.
type Assessment struct {
	Outcome     Outcome
	LateDays    int
	Fee         model.Amount
	Description string
}

// LateDays is the floor of the day difference between now and the due date.
// Zero or negative means on time: the boundary is strict, a return at the
// exact due instant is not late.
func LateDays(now, due time.Time) int {
	return int(math.Floor(now.Sub(due).Hours() / 24))
}

// Fee is days * RatePerDay for a positive day count, zero otherwise. A zero
// fee means no fine record is created at all.
func Fee(lateDays int) model.Amount {
	if lateDays <= 0 {
		return 0
	}
	return model.Amount(lateDays) * RatePerDay
}

// Assess evaluates a just-returned loan against now.
func Assess(loan model.Loan, now time.Time) Assessment {
	days := LateDays(now, loan.DueDate.Time)
	if days <= 0 {
		return Assessment{Outcome: OnTime}
	}
	return Assessment{
		Outcome:     Late,
		LateDays:    days,
		Fee:         Fee(days),
		Description: fmt.Sprintf("Late by %d days", days),
	}
}

// FineFields builds the fine record persisted when the proposal is
// confirmed.
func (a Assessment) FineFields(loan model.Loan) model.FineFields {
	return model.FineFields{
		MemberID:    loan.MemberID,
		BookID:      loan.BookID,
		Amount:      a.Fee,
		Type:        model.FineTypeLate,
		Description: a.Description,
	}
}
