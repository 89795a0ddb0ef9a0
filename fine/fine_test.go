package fine

import (
	"testing"
	"time"

	"github.com/fajrulhm/perpus-admin/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLateDaysBoundary(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	// Exactly at the due instant: zero days, on time.
	assert.Equal(t, 0, LateDays(due, due))

	// A few hours past due is still day zero.
	assert.Equal(t, 0, LateDays(due.Add(6*time.Hour), due))

	// Early return is negative, never late.
	assert.Equal(t, -3, LateDays(due.AddDate(0, 0, -3), due))

	assert.Equal(t, 1, LateDays(due.AddDate(0, 0, 1), due))
	assert.Equal(t, 5, LateDays(due.AddDate(0, 0, 5), due))
}

func TestFee(t *testing.T) {
	assert.Equal(t, model.Amount(0), Fee(0))
	assert.Equal(t, model.Amount(0), Fee(-2))
	assert.Equal(t, model.Amount(1500), Fee(1))
	assert.Equal(t, model.Amount(7500), Fee(5))
}

func TestIsLateFlipsAtDueInstant(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	loan := model.Loan{DueDate: model.Date{Time: due}}

	assert.False(t, loan.IsLate(due), "equal timestamps are not late")
	assert.True(t, loan.IsLate(due.Add(time.Nanosecond)))

	loan.Returned = true
	assert.False(t, loan.IsLate(due.AddDate(0, 0, 30)), "returned loans are never late")
}

func TestAssessOnTime(t *testing.T) {
	loan := model.Loan{
		ID:      1,
		DueDate: model.NewDate(2024, time.January, 10),
	}

	a := Assess(loan, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, OnTime, a.Outcome)
	assert.Equal(t, model.Amount(0), a.Fee)
	assert.Empty(t, a.Description)
}

// Member M1 borrows book B1 on 2024-01-01 due 2024-01-10; returned at
// simulated now 2024-01-15.
func TestAssessLateScenario(t *testing.T) {
	loan := model.Loan{
		ID:       42,
		MemberID: 1,
		BookID:   7,
		LoanDate: model.NewDate(2024, time.January, 1),
		DueDate:  model.NewDate(2024, time.January, 10),
	}
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	a := Assess(loan, now)
	require.Equal(t, Late, a.Outcome)
	assert.Equal(t, 5, a.LateDays)
	assert.Equal(t, model.Amount(7500), a.Fee)
	assert.Equal(t, "Late by 5 days", a.Description)

	fields := a.FineFields(loan)
	assert.Equal(t, int64(1), fields.MemberID)
	assert.Equal(t, int64(7), fields.BookID)
	assert.Equal(t, model.FineTypeLate, fields.Type)
	assert.Equal(t, model.Amount(7500), fields.Amount)
	assert.Equal(t, "Late by 5 days", fields.Description)
}
