package view

import "github.com/fajrulhm/perpus-admin/model"

// MemberStats are the per-member counters shown on the activity page.
// Active + Returned always equals the member's total loan count.
type MemberStats struct {
	Active    int
	Returned  int
	FineCount int
}

func StatsFor(loans []model.Loan, fines []model.Fine, memberID int64) MemberStats {
	var stats MemberStats
	for _, l := range loans {
		if l.MemberID != memberID {
			continue
		}
		if l.Returned {
			stats.Returned++
		} else {
			stats.Active++
		}
	}
	for _, f := range fines {
		if f.MemberID == memberID {
			stats.FineCount++
		}
	}
	return stats
}

// LoansForMember filters a member's loans in input order.
func LoansForMember(loans []model.Loan, memberID int64) []model.Loan {
	matched := []model.Loan{}
	for _, l := range loans {
		if l.MemberID == memberID {
			matched = append(matched, l)
		}
	}
	return matched
}
