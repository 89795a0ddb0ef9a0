package view

import "github.com/fajrulhm/perpus-admin/model"

// Tab names for the loan list. Exactly one partition is visible at a time,
// switched by explicit tab selection.
const (
	TabOutstanding = "outstanding"
	TabReturned    = "returned"
)

// PartitionLoans splits loans on the returned flag. The two slices are
// disjoint and together contain every input loan, each exactly once.
func PartitionLoans(loans []model.Loan) (outstanding, returned []model.Loan) {
	outstanding = []model.Loan{}
	returned = []model.Loan{}
	for _, l := range loans {
		if l.Returned {
			returned = append(returned, l)
		} else {
			outstanding = append(outstanding, l)
		}
	}
	return outstanding, returned
}

// NormalizeTab maps anything that is not the returned tab to outstanding.
func NormalizeTab(tab string) string {
	if tab == TabReturned {
		return TabReturned
	}
	return TabOutstanding
}
