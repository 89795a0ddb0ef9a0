package view

import (
	"sort"
	"time"

	"github.com/fajrulhm/perpus-admin/model"
)

// RecencyKey is the "most recent" sort key with its fallback chain: the
// update timestamp wins, else the creation timestamp, else the caller's
// fallback (the due date for loans, zero otherwise).
func RecencyKey(updated, created model.Timestamp, fallback time.Time) time.Time {
	if !updated.IsZero() {
		return updated.Time
	}
	if !created.IsZero() {
		return created.Time
	}
	return fallback
}

// SortBooksRecent returns books in stable descending recency order.
func SortBooksRecent(books []model.Book) []model.Book {
	sorted := append([]model.Book(nil), books...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki := RecencyKey(sorted[i].UpdatedAt, sorted[i].CreatedAt, time.Time{})
		kj := RecencyKey(sorted[j].UpdatedAt, sorted[j].CreatedAt, time.Time{})
		return ki.After(kj)
	})
	return sorted
}

func SortMembersRecent(members []model.Member) []model.Member {
	sorted := append([]model.Member(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki := RecencyKey(sorted[i].UpdatedAt, sorted[i].CreatedAt, time.Time{})
		kj := RecencyKey(sorted[j].UpdatedAt, sorted[j].CreatedAt, time.Time{})
		return ki.After(kj)
	})
	return sorted
}

func SortLoansRecent(loans []model.Loan) []model.Loan {
	sorted := append([]model.Loan(nil), loans...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki := RecencyKey(sorted[i].UpdatedAt, sorted[i].CreatedAt, sorted[i].DueDate.Time)
		kj := RecencyKey(sorted[j].UpdatedAt, sorted[j].CreatedAt, sorted[j].DueDate.Time)
		return ki.After(kj)
	})
	return sorted
}

// SortFinesRecent orders fines by creation time, newest first. Fines are
// never edited, so creation is the natural key; the update timestamp only
// steps in when creation is missing from the payload.
func SortFinesRecent(fines []model.Fine) []model.Fine {
	sorted := append([]model.Fine(nil), fines...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki := RecencyKey(sorted[i].CreatedAt, sorted[i].UpdatedAt, time.Time{})
		kj := RecencyKey(sorted[j].CreatedAt, sorted[j].UpdatedAt, time.Time{})
		return ki.After(kj)
	})
	return sorted
}
