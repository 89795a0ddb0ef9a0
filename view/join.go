// Package view computes display projections over collections already
// fetched from the remote API: joins, aggregates, sorts, partitions. Every
// function is pure (same inputs, same output), so callers can memoize on
// the collections' versions.
package view

import (
	"time"

	"github.com/fajrulhm/perpus-admin/model"
)

// Unknown renders in place of any id that does not resolve against the
// fetched reference data.
const Unknown = "Unknown"

// Loan display statuses.
const (
	StatusReturned = "Returned"
	StatusOverdue  = "Overdue"
	StatusBorrowed = "Borrowed"
)

func MemberName(members []model.Member, id int64) string {
	for _, m := range members {
		if m.ID == id {
			return m.Name
		}
	}
	return Unknown
}

func FindMember(members []model.Member, id int64) (model.Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Member{}, false
}

func BookTitle(books []model.Book, id int64) string {
	for _, b := range books {
		if b.ID == id {
			return b.Title
		}
	}
	return Unknown
}

func FindBook(books []model.Book, id int64) (model.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

// LoanRow is one loan joined with its reference data for display.
type LoanRow struct {
	Loan       model.Loan
	MemberName string
	BookTitle  string
	Status     string
	Fines      []model.Fine
}

// LoanRows joins loans against members, books and fines. Fines match on the
// (member id, book id) pair: the pair does not identify a single loan, so a
// row carries every fine for its pair.
func LoanRows(loans []model.Loan, members []model.Member, books []model.Book, fines []model.Fine, now time.Time) []LoanRow {
	rows := make([]LoanRow, 0, len(loans))
	for _, loan := range loans {
		rows = append(rows, LoanRow{
			Loan:       loan,
			MemberName: MemberName(members, loan.MemberID),
			BookTitle:  BookTitle(books, loan.BookID),
			Status:     LoanStatus(loan, now),
			Fines:      FinesFor(fines, loan.MemberID, loan.BookID),
		})
	}
	return rows
}

func LoanStatus(loan model.Loan, now time.Time) string {
	switch {
	case loan.Returned:
		return StatusReturned
	case loan.IsLate(now):
		return StatusOverdue
	default:
		return StatusBorrowed
	}
}

// FinesFor returns every fine recorded against a member+book pair, in input
// order.
func FinesFor(fines []model.Fine, memberID, bookID int64) []model.Fine {
	matched := []model.Fine{}
	for _, f := range fines {
		if f.MemberID == memberID && f.BookID == bookID {
			matched = append(matched, f)
		}
	}
	return matched
}

// FineRow is one fine joined with its member and book names.
type FineRow struct {
	Fine       model.Fine
	MemberName string
	BookTitle  string
}

func FineRows(fines []model.Fine, members []model.Member, books []model.Book) []FineRow {
	rows := make([]FineRow, 0, len(fines))
	for _, f := range fines {
		rows = append(rows, FineRow{
			Fine:       f,
			MemberName: MemberName(members, f.MemberID),
			BookTitle:  BookTitle(books, f.BookID),
		})
	}
	return rows
}
