package view

import (
	"sort"
	"time"

	"github.com/fajrulhm/perpus-admin/model"
)

const monthKeyLayout = "2006-01"

// MonthlyRow is one month of the dashboard chart.
type MonthlyRow struct {
	Month   string // YYYY-MM
	Loans   int
	Members int
	Books   int
}

// MonthlyCounts buckets loans by loan date, members by creation date
// (falling back to birth date) and books by creation date (falling back to
// the publication year), over the union of observed months in ascending
// order. Records with no usable date are skipped.
func MonthlyCounts(loans []model.Loan, members []model.Member, books []model.Book) []MonthlyRow {
	loanMonths := map[string]int{}
	for _, l := range loans {
		if l.LoanDate.IsZero() {
			continue
		}
		loanMonths[l.LoanDate.Format(monthKeyLayout)]++
	}

	memberMonths := map[string]int{}
	for _, m := range members {
		when := m.CreatedAt.Time
		if when.IsZero() {
			when = m.BirthDate.Time
		}
		if when.IsZero() {
			continue
		}
		memberMonths[when.Format(monthKeyLayout)]++
	}

	bookMonths := map[string]int{}
	for _, b := range books {
		when := b.CreatedAt.Time
		if when.IsZero() && b.PublishYear != "" {
			if year, err := time.Parse("2006", b.PublishYear); err == nil {
				when = year
			}
		}
		if when.IsZero() {
			continue
		}
		bookMonths[when.Format(monthKeyLayout)]++
	}

	seen := map[string]struct{}{}
	for k := range loanMonths {
		seen[k] = struct{}{}
	}
	for k := range memberMonths {
		seen[k] = struct{}{}
	}
	for k := range bookMonths {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]MonthlyRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, MonthlyRow{
			Month:   k,
			Loans:   loanMonths[k],
			Members: memberMonths[k],
			Books:   bookMonths[k],
		})
	}
	return rows
}
