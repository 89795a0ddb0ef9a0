package view

import (
	"testing"
	"time"

	"github.com/fajrulhm/perpus-admin/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) model.Timestamp {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return model.Timestamp{Time: t}
}

func TestJoinUnresolvedIDsRenderUnknown(t *testing.T) {
	members := []model.Member{{ID: 1, Name: "Siti"}}
	books := []model.Book{{ID: 10, Title: "Bumi Manusia"}}
	loans := []model.Loan{
		{ID: 100, MemberID: 1, BookID: 10},
		{ID: 101, MemberID: 99, BookID: 98},
	}

	rows := LoanRows(loans, members, books, nil, time.Now())
	require.Len(t, rows, 2)
	assert.Equal(t, "Siti", rows[0].MemberName)
	assert.Equal(t, "Bumi Manusia", rows[0].BookTitle)
	assert.Equal(t, Unknown, rows[1].MemberName)
	assert.Equal(t, Unknown, rows[1].BookTitle)
}

func TestFinesMatchOnBothIDs(t *testing.T) {
	fines := []model.Fine{
		{ID: 1, MemberID: 1, BookID: 10},
		{ID: 2, MemberID: 1, BookID: 11},
		{ID: 3, MemberID: 2, BookID: 10},
		{ID: 4, MemberID: 1, BookID: 10},
	}

	matched := FinesFor(fines, 1, 10)
	require.Len(t, matched, 2)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, int64(4), matched[1].ID)
}

func TestMemberStatsPartitionLoanCounts(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, MemberID: 1, Returned: false},
		{ID: 2, MemberID: 1, Returned: true},
		{ID: 3, MemberID: 1, Returned: false},
		{ID: 4, MemberID: 2, Returned: true},
	}
	fines := []model.Fine{
		{ID: 1, MemberID: 1},
		{ID: 2, MemberID: 2},
	}

	stats := StatsFor(loans, fines, 1)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Returned)
	assert.Equal(t, 1, stats.FineCount)

	// Active + Returned covers every loan of the member.
	total := len(LoansForMember(loans, 1))
	assert.Equal(t, total, stats.Active+stats.Returned)
}

func TestPartitionDisjointAndExhaustive(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, Returned: false},
		{ID: 2, Returned: true},
		{ID: 3, Returned: false},
		{ID: 4, Returned: true},
		{ID: 5, Returned: false},
	}

	outstanding, returned := PartitionLoans(loans)
	assert.Len(t, outstanding, 3)
	assert.Len(t, returned, 2)

	seen := map[int64]int{}
	for _, l := range outstanding {
		assert.False(t, l.Returned)
		seen[l.ID]++
	}
	for _, l := range returned {
		assert.True(t, l.Returned)
		seen[l.ID]++
	}
	require.Len(t, seen, len(loans))
	for id, n := range seen {
		assert.Equal(t, 1, n, "loan %d must land in exactly one partition", id)
	}
}

func TestSortFallbackChain(t *testing.T) {
	// Only creation timestamps: order equals descending creation order.
	books := []model.Book{
		{ID: 1, CreatedAt: ts("2024-01-01")},
		{ID: 2, CreatedAt: ts("2024-03-01")},
		{ID: 3, CreatedAt: ts("2024-02-01")},
	}
	sorted := SortBooksRecent(books)
	assert.Equal(t, []int64{2, 3, 1}, idsOfBooks(sorted))

	// When both exist the update timestamp wins.
	books[0].UpdatedAt = ts("2024-06-01")
	sorted = SortBooksRecent(books)
	assert.Equal(t, []int64{1, 2, 3}, idsOfBooks(sorted))
}

func TestSortLoansFallsBackToDueDate(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, DueDate: model.NewDate(2024, time.January, 5)},
		{ID: 2, DueDate: model.NewDate(2024, time.January, 20)},
		{ID: 3, CreatedAt: ts("2024-02-01")},
	}
	sorted := SortLoansRecent(loans)
	assert.Equal(t, []int64{3, 2, 1}, idsOfLoans(sorted))
}

func TestSortIsStable(t *testing.T) {
	same := ts("2024-01-01")
	loans := []model.Loan{
		{ID: 1, CreatedAt: same},
		{ID: 2, CreatedAt: same},
		{ID: 3, CreatedAt: same},
	}

	first := SortLoansRecent(loans)
	second := SortLoansRecent(first)
	assert.Equal(t, idsOfLoans(first), idsOfLoans(second))
	assert.Equal(t, []int64{1, 2, 3}, idsOfLoans(first), "equal keys keep input order")
}

func TestSortDoesNotMutateInput(t *testing.T) {
	books := []model.Book{
		{ID: 1, CreatedAt: ts("2024-01-01")},
		{ID: 2, CreatedAt: ts("2024-02-01")},
	}
	_ = SortBooksRecent(books)
	assert.Equal(t, int64(1), books[0].ID)
}

func TestFilterFineRows(t *testing.T) {
	rows := []FineRow{
		{Fine: model.Fine{ID: 1, Type: model.FineTypeLate}, MemberName: "Siti", BookTitle: "Bumi Manusia"},
		{Fine: model.Fine{ID: 2, Type: model.FineTypeDamage}, MemberName: "Budi", BookTitle: "Laskar Pelangi"},
		{Fine: model.Fine{ID: 3, Type: model.FineTypeLate}, MemberName: "Budi", BookTitle: "Bumi Manusia"},
	}

	assert.Len(t, FilterFineRows(rows, "", ""), 3)
	assert.Len(t, FilterFineRows(rows, "budi", ""), 2)
	assert.Len(t, FilterFineRows(rows, "bumi", model.FineTypeLate), 2)
	assert.Len(t, FilterFineRows(rows, "laskar", model.FineTypeLate), 0)
}

func TestMonthlyCountsFallbacks(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, LoanDate: model.NewDate(2024, time.January, 5)},
		{ID: 2, LoanDate: model.NewDate(2024, time.January, 20)},
		{ID: 3}, // no date, skipped
	}
	members := []model.Member{
		{ID: 1, CreatedAt: ts("2024-02-10")},
		{ID: 2, BirthDate: model.NewDate(2024, time.January, 1)}, // falls back to birth date
	}
	books := []model.Book{
		{ID: 1, PublishYear: "2024"}, // falls back to publication year
	}

	rows := MonthlyCounts(loans, members, books)
	require.Len(t, rows, 2)
	assert.Equal(t, MonthlyRow{Month: "2024-01", Loans: 2, Members: 1, Books: 1}, rows[0])
	assert.Equal(t, MonthlyRow{Month: "2024-02", Loans: 0, Members: 1, Books: 0}, rows[1])
}

func TestMemoRecomputesOnlyOnVersionChange(t *testing.T) {
	var calls int
	var memo Memo[int]

	compute := func() int {
		calls++
		return calls
	}

	assert.Equal(t, 1, memo.Get(compute, 1, 7))
	assert.Equal(t, 1, memo.Get(compute, 1, 7), "same versions reuse the cached value")
	assert.Equal(t, 2, memo.Get(compute, 2, 7), "moved version recomputes")
	memo.Invalidate()
	assert.Equal(t, 3, memo.Get(compute, 2, 7))
}

func idsOfBooks(books []model.Book) []int64 {
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return ids
}

func idsOfLoans(loans []model.Loan) []int64 {
	ids := make([]int64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	return ids
}
