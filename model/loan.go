package model

import "time"

// Loan links one member to one book for a date range. After creation the
// only transition is the return, done through its own endpoint.
type Loan struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"id_member"`
	BookID    int64     `json:"id_buku"`
	LoanDate  Date      `json:"tgl_pinjam"`
	DueDate   Date      `json:"tgl_pengembalian"`
	Returned  bool      `json:"status_pengembalian"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// IsLate is derived, never stored: an outstanding loan is late only once
// now is strictly past the due date. Equal instants are not late.
func (l Loan) IsLate(now time.Time) bool {
	if l.Returned {
		return false
	}
	return now.After(l.DueDate.Time)
}

type LoanFields struct {
	MemberID int64 `json:"id_member"`
	BookID   int64 `json:"id_buku"`
	LoanDate Date  `json:"tgl_pinjam,omitempty"`
	DueDate  Date  `json:"tgl_pengembalian,omitempty"`
}
