package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fajrulhm/perpus-admin/fine"
	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/http/response"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/page"
	"github.com/fajrulhm/perpus-admin/view"
)

type borrowPage struct {
	basePage
	Tab         string
	Rows        []view.LoanRow
	Outstanding int
	Returned    int
	Members     []model.Member
	Books       []model.Book
}

type lateFinePage struct {
	basePage
	LoanID     int64
	MemberName string
	BookTitle  string
	LateDays   int
	Fee        model.Amount
}

func (h *Handler) showBorrow(w http.ResponseWriter, r *http.Request) {
	st, err := h.freshState(r, "/BorrowPage", h.loadBorrow)
	if err != nil {
		h.render(w, r, "borrow", borrowPage{basePage: basePage{Active: "borrow", Error: genericLoadError}})
		return
	}
	h.renderBorrow(w, r, st, view.NormalizeTab(r.URL.Query().Get("view")), "", "")
}

func (h *Handler) loadBorrow(st *page.State, token string) []page.Task {
	return []page.Task{
		{Name: "loans", Run: func(ctx context.Context) error {
			loans, err := h.api.ListLoans(ctx, token)
			if err != nil {
				return err
			}
			st.Loans.Reset(loans)
			return nil
		}},
		{Name: "books", Run: func(ctx context.Context) error {
			books, err := h.api.ListBooks(ctx, token)
			if err != nil {
				return err
			}
			st.Books.Reset(books)
			return nil
		}},
		{Name: "members", Run: func(ctx context.Context) error {
			members, err := h.api.ListMembers(ctx, token)
			if err != nil {
				return err
			}
			st.Members.Reset(members)
			return nil
		}},
		{Name: "fines", Run: func(ctx context.Context) error {
			fines, err := h.api.ListFines(ctx, token)
			if err != nil {
				return err
			}
			st.Fines.Reset(fines)
			return nil
		}},
	}
}

// renderBorrow renders one partition of the loan list. The joined rows are
// memoized on the visit's collection versions, so a render that follows no
// mutation reuses the previous projection.
func (h *Handler) renderBorrow(w http.ResponseWriter, r *http.Request, st *page.State, tab, notice, errMsg string) {
	memo := h.borrowMemo(request.SessionID(r))
	rows := memo.Get(func() []view.LoanRow {
		sorted := view.SortLoansRecent(st.Loans.Items())
		return view.LoanRows(sorted, st.Members.Items(), st.Books.Items(), st.Fines.Items(), h.now())
	}, st.Gen, st.Loans.Version(), st.Members.Version(), st.Books.Version(), st.Fines.Version())

	outstanding, returned := view.PartitionLoans(st.Loans.Items())
	visible := make([]view.LoanRow, 0, len(rows))
	wantReturned := tab == view.TabReturned
	for _, row := range rows {
		if row.Loan.Returned == wantReturned {
			visible = append(visible, row)
		}
	}

	h.render(w, r, "borrow", borrowPage{
		basePage:    basePage{Active: "borrow", Notice: notice, Error: errMsg},
		Tab:         tab,
		Rows:        visible,
		Outstanding: len(outstanding),
		Returned:    len(returned),
		Members:     st.Members.Items(),
		Books:       st.Books.Items(),
	})
}

func (h *Handler) createLoan(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/BorrowPage", h.loadBorrow)
	if err != nil {
		h.render(w, r, "borrow", borrowPage{basePage: basePage{Active: "borrow", Error: genericLoadError}})
		return
	}

	memberID := request.FormInt64(r, "id_member")
	bookID := request.FormInt64(r, "id_buku")
	loanDate := strings.TrimSpace(r.FormValue("tgl_pinjam"))
	dueDate := strings.TrimSpace(r.FormValue("tgl_pengembalian"))
	if memberID == 0 || bookID == 0 || loanDate == "" || dueDate == "" {
		h.renderBorrow(w, r, st, view.TabOutstanding, "", "All fields are required.")
		return
	}

	fields := model.LoanFields{MemberID: memberID, BookID: bookID}
	if parsed, err := time.Parse("2006-01-02", loanDate); err == nil {
		fields.LoanDate = model.Date{Time: parsed}
	}
	if parsed, err := time.Parse("2006-01-02", dueDate); err == nil {
		fields.DueDate = model.Date{Time: parsed}
	}

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Loans, page.OpAppend, 0, func() (model.Loan, error) {
		return h.api.CreateLoan(r.Context(), token, fields)
	})
	if err != nil {
		h.renderBorrow(w, r, st, view.TabOutstanding, "", genericMutationError)
		return
	}
	h.renderBorrow(w, r, st, view.TabOutstanding, "Loan recorded.", "")
}

// returnLoan marks the loan returned and assesses lateness. An on-time
// return lands directly in the returned tab; a late one proposes the fee
// for confirmation first.
func (h *Handler) returnLoan(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/BorrowPage", h.loadBorrow)
	if err != nil {
		h.render(w, r, "borrow", borrowPage{basePage: basePage{Active: "borrow", Error: genericLoadError}})
		return
	}

	id := request.RouteInt64Param(r, "id")
	loan, ok := st.Loans.Find(id)
	if !ok {
		h.renderBorrow(w, r, st, view.TabOutstanding, "", genericMutationError)
		return
	}

	returned := loan
	returned.Returned = true

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Loans, page.OpReplace, 0, func() (model.Loan, error) {
		if err := h.api.ReturnLoan(r.Context(), token, id); err != nil {
			return model.Loan{}, err
		}
		return returned, nil
	})
	if err != nil {
		h.renderBorrow(w, r, st, view.TabOutstanding, "", genericMutationError)
		return
	}

	assessment := fine.Assess(loan, h.now())
	if assessment.Outcome == fine.OnTime {
		h.renderBorrow(w, r, st, view.TabReturned, "Book returned on time.", "")
		return
	}

	h.render(w, r, "late_fine", lateFinePage{
		basePage:   basePage{Active: "borrow"},
		LoanID:     id,
		MemberName: view.MemberName(st.Members.Items(), loan.MemberID),
		BookTitle:  view.BookTitle(st.Books.Items(), loan.BookID),
		LateDays:   assessment.LateDays,
		Fee:        assessment.Fee,
	})
}

// confirmLateFine persists the proposed late fine and moves on to the fines
// view, mirroring the confirm path of the return flow.
func (h *Handler) confirmLateFine(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/BorrowPage", h.loadBorrow)
	if err != nil {
		h.render(w, r, "borrow", borrowPage{basePage: basePage{Active: "borrow", Error: genericLoadError}})
		return
	}

	id := request.RouteInt64Param(r, "id")
	loan, ok := st.Loans.Find(id)
	if !ok {
		h.renderBorrow(w, r, st, view.TabReturned, "", genericMutationError)
		return
	}

	// Reassess rather than trusting posted amounts; the due date is the
	// only input that matters.
	assessment := fine.Assess(loan, h.now())
	if assessment.Outcome == fine.OnTime {
		h.renderBorrow(w, r, st, view.TabReturned, "Book returned on time.", "")
		return
	}

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Fines, page.OpAppend, 0, func() (model.Fine, error) {
		return h.api.CreateFine(r.Context(), token, assessment.FineFields(loan))
	})
	if err != nil {
		h.renderBorrow(w, r, st, view.TabReturned, "", genericMutationError)
		return
	}
	response.Redirect(w, r, "/FinesPage")
}

// declineLateFine skips the fine: the loan still counts as returned and the
// page reloads fresh data on the returned tab.
func (h *Handler) declineLateFine(w http.ResponseWriter, r *http.Request) {
	response.Redirect(w, r, "/BorrowPage?view="+view.TabReturned)
}
