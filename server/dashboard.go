package server

import (
	"context"
	"net/http"

	"github.com/fajrulhm/perpus-admin/page"
	"github.com/fajrulhm/perpus-admin/view"
)

type dashboardPage struct {
	basePage
	Months       []view.MonthlyRow
	TotalLoans   int
	TotalMembers int
	TotalBooks   int
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	st, err := h.freshState(r, "/dashboard", h.loadDashboard)
	data := dashboardPage{basePage: basePage{Active: "dashboard"}}
	if err != nil {
		data.Error = genericLoadError
		h.render(w, r, "dashboard", data)
		return
	}

	loans := st.Loans.Items()
	members := st.Members.Items()
	books := st.Books.Items()
	data.Months = view.MonthlyCounts(loans, members, books)
	data.TotalLoans = len(loans)
	data.TotalMembers = len(members)
	data.TotalBooks = len(books)
	h.render(w, r, "dashboard", data)
}

func (h *Handler) loadDashboard(st *page.State, token string) []page.Task {
	return []page.Task{
		{Name: "loans", Run: func(ctx context.Context) error {
			loans, err := h.api.ListLoans(ctx, token)
			if err != nil {
				return err
			}
			st.Loans.Reset(loans)
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
		{Name: "books", Run: func(ctx context.Context) error {
			books, err := h.api.ListBooks(ctx, token)
			if err != nil {
				return err
			}
			st.Books.Reset(books)
			return nil
		}},
	}
}
