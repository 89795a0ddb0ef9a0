package server

import (
	"context"
	"net/http"

	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/page"
	"github.com/fajrulhm/perpus-admin/view"
)

type memberCard struct {
	Member model.Member
	Stats  view.MemberStats
}

type memberDetail struct {
	Member model.Member
	Loans  []view.LoanRow
	Fines  []model.Fine
}

type activityPage struct {
	basePage
	Cards  []memberCard
	Detail *memberDetail
}

// showActivity renders the per-member loan activity overview, or one
// member's loan and fine history when ?member= selects a card.
func (h *Handler) showActivity(w http.ResponseWriter, r *http.Request) {
	st, err := h.freshState(r, "/DataPinjam", h.loadActivity)
	if err != nil {
		h.render(w, r, "activity", activityPage{basePage: basePage{Active: "activity", Error: genericLoadError}})
		return
	}

	loans := st.Loans.Items()
	fines := st.Fines.Items()
	members := view.SortMembersRecent(st.Members.Items())

	data := activityPage{basePage: basePage{Active: "activity"}}
	for _, m := range members {
		data.Cards = append(data.Cards, memberCard{
			Member: m,
			Stats:  view.StatsFor(loans, fines, m.ID),
		})
	}

	if id := request.QueryInt64(r, "member"); id != 0 {
		if member, ok := view.FindMember(members, id); ok {
			own := view.SortLoansRecent(view.LoansForMember(loans, id))
			ownFines := []model.Fine{}
			for _, f := range fines {
				if f.MemberID == id {
					ownFines = append(ownFines, f)
				}
			}
			data.Detail = &memberDetail{
				Member: member,
				Loans:  view.LoanRows(own, members, st.Books.Items(), fines, h.now()),
				Fines:  view.SortFinesRecent(ownFines),
			}
		}
	}

	h.render(w, r, "activity", data)
}

func (h *Handler) loadActivity(st *page.State, token string) []page.Task {
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
