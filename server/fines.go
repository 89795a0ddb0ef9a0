package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/page"
	"github.com/fajrulhm/perpus-admin/view"
)

type finesPage struct {
	basePage
	Rows      []view.FineRow
	Search    string
	Type      string
	FineTypes []string
	Members   []model.Member
	Books     []model.Book
}

func (h *Handler) showFines(w http.ResponseWriter, r *http.Request) {
	st, err := h.freshState(r, "/FinesPage", h.loadFines)
	if err != nil {
		h.render(w, r, "fines", finesPage{basePage: basePage{Active: "fines", Error: genericLoadError}})
		return
	}
	h.renderFines(w, r, st, "", "")
}

func (h *Handler) loadFines(st *page.State, token string) []page.Task {
	return []page.Task{
		{Name: "fines", Run: func(ctx context.Context) error {
			fines, err := h.api.ListFines(ctx, token)
			if err != nil {
				return err
			}
			st.Fines.Reset(fines)
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
		{Name: "loans", Run: func(ctx context.Context) error {
			loans, err := h.api.ListLoans(ctx, token)
			if err != nil {
				return err
			}
			st.Loans.Reset(loans)
			return nil
		}},
	}
}

func (h *Handler) renderFines(w http.ResponseWriter, r *http.Request, st *page.State, notice, errMsg string) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	fineType := r.URL.Query().Get("type")
	if !model.ValidFineType(fineType) {
		fineType = ""
	}

	sorted := view.SortFinesRecent(st.Fines.Items())
	rows := view.FineRows(sorted, st.Members.Items(), st.Books.Items())
	h.render(w, r, "fines", finesPage{
		basePage:  basePage{Active: "fines", Notice: notice, Error: errMsg},
		Rows:      view.FilterFineRows(rows, search, fineType),
		Search:    search,
		Type:      fineType,
		FineTypes: model.FineTypes,
		Members:   view.SortMembersRecent(st.Members.Items()),
		Books:     view.SortBooksRecent(st.Books.Items()),
	})
}

// fineEntry is one row of the record-fines form. The form posts parallel
// arrays, one element per entry.
type fineEntry struct {
	Amount      model.Amount
	Type        string
	Description string
}

// fineEntriesFromForm collects the staged entries. A row left entirely blank
// is skipped, so a submit with no fines at all is valid and records just the
// loan.
func fineEntriesFromForm(r *http.Request) ([]fineEntry, bool) {
	amounts := r.Form["jumlah_denda"]
	types := r.Form["jenis_denda"]
	descriptions := r.Form["deskripsi"]
	if len(amounts) != len(types) || len(amounts) != len(descriptions) {
		return nil, false
	}

	entries := []fineEntry{}
	for i := range amounts {
		raw := strings.TrimSpace(amounts[i])
		if raw == "" && strings.TrimSpace(descriptions[i]) == "" {
			continue
		}
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || amount <= 0 || !model.ValidFineType(types[i]) {
			return nil, false
		}
		entries = append(entries, fineEntry{
			Amount:      model.Amount(amount),
			Type:        types[i],
			Description: strings.TrimSpace(descriptions[i]),
		})
	}
	return entries, true
}

// recordFines registers a borrowing for the selected member+book pair and
// then one fine per submitted entry against the same pair. Already-created
// records stay created when a later one fails; the page says so and the next
// full load shows exactly what the server accepted.
func (h *Handler) recordFines(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/FinesPage", h.loadFines)
	if err != nil {
		h.render(w, r, "fines", finesPage{basePage: basePage{Active: "fines", Error: genericLoadError}})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderFines(w, r, st, "", genericMutationError)
		return
	}
	memberID := request.FormInt64(r, "id_member")
	bookID := request.FormInt64(r, "id_buku")
	if memberID == 0 || bookID == 0 {
		h.renderFines(w, r, st, "", "Member and book are required.")
		return
	}
	entries, ok := fineEntriesFromForm(r)
	if !ok {
		h.renderFines(w, r, st, "", "Each fine needs a positive amount and a valid type.")
		return
	}

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Loans, page.OpAppend, 0, func() (model.Loan, error) {
		return h.api.CreateLoan(r.Context(), token, model.LoanFields{MemberID: memberID, BookID: bookID})
	})
	if err != nil {
		h.renderFines(w, r, st, "", genericMutationError)
		return
	}

	for _, entry := range entries {
		fields := model.FineFields{
			MemberID:    memberID,
			BookID:      bookID,
			Amount:      entry.Amount,
			Type:        entry.Type,
			Description: entry.Description,
		}
		_, err = page.Apply(st.Mutations, st.Fines, page.OpAppend, 0, func() (model.Fine, error) {
			return h.api.CreateFine(r.Context(), token, fields)
		})
		if err != nil {
			h.renderFines(w, r, st, "", genericMutationError)
			return
		}
	}
	h.renderFines(w, r, st, "Fines recorded.", "")
}
