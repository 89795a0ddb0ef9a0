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

type booksPage struct {
	basePage
	Books []model.Book
}

func (h *Handler) showBooks(w http.ResponseWriter, r *http.Request) {
	st, err := h.freshState(r, "/mybooks", h.loadBooks)
	if err != nil {
		h.render(w, r, "books", booksPage{basePage: basePage{Active: "books", Error: genericLoadError}})
		return
	}
	h.renderBooks(w, r, st, "")
}

func (h *Handler) renderBooks(w http.ResponseWriter, r *http.Request, st *page.State, notice string) {
	data := booksPage{
		basePage: basePage{Active: "books", Notice: notice},
		Books:    view.SortBooksRecent(st.Books.Items()),
	}
	h.render(w, r, "books", data)
}

func (h *Handler) loadBooks(st *page.State, token string) []page.Task {
	return []page.Task{
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

func bookFieldsFromForm(r *http.Request) (model.BookFields, bool) {
	stock, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("stok")))
	fields := model.BookFields{
		ShelfNumber: strings.TrimSpace(r.FormValue("no_rak")),
		Title:       strings.TrimSpace(r.FormValue("judul")),
		Author:      strings.TrimSpace(r.FormValue("pengarang")),
		PublishYear: strings.TrimSpace(r.FormValue("tahun_terbit")),
		Publisher:   strings.TrimSpace(r.FormValue("penerbit")),
		Stock:       stock,
		Detail:      strings.TrimSpace(r.FormValue("detail")),
	}
	if fields.Title == "" || fields.Author == "" || stock < 0 {
		return fields, false
	}
	return fields, true
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/mybooks", h.loadBooks)
	if err != nil {
		h.render(w, r, "books", booksPage{basePage: basePage{Active: "books", Error: genericLoadError}})
		return
	}

	fields, ok := bookFieldsFromForm(r)
	if !ok {
		h.renderBooksError(w, r, st, "Title, author and a non-negative stock are required.")
		return
	}

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Books, page.OpAppend, 0, func() (model.Book, error) {
		return h.api.CreateBook(r.Context(), token, fields)
	})
	if err != nil {
		h.renderBooksError(w, r, st, genericMutationError)
		return
	}
	h.renderBooks(w, r, st, "Book added.")
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/mybooks", h.loadBooks)
	if err != nil {
		h.render(w, r, "books", booksPage{basePage: basePage{Active: "books", Error: genericLoadError}})
		return
	}

	id := request.RouteInt64Param(r, "id")
	current, ok := st.Books.Find(id)
	if !ok {
		h.renderBooksError(w, r, st, genericMutationError)
		return
	}
	fields, ok := bookFieldsFromForm(r)
	if !ok {
		h.renderBooksError(w, r, st, "Title, author and a non-negative stock are required.")
		return
	}

	// The optimistic copy keeps the local timestamps; server-side values
	// reconcile on the next full load.
	optimistic := current
	optimistic.ShelfNumber = fields.ShelfNumber
	optimistic.Title = fields.Title
	optimistic.Author = fields.Author
	optimistic.PublishYear = fields.PublishYear
	optimistic.Publisher = fields.Publisher
	optimistic.Stock = fields.Stock
	optimistic.Detail = fields.Detail

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Books, page.OpReplace, 0, func() (model.Book, error) {
		if _, err := h.api.UpdateBook(r.Context(), token, id, fields); err != nil {
			return model.Book{}, err
		}
		return optimistic, nil
	})
	if err != nil {
		h.renderBooksError(w, r, st, genericMutationError)
		return
	}
	h.renderBooks(w, r, st, "Book updated.")
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/mybooks", h.loadBooks)
	if err != nil {
		h.render(w, r, "books", booksPage{basePage: basePage{Active: "books", Error: genericLoadError}})
		return
	}

	id := request.RouteInt64Param(r, "id")
	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Books, page.OpRemove, id, func() (model.Book, error) {
		return model.Book{}, h.api.DeleteBook(r.Context(), token, id)
	})
	if err != nil {
		h.renderBooksError(w, r, st, genericMutationError)
		return
	}
	h.renderBooks(w, r, st, "Book deleted.")
}

func (h *Handler) renderBooksError(w http.ResponseWriter, r *http.Request, st *page.State, msg string) {
	data := booksPage{
		basePage: basePage{Active: "books", Error: msg},
		Books:    view.SortBooksRecent(st.Books.Items()),
	}
	h.render(w, r, "books", data)
}
