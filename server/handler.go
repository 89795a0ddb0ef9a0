package server

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/fajrulhm/perpus-admin/api"
	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/http/response"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/page"
	"github.com/fajrulhm/perpus-admin/session"
	"github.com/fajrulhm/perpus-admin/view"
	"github.com/pkg/errors"
)

//go:embed templates
var templateFS embed.FS

// genericLoadError is the single message shown for any failed page load;
// which collection failed is logged, never surfaced.
const genericLoadError = "Failed to load data. Please try again."

// genericMutationError is the single message for any failed
// create/update/delete; the form stays as submitted.
const genericMutationError = "Something went wrong. The change was not saved."

type Handler struct {
	api      *api.Client
	sessions *session.Manager
	pages    *page.Registry
	tmpl     *template.Template

	memoMu      sync.Mutex
	borrowMemos map[string]*view.Memo[[]view.LoanRow]

	// now is replaceable in tests; the return flow depends on it.
	now func() time.Time
}

func NewHandler(apiClient *api.Client, sessions *session.Manager) (*Handler, error) {
	funcs := template.FuncMap{
		"fmtDate": func(d model.Date) string {
			if d.IsZero() {
				return "-"
			}
			return d.Format("2006-01-02")
		},
		"rupiah": func(a model.Amount) string {
			return fmt.Sprintf("Rp%d", int64(a))
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Handler{
		api:         apiClient,
		sessions:    sessions,
		pages:       page.NewRegistry(),
		tmpl:        tmpl,
		borrowMemos: map[string]*view.Memo[[]view.LoanRow]{},
		now:         time.Now,
	}, nil
}

// borrowMemo returns the session's cached loan-row projection. The memo keys
// on the visit generation and collection versions, so handing back an old
// one after a new visit is safe.
func (h *Handler) borrowMemo(sessionID string) *view.Memo[[]view.LoanRow] {
	h.memoMu.Lock()
	defer h.memoMu.Unlock()
	memo, ok := h.borrowMemos[sessionID]
	if !ok {
		memo = &view.Memo[[]view.LoanRow]{}
		h.borrowMemos[sessionID] = memo
	}
	return memo
}

func (h *Handler) dropMemos(sessionID string) {
	h.memoMu.Lock()
	delete(h.borrowMemos, sessionID)
	h.memoMu.Unlock()
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		response.ServerError(w, r, errors.Wrapf(err, "render %s", name))
		return
	}
	response.OK(w, r, buf.Bytes())
}

// token returns the session's bearer token. On protected routes the guard
// already ensured it is set.
func (h *Handler) token(r *http.Request) string {
	token, err := h.sessions.Token(request.SessionID(r))
	if err != nil {
		return ""
	}
	return token
}

// freshState starts a new visit for the route: build the state, run the
// fan-out load under its context, and swap it in (cancelling whatever visit
// it replaces). The state is swapped in even when the load fails so the
// page can render its generic error over empty collections.
func (h *Handler) freshState(r *http.Request, route string, load func(st *page.State, token string) []page.Task) (*page.State, error) {
	sid := request.SessionID(r)
	token := h.token(r)

	// The state's lifetime is the visit, not this request: it has to
	// survive until the next navigation to the route replaces it.
	st := page.NewState(context.Background(), route)
	h.pages.Swap(sid, st)

	err := page.Load(st.Context(), load(st, token)...)
	return st, err
}

// visitState returns the live state for a route, loading fresh when there
// is none (a mutation POST arriving without a prior GET).
func (h *Handler) visitState(r *http.Request, route string, load func(st *page.State, token string) []page.Task) (*page.State, error) {
	if st, ok := h.pages.Get(request.SessionID(r), route); ok {
		return st, nil
	}
	return h.freshState(r, route, load)
}

// basePage carries what every template needs.
type basePage struct {
	Active string
	Notice string
	Error  string
}
