package server

import (
	"net/http"
	"strings"

	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/http/response"
	"github.com/fajrulhm/perpus-admin/log"
	"go.uber.org/zap"
)

// invalidCredentials is the only thing a failed login ever says; the real
// API error stays in the logs.
const invalidCredentials = "Invalid credentials. Please check your email and password."

type loginPage struct {
	basePage
	Email  string
	Denied bool
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	// Already logged in: go straight to the dashboard.
	if h.token(r) != "" {
		response.Redirect(w, r, "/dashboard")
		return
	}
	h.render(w, r, "login", loginPage{
		basePage: basePage{Active: "login"},
		Denied:   r.URL.Query().Get("denied") == "1",
	})
}

func (h *Handler) doLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	token, err := h.api.Login(r.Context(), email, password)
	if err != nil {
		log.Warn("Login failed", zap.String("email", email), zap.Error(err))
		h.render(w, r, "login", loginPage{
			basePage: basePage{Active: "login", Error: invalidCredentials},
			Email:    email,
		})
		return
	}

	if err := h.sessions.SetToken(request.SessionID(r), token); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.Redirect(w, r, "/dashboard")
}

func (h *Handler) doLogout(w http.ResponseWriter, r *http.Request) {
	sid := request.SessionID(r)
	if err := h.sessions.Clear(sid); err != nil {
		response.ServerError(w, r, err)
		return
	}
	h.pages.DropSession(sid)
	h.dropMemos(sid)
	response.Redirect(w, r, "/login")
}
