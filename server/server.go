// Package server is the HTML face of the gateway: the same navigable routes
// the staff UI always had, backed by the remote perpus API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fajrulhm/perpus-admin/api"
	"github.com/fajrulhm/perpus-admin/config"
	"github.com/fajrulhm/perpus-admin/http/response"
	"github.com/fajrulhm/perpus-admin/log"
	"github.com/fajrulhm/perpus-admin/session"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	router *mux.Router
	server *http.Server
}

func NewServer(ctx context.Context, apiClient *api.Client, sessions *session.Manager) (*Server, error) {
	handler, err := NewHandler(apiClient, sessions)
	if err != nil {
		return nil, err
	}

	// A token change invalidates every page of that session; the next
	// render starts from a fresh fetch.
	go handler.pages.Watch(sessions.Subscribe())

	router := mux.NewRouter()
	router.Use(handler.sessionMiddleware)
	router.Use(loggingMiddleware)

	router.HandleFunc("/login", handler.showLogin).Methods(http.MethodGet)
	router.HandleFunc("/login", handler.doLogin).Methods(http.MethodPost)
	router.HandleFunc("/logout", handler.doLogout).Methods(http.MethodPost)

	protected := router.NewRoute().Subrouter()
	protected.Use(handler.guardMiddleware)
	protected.HandleFunc("/dashboard", handler.showDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/mybooks", handler.showBooks).Methods(http.MethodGet)
	protected.HandleFunc("/mybooks", handler.createBook).Methods(http.MethodPost)
	protected.HandleFunc("/mybooks/{id}/update", handler.updateBook).Methods(http.MethodPost)
	protected.HandleFunc("/mybooks/{id}/delete", handler.deleteBook).Methods(http.MethodPost)
	protected.HandleFunc("/members", handler.showMembers).Methods(http.MethodGet)
	protected.HandleFunc("/members", handler.createMember).Methods(http.MethodPost)
	protected.HandleFunc("/members/{id}/update", handler.updateMember).Methods(http.MethodPost)
	protected.HandleFunc("/members/{id}/delete", handler.deleteMember).Methods(http.MethodPost)
	protected.HandleFunc("/BorrowPage", handler.showBorrow).Methods(http.MethodGet)
	protected.HandleFunc("/BorrowPage", handler.createLoan).Methods(http.MethodPost)
	protected.HandleFunc("/BorrowPage/{id}/return", handler.returnLoan).Methods(http.MethodPost)
	protected.HandleFunc("/BorrowPage/{id}/fine", handler.confirmLateFine).Methods(http.MethodPost)
	protected.HandleFunc("/BorrowPage/{id}/skip", handler.declineLateFine).Methods(http.MethodPost)
	protected.HandleFunc("/DataPinjam", handler.showActivity).Methods(http.MethodGet)
	protected.HandleFunc("/FinesPage", handler.showFines).Methods(http.MethodGet)
	protected.HandleFunc("/FinesPage", handler.recordFines).Methods(http.MethodPost)

	// Unknown routes land on the default route; the guard bounces logged
	// out sessions from there to /login.
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Redirect(w, r, "/dashboard")
	})

	addr := fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port)
	s := &Server{
		router: router,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
	return s, nil
}

func (s *Server) Start() error {
	log.Info("Server listening", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router is exposed for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}
