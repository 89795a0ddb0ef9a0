package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/http/response"
	"github.com/fajrulhm/perpus-admin/log"
	"go.uber.org/zap"
)

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		ctx := r.Context()
		ctx = context.WithValue(ctx, request.ClientIPContextKey, clientIP)

		t1 := time.Now()
		defer func() {
			log.Debug("Incoming request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("proto", r.Proto),
				zap.String("client_ip", clientIP),
				zap.Duration("duration", time.Since(t1)))
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionMiddleware resolves (or issues) the browser session and stores its
// id in the request context for everything downstream.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, isNew, err := h.sessions.EnsureSession(w, r)
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		ctx := r.Context()
		ctx = context.WithValue(ctx, request.SessionIDContextKey, sid)
		ctx = context.WithValue(ctx, request.SessionIsNewContextKey, isNew)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// guardMiddleware protects a route: without a token the client is sent to
// /login. The access-denied notice is suppressed on a session's first
// contact so a cold visit does not open with an error flash.
func (h *Handler) guardMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := request.SessionID(r)
		token, err := h.sessions.Token(sid)
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		if token == "" {
			target := "/login"
			if !request.SessionIsNew(r) {
				target += "?denied=1&next=" + url.QueryEscape(r.URL.Path)
			}
			response.Redirect(w, r, target)
			return
		}
		next.ServeHTTP(w, r)
	})
}
