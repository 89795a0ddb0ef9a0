// Package response writes the gateway's HTML responses. Error responses
// log the real failure and show the user a generic notice; detail never
// leaves the process.
package response

import (
	"net/http"

	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/log"
	"go.uber.org/zap"
)

const contentTypeHeader = `text/html; charset=utf-8`

// OK writes a 200 HTML response.
func OK(w http.ResponseWriter, r *http.Request, body []byte) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(body)
	builder.Write()
}

// Redirect sends the client to another route with 303, the right status
// after a form POST.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ServerError logs the error and renders a generic failure page.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		zap.Error(err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.Int("response.status_code", http.StatusInternalServerError),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusInternalServerError)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody([]byte("<h1>Something went wrong</h1><p>Please try again.</p>"))
	builder.Write()
}

// BadRequest logs and renders a generic invalid-input page.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn(http.StatusText(http.StatusBadRequest),
		zap.Any("error", err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.Int("response.status_code", http.StatusBadRequest),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusBadRequest)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody([]byte("<h1>Invalid request</h1>"))
	builder.Write()
}

// NotFound renders a generic not-found page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusNotFound),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.Int("response.status_code", http.StatusNotFound),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusNotFound)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody([]byte("<h1>Page not found</h1>"))
	builder.Write()
}
