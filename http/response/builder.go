package response

import (
	"net/http"

	"github.com/fajrulhm/perpus-admin/log"
	"go.uber.org/zap"
)

type Builder struct {
	w       http.ResponseWriter
	r       *http.Request
	status  int
	headers map[string]string
	body    []byte
}

func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:       w,
		r:       r,
		status:  http.StatusOK,
		headers: map[string]string{},
	}
}

func (b *Builder) WithStatus(status int) *Builder {
	b.status = status
	return b
}

func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

func (b *Builder) WithBody(body []byte) *Builder {
	b.body = body
	return b
}

func (b *Builder) Write() {
	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}
	b.w.WriteHeader(b.status)
	if len(b.body) > 0 {
		if _, err := b.w.Write(b.body); err != nil {
			log.Debug("Unable to write response body", zap.Error(err))
		}
	}
}
