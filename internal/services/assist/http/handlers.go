// Package http provides HTTP transport for the assist service
package http

import (
	stdhttp "net/http"

	pnet "codeassist/internal/platform/net"
	phttp "codeassist/internal/platform/net/http"
	"codeassist/internal/services/assist/domain"
)

// Register mounts the assist endpoint on the given router
func Register(r phttp.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	phttp.PostJSON[domain.ExecutionRequest](r, "/assist", h.assist)
}

type handlers struct{ svc domain.ServicePort }

// assist runs one code-assistance request through the orchestrator
func (h *handlers) assist(r *stdhttp.Request, in domain.ExecutionRequest) (any, error) {
	meta := metaFrom(r)
	out, err := h.svc.Process(r.Context(), meta, in)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// metaFrom lifts the connection/request metadata the pipeline needs out of the
// raw request so nothing below the transport touches *http.Request
func metaFrom(r *stdhttp.Request) domain.RequestMeta {
	return domain.RequestMeta{
		RemoteAddr:    r.RemoteAddr,
		UserAgent:     r.UserAgent(),
		Origin:        r.Header.Get("Origin"),
		Referer:       r.Header.Get("Referer"),
		Authorization: r.Header.Get("Authorization"),
		CallerHint:    r.Header.Get("X-Caller"),
		SessionID:     pnet.SessionID(r.Context()),
	}
}
