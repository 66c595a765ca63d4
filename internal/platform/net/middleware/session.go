package middleware

import (
	"net/http"
	"time"

	pnet "codeassist/internal/platform/net"

	"github.com/google/uuid"
)

// SessionHeader is the inbound/outbound session correlation header
const SessionHeader = "X-Session-ID"

// Session propagates the caller-supplied X-Session-ID (or mints one) onto the
// context together with the request start time, and mirrors the id in the response
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := r.Header.Get(SessionHeader)
			if sid == "" {
				sid = uuid.NewString()
			}
			ctx := pnet.WithSession(r.Context(), sid)
			ctx = pnet.WithStart(ctx, time.Now())
			w.Header().Set(SessionHeader, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
