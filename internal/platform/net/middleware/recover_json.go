package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"
	"strings"
	"time"

	perr "codeassist/internal/platform/errors"
	"codeassist/internal/platform/logger"
	pnet "codeassist/internal/platform/net"
)

type panicEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Metadata struct {
		Timestamp     string `json:"timestamp"`
		ExecutionTime int64  `json:"executionTime"`
		SessionID     string `json:"sessionId"`
	} `json:"metadata"`
}

// RecoverJSON converts panics into a JSON 500 envelope and logs stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if v := recover(); v != nil {
				reqID := pnet.RequestID(r.Context())

				// format stack like chi recover
				raw := debug.Stack()
				lines := strings.Split(string(raw), "\n")
				stack := strings.Join(lines, "\n\t")

				logger.C(r.Context()).Error().
					Str("request_id", reqID).
					Interface("panic", v).
					Msgf("panic recovered\n%s", stack)

				// mirror id in response header
				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}

				var body panicEnvelope
				body.Error.Code = perr.WireCode(perr.ErrorCodePanic)
				body.Error.Message = perr.Root(perr.PanicErrf("panic recovered")).Error()
				body.Metadata.Timestamp = time.Now().UTC().Format(time.RFC3339)
				if start := pnet.Start(r.Context()); !start.IsZero() {
					body.Metadata.ExecutionTime = time.Since(start).Milliseconds()
				}
				body.Metadata.SessionID = pnet.SessionID(r.Context())

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(stdhttp.StatusInternalServerError)
				_ = stdjson.NewEncoder(w).Encode(body)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
