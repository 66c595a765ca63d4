// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"time"

	perr "codeassist/internal/platform/errors"
	pnet "codeassist/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// ErrorBody carries the stable error code and a human-readable message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata carries per-request timing and correlation fields
type Metadata struct {
	Timestamp     string `json:"timestamp"`
	ExecutionTime int64  `json:"executionTime"`
	SessionID     string `json:"sessionId"`
}

// nowFn is a seam for tests
var nowFn = time.Now

// metaFrom builds Metadata from request context (session id, elapsed since start)
func metaFrom(r *stdhttp.Request) Metadata {
	now := nowFn()
	var elapsed int64
	if start := pnet.Start(r.Context()); !start.IsZero() {
		elapsed = now.Sub(start).Milliseconds()
	}
	return Metadata{
		Timestamp:     now.UTC().Format(time.RFC3339),
		ExecutionTime: elapsed,
		SessionID:     pnet.SessionID(r.Context()),
	}
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

//
// Effectful helpers (Respond*) for classic handlers
//

// RespondOK writes a 200 success envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, Envelope{
		Success:  true,
		Data:     data,
		Metadata: metaFrom(r),
	})
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	JSON(w, status, Envelope{
		Success:  false,
		Error:    &ErrorBody{Code: wr.Code, Message: wr.Message},
		Metadata: metaFrom(r),
	})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}

	// If Body is an error, derive status from error *before* building the envelope
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wr := perr.WireFrom(err)
		JSON(w, status, Envelope{
			Success:  false,
			Error:    &ErrorBody{Code: wr.Code, Message: wr.Message},
			Metadata: metaFrom(r),
		})
		return
	}

	// success path
	JSON(w, status, Envelope{
		Success:  true,
		Data:     resp.Body,
		Metadata: metaFrom(r),
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Data is an alias for OK
func Data(v any) Response { return OK(v) }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
