package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "codeassist/internal/platform/errors"
	pnet "codeassist/internal/platform/net"
	phttp "codeassist/internal/platform/net/http"
)

// helper to build a request carrying session and start time
func reqWithSession(method, path, sid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	ctx := pnet.WithSession(req.Context(), sid)
	ctx = pnet.WithStart(ctx, time.Now().Add(-50*time.Millisecond))
	return req.WithContext(ctx)
}

func TestJSONHelper(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithSession("POST", "/x", "sess-1")
	phttp.RespondOK(rec, req, map[string]string{"a": "b"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || env.Error != nil || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
	if env.Metadata.SessionID != "sess-1" {
		t.Fatalf("session = %q", env.Metadata.SessionID)
	}
	if env.Metadata.ExecutionTime < 40 {
		t.Fatalf("execution time = %dms, want at least the elapsed 50ms", env.Metadata.ExecutionTime)
	}
	if _, err := time.Parse(time.RFC3339, env.Metadata.Timestamp); err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", env.Metadata.Timestamp, err)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithSession("POST", "/x", "sess-2")
	phttp.RespondError(rec, req, perr.RateLimitedf("rate limit exceeded"))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Success || env.Error == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
	if env.Error.Code != "RATE_LIMIT_EXCEEDED" || env.Error.Message != "rate limit exceeded" {
		t.Fatalf("error body = %+v", env.Error)
	}
	if env.Data != nil {
		t.Fatalf("error envelope should carry no data")
	}
}

func TestHandleReturnStyle(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.OK(map[string]any{"n": 1})
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithSession("POST", "/ok", "s"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	hErr := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(perr.Unauthorizedf("nope"))
	})
	rec2 := httptest.NewRecorder()
	hErr(rec2, reqWithSession("POST", "/err", "s"))
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("error status = %d", rec2.Code)
	}

	// a non-project error maps to 500 INTERNAL_ERROR
	hGen := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(errors.New("boom"))
	})
	rec3 := httptest.NewRecorder()
	hGen(rec3, reqWithSession("POST", "/gen", "s"))
	if rec3.Code != http.StatusInternalServerError {
		t.Fatalf("generic error status = %d", rec3.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec3.Body.Bytes(), &env)
	if env.Error == nil || env.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("generic error envelope: %+v", env)
	}
}

func TestHandleHeaderOverride(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		resp := phttp.Data("hello")
		resp.Header = http.Header{}
		resp.Header.Set("X-Extra", "yes")
		return resp
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithSession("GET", "/hdr", "s"))
	if got := rec.Header().Get("X-Extra"); got != "yes" {
		t.Fatalf("header override = %q", got)
	}
}

func TestMetadataWithoutSessionContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bare", nil)
	phttp.RespondOK(rec, req, "ok")

	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Metadata.SessionID != "" || env.Metadata.ExecutionTime != 0 {
		t.Fatalf("bare metadata = %+v", env.Metadata)
	}
	if env.Metadata.Timestamp == "" {
		t.Fatalf("timestamp always present")
	}
}
