package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	pnet "codeassist/internal/platform/net"
	"codeassist/internal/platform/testkit"
)

func TestMetadataUsesInjectedClock(t *testing.T) {
	testkit.Serial(t)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	testkit.Swap(t, &nowFn, func() time.Time { return fixed })

	req := httptest.NewRequest("POST", "/x", nil)
	ctx := pnet.WithSession(req.Context(), "sess-1")
	ctx = pnet.WithStart(ctx, fixed.Add(-1500*time.Millisecond))
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	RespondOK(rec, req, "ok")

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Metadata.Timestamp != "2026-03-14T09:26:53Z" {
		t.Fatalf("timestamp = %q", env.Metadata.Timestamp)
	}
	if env.Metadata.ExecutionTime != 1500 {
		t.Fatalf("execution time = %d, want 1500", env.Metadata.ExecutionTime)
	}
	if env.Metadata.SessionID != "sess-1" {
		t.Fatalf("session = %q", env.Metadata.SessionID)
	}
}
