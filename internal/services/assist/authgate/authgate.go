// Package authgate validates caller credentials and request origin
package authgate

import (
	"crypto/subtle"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"

	"codeassist/internal/platform/logger"
	"codeassist/internal/services/assist/domain"
)

// Rejection reasons, stable strings surfaced in error messages and logs
const (
	ReasonMissingOrMalformed = "missing_or_malformed"
	ReasonInvalidKey         = "invalid_key"
	ReasonOriginNotAllowed   = "origin_not_allowed"
)

const bearerPrefix = "Bearer "

// Config holds the gate's shared secret and origin policy
type Config struct {
	// Secret is the shared bearer credential. Required
	Secret string
	// AllowedOrigins is the origin allow-list. Empty means any origin passes
	AllowedOrigins []string
	// CallerHint is an advisory substring expected in the caller hint header
	// or user agent. Mismatches log a warning and never reject
	CallerHint string
}

// Gate implements domain.AuthPort
type Gate struct {
	cfg Config
	log *logger.Logger
}

// New constructs a Gate
func New(cfg Config) *Gate {
	if strings.TrimSpace(cfg.Secret) == "" {
		panic("authgate requires a non-empty secret")
	}
	return &Gate{cfg: cfg, log: logger.Named("authgate")}
}

// Authenticate checks the bearer credential and origin, then derives the
// throttling identity. The decision is request-scoped and never persisted
func (g *Gate) Authenticate(meta domain.RequestMeta) domain.AuthDecision {
	cred, ok := bearerToken(meta.Authorization)
	if !ok {
		return domain.AuthDecision{Reason: ReasonMissingOrMalformed}
	}

	// constant-time compare so the credential check leaks no timing signal
	if subtle.ConstantTimeCompare([]byte(cred), []byte(g.cfg.Secret)) != 1 {
		return domain.AuthDecision{Reason: ReasonInvalidKey}
	}

	if origin := requestOrigin(meta); origin != "" && !g.originAllowed(origin) {
		return domain.AuthDecision{Reason: ReasonOriginNotAllowed}
	}

	g.softCallerCheck(meta)

	return domain.AuthDecision{
		Valid:    true,
		ClientID: ClientID(meta.RemoteAddr, meta.UserAgent, meta.SessionID),
	}
}

// bearerToken extracts the credential from a "Bearer <token>" header value
func bearerToken(h string) (string, bool) {
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(bearerPrefix):])
	if tok == "" {
		return "", false
	}
	return tok, true
}

// requestOrigin prefers the Origin header, falling back to the Referer's origin
func requestOrigin(meta domain.RequestMeta) string {
	if meta.Origin != "" {
		return meta.Origin
	}
	if meta.Referer == "" {
		return ""
	}
	u, err := url.Parse(meta.Referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		// unparseable referer carries no origin to check
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (g *Gate) originAllowed(origin string) bool {
	if len(g.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, a := range g.cfg.AllowedOrigins {
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

// softCallerCheck is advisory telemetry, not a security gate
func (g *Gate) softCallerCheck(meta domain.RequestMeta) {
	if g.cfg.CallerHint == "" {
		return
	}
	if strings.Contains(meta.CallerHint, g.cfg.CallerHint) ||
		strings.Contains(meta.UserAgent, g.cfg.CallerHint) {
		return
	}
	g.log.Warn().
		Str("user_agent", meta.UserAgent).
		Str("caller_hint", meta.CallerHint).
		Msg("unexpected caller class")
}

// ClientID derives the throttling bucket key from connection metadata.
// FNV-1a is deterministic and cheap; collisions only coarsen throttling
// granularity, they are not a correctness problem
func ClientID(remoteAddr, userAgent, sessionID string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(remoteAddr))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(userAgent))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(sessionID))
	return fmt.Sprintf("%016x", h.Sum64())
}
