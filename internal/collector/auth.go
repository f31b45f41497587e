package collector

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

const TokenHeader = "X-Collector-Token"

const (
	errClientNotAllowed = "client IP not allowed"
	errInvalidToken     = "missing or invalid collector token"
)

// Authorizer enforces the client allow-list and the shared token. An empty
// allow-list admits every client, no configured token admits every request.
type Authorizer struct {
	allowed     map[string]struct{}
	token       string
	tokenSha256 string
}

func NewAuthorizer(allowedIPs []string, token, tokenSha256 string) Authorizer {
	allowed := map[string]struct{}{}
	for _, ip := range allowedIPs {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			allowed[ip] = struct{}{}
		}
	}
	return Authorizer{
		allowed:     allowed,
		token:       strings.TrimSpace(token),
		tokenSha256: strings.ToLower(strings.TrimSpace(tokenSha256)),
	}
}

// HashToken is the value token_sha256 is compared against.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Authorize returns the status and message to reject r with, status is 0 when
// r is allowed through.
func (a Authorizer) Authorize(r *http.Request) (int, string) {
	if len(a.allowed) > 0 {
		if _, ok := a.allowed[remoteHost(r)]; !ok {
			return http.StatusForbidden, errClientNotAllowed
		}
	}

	provided := strings.TrimSpace(r.Header.Get(TokenHeader))
	switch {
	case a.tokenSha256 != "":
		if provided == "" || !equal(HashToken(provided), a.tokenSha256) {
			return http.StatusUnauthorized, errInvalidToken
		}
	case a.token != "":
		if provided == "" || !equal(provided, a.token) {
			return http.StatusUnauthorized, errInvalidToken
		}
	}
	return 0, ""
}
