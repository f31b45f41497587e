package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func request(remote, token string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/sg200/mac-table", nil)
	r.RemoteAddr = remote
	if token != "" {
		r.Header.Set(TokenHeader, token)
	}
	return r
}

func TestAuthorize(t *testing.T) {
	table := []struct {
		name   string
		auth   Authorizer
		req    *http.Request
		status int
	}{
		{
			name: "open",
			auth: NewAuthorizer(nil, "", ""),
			req:  request("192.0.2.1:5000", ""),
		},
		{
			name:   "ip not allowed",
			auth:   NewAuthorizer([]string{"10.10.10.21"}, "", ""),
			req:    request("192.0.2.1:5000", ""),
			status: http.StatusForbidden,
		},
		{
			name: "ip allowed",
			auth: NewAuthorizer([]string{" 10.10.10.21 ", ""}, "", ""),
			req:  request("10.10.10.21:5000", ""),
		},
		{
			name:   "missing token",
			auth:   NewAuthorizer(nil, "shared", ""),
			req:    request("10.10.10.21:5000", ""),
			status: http.StatusUnauthorized,
		},
		{
			name:   "wrong token",
			auth:   NewAuthorizer(nil, "shared", ""),
			req:    request("10.10.10.21:5000", "other"),
			status: http.StatusUnauthorized,
		},
		{
			name: "token",
			auth: NewAuthorizer(nil, "shared", ""),
			req:  request("10.10.10.21:5000", " shared "),
		},
		{
			name: "hashed token",
			auth: NewAuthorizer(nil, "", HashToken("shared")),
			req:  request("10.10.10.21:5000", "shared"),
		},
		{
			name:   "hash takes precedence over cleartext",
			auth:   NewAuthorizer(nil, "shared", HashToken("other")),
			req:    request("10.10.10.21:5000", "shared"),
			status: http.StatusUnauthorized,
		},
		{
			name:   "allow-list is checked before the token",
			auth:   NewAuthorizer([]string{"10.10.10.21"}, "shared", ""),
			req:    request("192.0.2.1:5000", "shared"),
			status: http.StatusForbidden,
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			status, _ := test.auth.Authorize(test.req)
			require.Equal(t, test.status, status)
		})
	}
}

func TestHashToken(t *testing.T) {
	require.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashToken(""),
	)
}
