package transport

import (
	"net/http"
)

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth leaves requests untouched. Public image hosts need nothing else.
type NoAuth struct{}

// Apply implements Authenticator.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sets "Authorization: Bearer <token>".
type BearerAuth struct{}

// Apply implements Authenticator.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth puts the token in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements Authenticator.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth appends the token as a query parameter.
type QueryAuth struct {
	Param string
}

// Apply implements Authenticator.
func (a *QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// AuthFor picks an authenticator from a configured header name: "" means
// none, "Authorization" means bearer, "?name" means a query parameter and
// anything else is sent as that header.
func AuthFor(header string) Authenticator {
	switch {
	case header == "":
		return &NoAuth{}
	case http.CanonicalHeaderKey(header) == "Authorization":
		return &BearerAuth{}
	case header[0] == '?':
		return &QueryAuth{Param: header[1:]}
	default:
		return &HeaderAuth{Header: header}
	}
}
