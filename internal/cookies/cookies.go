package cookies

import (
	"net/http"
	"time"
)

// Pair holds the raw values of the two session cookies; either may be empty
// when the client did not send it.
type Pair struct {
	Access  string
	Refresh string
}

// Adapter reads and writes the access/refresh session cookie pair with the
// security attributes fixed for this service: HttpOnly, SameSite=Lax,
// Path=/, Secure in production. Cookies are replaced wholesale, never
// mutated in place.
type Adapter struct {
	accessName  string
	refreshName string
	accessTTL   time.Duration
	refreshTTL  time.Duration
	secure      bool
}

// NewAdapter creates an adapter. secure should be true in production so the
// cookies are only sent over TLS.
func NewAdapter(accessName, refreshName string, accessTTL, refreshTTL time.Duration, secure bool) *Adapter {
	if accessName == "" {
		accessName = "access_token"
	}
	if refreshName == "" {
		refreshName = "refresh_token"
	}
	return &Adapter{
		accessName:  accessName,
		refreshName: refreshName,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		secure:      secure,
	}
}

// AccessName returns the access cookie name as configured.
func (a *Adapter) AccessName() string { return a.accessName }

// Write sets both session cookies, each with MaxAge matching its token TTL.
func (a *Adapter) Write(w http.ResponseWriter, accessToken, refreshToken string) {
	a.set(w, a.accessName, accessToken, int(a.accessTTL.Seconds()))
	a.set(w, a.refreshName, refreshToken, int(a.refreshTTL.Seconds()))
}

// Clear removes both session cookies. Negative MaxAge serializes as
// Max-Age=0, which compliant clients treat as delete immediately.
func (a *Adapter) Clear(w http.ResponseWriter) {
	a.set(w, a.accessName, "", -1)
	a.set(w, a.refreshName, "", -1)
}

// Read extracts the cookie pair from the request.
func (a *Adapter) Read(r *http.Request) Pair {
	var p Pair
	if c, err := r.Cookie(a.accessName); err == nil {
		p.Access = c.Value
	}
	if c, err := r.Cookie(a.refreshName); err == nil {
		p.Refresh = c.Value
	}
	return p
}

func (a *Adapter) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
