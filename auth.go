package compass

import "context"

// User identifies the authenticated account behind the session cookie.
type User struct {
	ID      string
	Name    string
	Email   string
	Picture string
}

// Auth is the capability object handed to the UI: a snapshot of who is
// signed in plus the only auth action the client owns. Cookie issuance and
// the OAuth redirect belong entirely to the backend.
type Auth struct {
	User   User
	Logout func(ctx context.Context) error
}

// IsAuthenticated reports whether a signed-in user is present.
func (a Auth) IsAuthenticated() bool {
	return a.User.ID != ""
}
