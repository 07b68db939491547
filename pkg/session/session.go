// Package session holds the per-browser authentication state: the token and
// display name returned by the backend on login, stored under the cpai_token
// and cpai_name keys of a record addressed by the session cookie.
package session

import (
	"context"

	"github.com/nimeshabuddhika/creditpath-web/pkg"
)

// Session is the authentication state of one browser.
type Session struct {
	ID    string
	Token string
	Name  string
}

// Authenticated reports whether a token is present. An absent and an empty
// token are the same thing.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the session for id. A missing record is not an error; it
	// yields an unauthenticated Session carrying id.
	Load(ctx context.Context, id string) (Session, error)
	// Save writes the token and name of s under s.ID.
	Save(ctx context.Context, s Session) error
	// Delete removes the token and name stored under id.
	Delete(ctx context.Context, id string) error
}

func fromRecord(id string, record map[string]string) Session {
	return Session{
		ID:    id,
		Token: record[pkg.TokenKey],
		Name:  record[pkg.NameKey],
	}
}

func toRecord(s Session) map[string]string {
	return map[string]string{
		pkg.TokenKey: s.Token,
		pkg.NameKey:  s.Name,
	}
}
