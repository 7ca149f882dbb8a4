package domain

// SessionStorageKey names the persisted auth snapshot.
const SessionStorageKey = "auth-storage"

// Session is the in-memory authentication state. An empty Token means no token.
type Session struct {
	User            *User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// PersistedSession is the subset of Session that survives a restart.
// Loading is deliberately absent.
type PersistedSession struct {
	Token           string `json:"token"`
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Valid reports whether the snapshot carries both halves of a session.
func (p PersistedSession) Valid() bool {
	return p.Token != "" && p.User != nil && p.IsAuthenticated
}
