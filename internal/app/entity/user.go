package entity

type UserID string

func (id UserID) String() string {
	return string(id)
}

func (id UserID) Valid() bool {
	return len(id) > 0
}

type User struct {
	ID     UserID
	Email  string
	Name   string
	Role   string
	Status string
}

// Session holds the bearer credential for this client process.
// An empty token means unauthenticated.
type Session struct {
	Token string
	User  User
}

func (s Session) Authenticated() bool {
	return len(s.Token) > 0
}

// Credentials is the persisted projection of a session.
type Credentials struct {
	Token string
	User  User
}
