package model

// User represents a registered account in the database.
type User struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	Email    string `validate:"required,email,max=100"`
	Password string `validate:"required"`
	Name     string `validate:"required,max=1000"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Identity is the user bound to the current request. The zero value is an
// anonymous visitor.
type Identity struct {
	UserID int64
	Email  string
	Name   string
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

// Authenticated reports whether the identity is bound to a user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// Session is the result of a successful register or login: a signed token
// and the identity it binds.
type Session struct {
	Token    string
	Identity Identity
}
