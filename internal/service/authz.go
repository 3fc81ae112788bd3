package service

import "github.com/quillpost/quillpost-go/internal/model"

// AdminUserID is the id of the first registered user, the only account
// allowed to create, edit or delete posts. This is a fixed single-admin
// policy, not a role system.
const AdminUserID int64 = 1

// Decision is the outcome of an authorization check.
type Decision int

const (
	Forbidden Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "forbidden"
}

// RequireAdmin allows only an authenticated identity bound to AdminUserID.
func RequireAdmin(identity model.Identity) Decision {
	if identity.Authenticated() && identity.UserID == AdminUserID {
		return Allowed
	}
	return Forbidden
}
