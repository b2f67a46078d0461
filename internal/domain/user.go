package domain

// Admin roles, ordered from most to least privileged.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// AdminUser is a back-office account stored in the users collection.
// Password is write-only: PocketBase never returns it.
type AdminUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	LastLogin string `json:"lastLogin"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
}

// AdminUserFields is the writable subset for create/update calls.
// PasswordConfirm mirrors PocketBase's create contract.
type AdminUserFields struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password,omitempty" validate:"omitempty,min=8"`
	PasswordConfirm string `json:"passwordConfirm,omitempty"`
	Role            string `json:"role" validate:"omitempty,oneof=admin editor viewer"`
	Status          string `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

// NormalizedRole maps an arbitrary role value to one of the known roles,
// defaulting to viewer.
func NormalizedRole(role string) string {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return role
	default:
		return RoleViewer
	}
}

// RoleAtLeast reports whether have grants the privileges of want.
func RoleAtLeast(have, want string) bool {
	rank := func(r string) int {
		switch r {
		case RoleAdmin:
			return 3
		case RoleEditor:
			return 2
		case RoleViewer:
			return 1
		default:
			return 0
		}
	}
	return rank(have) >= rank(want)
}
