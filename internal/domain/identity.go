package domain

// IdentityKind distinguishes which credential table a session came from.
type IdentityKind string

const (
	IdentitySuperuser   IdentityKind = "superuser"
	IdentityRegularUser IdentityKind = "regular"
)

// Identity is the resolved actor of an authenticated session. The kind is
// fixed once at the accessor boundary: superuser records are always admins,
// regular records carry their own role (defaulting to viewer).
type Identity struct {
	Kind  IdentityKind `json:"kind"`
	ID    string       `json:"id"`
	Email string       `json:"email"`
	Name  string       `json:"name"`
	Role  string       `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Kind == IdentitySuperuser || i.Role == RoleAdmin
}
