package auth

// Role discriminates every authorisation decision; it's deliberately a closed set,
// so checks rely on predicates rather than scattered string comparisons.
type Role string

const (
	RoleLector Role = "Lector"
	RoleAutor  Role = "Autor"
	RoleAdmin  Role = "Admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Known reports whether the role matches one of the defined constants;
// tokens carrying unknown roles are rejected during validation.
func (r Role) Known() bool {
	switch r {
	case RoleLector, RoleAutor, RoleAdmin:
		return true
	}
	return false
}
