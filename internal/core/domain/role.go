package domain

// Role is the coarse-grained privilege bucket carried in session claims.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCIO        Role = "CIO"
	RoleSuperAdmin Role = "SUPERADMIN"

	// legacySuperAdmin is the historical spelling still present on older
	// account records and tokens. Normalized at every boundary.
	legacySuperAdmin Role = "SUPER-ADMIN"
)

// NormalizeRole maps the legacy SUPER-ADMIN spelling to the canonical form.
// Every layer that compares roles must go through this first.
func NormalizeRole(r Role) Role {
	if r == legacySuperAdmin {
		return RoleSuperAdmin
	}
	return r
}

// IsValid reports whether r is a known role (legacy spelling included).
func (r Role) IsValid() bool {
	switch NormalizeRole(r) {
	case RoleAdmin, RoleCIO, RoleSuperAdmin:
		return true
	}
	return false
}

// LandingPath returns the dashboard home for a role. Unknown roles land on
// the public calendar at the site root.
func LandingPath(r Role) string {
	switch NormalizeRole(r) {
	case RoleSuperAdmin:
		return "/super-admin"
	case RoleAdmin:
		return "/admin"
	case RoleCIO:
		return "/cio"
	default:
		return "/"
	}
}
