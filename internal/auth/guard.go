package auth

// Role classifies a user for command gating. The ordering matters: a super
// admin satisfies every admin-level check.
type Role int

const (
	RoleUnauthorized Role = iota
	RoleAdmin
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super admin"
	case RoleAdmin:
		return "admin"
	default:
		return "unauthorized"
	}
}

// Guard classifies usernames against the super-admin list seeded at startup.
// The mutable regular-admin list is owned by the settings manager and passed
// in per call.
type Guard struct {
	superAdmins map[string]bool
}

func NewGuard(superAdmins []string) *Guard {
	set := make(map[string]bool, len(superAdmins))
	for _, name := range superAdmins {
		set[name] = true
	}

	return &Guard{superAdmins: set}
}

func (g *Guard) RoleOf(username string, admins []string) Role {
	if username == "" {
		return RoleUnauthorized
	}

	if g.superAdmins[username] {
		return RoleSuperAdmin
	}

	for _, admin := range admins {
		if admin == username {
			return RoleAdmin
		}
	}

	return RoleUnauthorized
}
