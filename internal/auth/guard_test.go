package auth

import "testing"

func TestRoleOf(t *testing.T) {
	guard := NewGuard([]string{"root"})
	admins := []string{"alice", "bob"}

	tests := []struct {
		username string
		want     Role
	}{
		{"root", RoleSuperAdmin},
		{"alice", RoleAdmin},
		{"bob", RoleAdmin},
		{"mallory", RoleUnauthorized},
		{"", RoleUnauthorized},
	}

	for _, tt := range tests {
		if got := guard.RoleOf(tt.username, admins); got != tt.want {
			t.Errorf("RoleOf(%q): got %v, want %v", tt.username, got, tt.want)
		}
	}
}

func TestSuperAdminSatisfiesAdminGate(t *testing.T) {
	guard := NewGuard([]string{"root"})

	if role := guard.RoleOf("root", nil); role < RoleAdmin {
		t.Errorf("super admin role %v does not satisfy an admin gate", role)
	}
}

func TestRoleOfCaseSensitive(t *testing.T) {
	guard := NewGuard([]string{"Root"})

	if got := guard.RoleOf("root", nil); got != RoleUnauthorized {
		t.Errorf("RoleOf(\"root\"): got %v, want RoleUnauthorized", got)
	}
}
