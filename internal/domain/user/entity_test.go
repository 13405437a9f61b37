package user

import "testing"

func TestUser_HasRole(t *testing.T) {
	u := User{Roles: []string{RoleUser, RoleAdmin}}
	if !u.IsAdmin() || !u.HasRole(RoleUser) {
		t.Fatalf("expected both roles")
	}
	if (User{Roles: []string{RoleUser}}).IsAdmin() {
		t.Fatalf("plain user must not be admin")
	}
	if (User{}).HasRole(RoleUser) {
		t.Fatalf("user without roles has no role")
	}
}
