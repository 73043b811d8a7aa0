package access

import (
	"testing"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

func TestDecide_PendingWithoutUser(t *testing.T) {
	d := Decide(Resolution{}, domain.RoleAdmin)
	if d.Outcome != Pending {
		t.Fatalf("expected pending, got %s", d.Outcome)
	}
	if d.Target != "" {
		t.Fatalf("pending must not carry a target, got %q", d.Target)
	}
}

func TestDecide_PendingEvenWithStaleUser(t *testing.T) {
	// A cached user from a previous view must not short-circuit resolution.
	res := Resolution{User: &domain.User{Role: domain.RoleAdmin}}
	if d := Decide(res, domain.RoleAdmin); d.Outcome != Pending {
		t.Fatalf("expected pending, got %s", d.Outcome)
	}
}

func TestDecide_ResolvedAnonymous(t *testing.T) {
	d := Decide(Resolved(nil, domain.ErrUnauthenticated), "")
	if d.Outcome != RedirectToLogin || d.Target != LoginPath {
		t.Fatalf("expected login redirect, got %+v", d)
	}
}

func TestDecide_RoleMismatchTargetsActualRoleHome(t *testing.T) {
	client := &domain.User{ID: "u1", Role: domain.RoleClient}
	d := Decide(Resolved(client, nil), domain.RoleAdmin)
	if d.Outcome != RedirectToRoleHome {
		t.Fatalf("expected role-home redirect, got %s", d.Outcome)
	}
	if d.Target != ClientHomePath {
		t.Fatalf("expected %s, got %s", ClientHomePath, d.Target)
	}

	admin := &domain.User{ID: "u2", Role: domain.RoleAdmin}
	d = Decide(Resolved(admin, nil), domain.RoleClient)
	if d.Target != AdminHomePath {
		t.Fatalf("expected %s, got %s", AdminHomePath, d.Target)
	}
}

func TestDecide_Proceed(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		required domain.Role
	}{
		{"any role", domain.RoleClient, ""},
		{"admin matches", domain.RoleAdmin, domain.RoleAdmin},
		{"client matches", domain.RoleClient, domain.RoleClient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(Resolved(&domain.User{Role: tt.role}, nil), tt.required)
			if d.Outcome != Proceed {
				t.Fatalf("expected proceed, got %s", d.Outcome)
			}
		})
	}
}

func TestOutcome_String(t *testing.T) {
	want := map[Outcome]string{
		Pending:            "pending",
		Proceed:            "proceed",
		RedirectToLogin:    "redirect_login",
		RedirectToRoleHome: "redirect_role_home",
	}
	for o, s := range want {
		if o.String() != s {
			t.Fatalf("outcome %d: expected %q, got %q", o, s, o.String())
		}
	}
}
