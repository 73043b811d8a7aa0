// Package access holds the single decision function that guards both HTTP
// routes and client-side views.
//
// A decision is only made once identity resolution has completed. Absence
// of a user while resolution is still in flight yields Pending, never a
// login redirect.
package access

import "github.com/imoveiscrm/realestate-api/internal/core/domain"

const (
	LoginPath       = "/login"
	AdminHomePath   = "/admin"
	ClientHomePath  = "/dashboard"
	defaultHomePath = "/"
)

// Outcome is the result of evaluating the gate.
type Outcome int

const (
	Pending Outcome = iota
	Proceed
	RedirectToLogin
	RedirectToRoleHome
)

func (o Outcome) String() string {
	switch o {
	case Proceed:
		return "proceed"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToRoleHome:
		return "redirect_role_home"
	default:
		return "pending"
	}
}

// Resolution is the state of identity lookup for one request or view.
// Done must be set explicitly once the lookup has finished; User may be
// nil afterwards. Cause keeps the reason an identity is absent.
type Resolution struct {
	Done  bool
	User  *domain.User
	Cause error
}

// Resolved builds a completed resolution.
func Resolved(user *domain.User, cause error) Resolution {
	return Resolution{Done: true, User: user, Cause: cause}
}

// Decision pairs an outcome with its redirect target, if any.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide evaluates the gate. An empty required role admits any signed-in user.
func Decide(res Resolution, required domain.Role) Decision {
	if !res.Done {
		return Decision{Outcome: Pending}
	}
	if res.User == nil {
		return Decision{Outcome: RedirectToLogin, Target: LoginPath}
	}
	if required != "" && res.User.Role != required {
		return Decision{Outcome: RedirectToRoleHome, Target: HomeFor(res.User.Role)}
	}
	return Decision{Outcome: Proceed}
}

// HomeFor returns the landing view of a role.
func HomeFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return AdminHomePath
	case domain.RoleClient:
		return ClientHomePath
	default:
		return defaultHomePath
	}
}
