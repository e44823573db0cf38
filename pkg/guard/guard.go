// Package guard gates handlers on authentication and role.
//
// Roles are a closed enumeration and permissions live in one table
// consulted through HasAccess, so authorization is decided in exactly one
// place. Guards compose as an ordered chain of Rule values evaluated
// before the handler body; a failing rule short-circuits with its Deny
// response and the handler never runs.
package guard

import (
	"context"
	"net/http"

	appauth "github.com/shashiranjanraj/ordercrm/pkg/auth"
	"github.com/shashiranjanraj/ordercrm/pkg/session"
)

// ForbiddenMessage is the body of every role-check refusal.
const ForbiddenMessage = "You are not authorized to view this page"

// ─── Roles ───────────────────────────────────────────────────────────────────

// Role is the closed set of user roles.
type Role int

const (
	RoleCustomer Role = iota
	RoleAdmin
)

// ParseRole maps the stored string column to a Role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "admin":
		return RoleAdmin, true
	case "customer":
		return RoleCustomer, true
	}
	return RoleCustomer, false
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "customer"
}

// ─── Operations & permission table ───────────────────────────────────────────

// Operation names a guarded capability.
type Operation int

const (
	OpViewDashboard Operation = iota
	OpViewOwnOrders
	OpManageProducts
	OpManageCustomers
	OpManageOrders
	OpCreateCustomer
	OpUpdateOrder
)

var permissions = map[Role]map[Operation]bool{
	RoleAdmin: {
		OpViewDashboard:   true,
		OpViewOwnOrders:   true,
		OpManageProducts:  true,
		OpManageCustomers: true,
		OpManageOrders:    true,
		OpCreateCustomer:  true,
		OpUpdateOrder:     true,
	},
	RoleCustomer: {
		OpViewOwnOrders:  true,
		OpCreateCustomer: true,
		OpUpdateOrder:    true,
	},
}

// HasAccess reports whether role may perform op. Pure: no request state.
func HasAccess(role Role, op Operation) bool {
	return permissions[role][op]
}

// ─── Identity resolution ─────────────────────────────────────────────────────

// Identity is the authenticated caller.
type Identity struct {
	UserID uint
	Role   Role
}

type identityKey struct{}

// CurrentUser returns the authenticated identity, if any.
func CurrentUser(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity stores an identity in ctx. Exposed for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Authenticate resolves the caller's identity from the session, falling
// back to the remember-me cookie. It never rejects; rules downstream do.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)

		if userID, ok := sess.GetUint("user_id"); ok {
			roleStr, _ := sess.GetString("role")
			role, _ := ParseRole(roleStr)
			r = r.WithContext(WithIdentity(r.Context(), Identity{UserID: userID, Role: role}))
			next.ServeHTTP(w, r)
			return
		}

		// Session is gone; try the remember-me cookie and re-establish it.
		if cookie, err := r.Cookie(appauth.RememberCookieName); err == nil {
			if claims, err := appauth.ParseRememberToken(cookie.Value); err == nil {
				role, _ := ParseRole(claims.Role)
				sess.Set("user_id", claims.UserID)
				sess.Set("role", role.String())
				_ = sess.Save(w)
				r = r.WithContext(WithIdentity(r.Context(), Identity{UserID: claims.UserID, Role: role}))
			}
		}

		next.ServeHTTP(w, r)
	})
}

// ─── Guard chain ─────────────────────────────────────────────────────────────

// Rule pairs a predicate with the response produced when it fails.
type Rule struct {
	Check func(r *http.Request) bool
	Deny  http.HandlerFunc
}

// Chain evaluates rules in order before the handler. The first failing
// rule writes its Deny response and stops; the handler runs only when
// every rule passes.
func Chain(rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, rule := range rules {
				if !rule.Check(r) {
					rule.Deny(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticated(r *http.Request) bool {
	_, ok := CurrentUser(r)
	return ok
}

// homeFor is the post-login landing page per role.
func homeFor(role Role) string {
	if role == RoleAdmin {
		return "/"
	}
	return "/user"
}

// RequireGuest redirects authenticated callers to their role's home page
// instead of showing login/register.
func RequireGuest(next http.Handler) http.Handler {
	return Chain(Rule{
		Check: func(r *http.Request) bool { return !authenticated(r) },
		Deny: func(w http.ResponseWriter, r *http.Request) {
			id, _ := CurrentUser(r)
			http.Redirect(w, r, homeFor(id.Role), http.StatusFound)
		},
	})(next)
}

// RequireAuth redirects unauthenticated callers to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return Chain(Rule{
		Check: authenticated,
		Deny: func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/login", http.StatusFound)
		},
	})(next)
}

// RequireAccess responds 403 when the caller's role may not perform op.
// Stack it after RequireAuth.
func RequireAccess(op Operation) func(http.Handler) http.Handler {
	return Chain(Rule{
		Check: func(r *http.Request) bool {
			id, ok := CurrentUser(r)
			return ok && HasAccess(id.Role, op)
		},
		Deny: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, ForbiddenMessage, http.StatusForbidden)
		},
	})
}

// AdminHome sends non-admin callers to their own order page rather than
// refusing the admin dashboard outright.
func AdminHome(next http.Handler) http.Handler {
	return Chain(Rule{
		Check: func(r *http.Request) bool {
			id, ok := CurrentUser(r)
			return ok && id.Role == RoleAdmin
		},
		Deny: func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/user", http.StatusFound)
		},
	})(next)
}
