package router

import (
	"strings"

	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
)

type State int

const (
	Unauthenticated State = iota
	AuthenticatedTenant
	AuthenticatedAdmin
)

func (s State) String() string {
	switch s {
	case AuthenticatedTenant:
		return "tenant"
	case AuthenticatedAdmin:
		return "admin"
	default:
		return "unauthenticated"
	}
}

// StateOf maps a session snapshot to a router state.
func StateOf(s *session.Session) State {
	if s == nil {
		return Unauthenticated
	}
	switch s.Role {
	case session.RoleTenant:
		return AuthenticatedTenant
	case session.RoleAdmin:
		return AuthenticatedAdmin
	default:
		return Unauthenticated
	}
}

// Decision is the outcome of evaluating one path against one session.
type Decision struct {
	State State
	// Path is where navigation ends up. It differs from the requested path
	// only when Redirect is set.
	Path     string
	Redirect string
	// View is the route rendered for Path. Zero when unauthenticated.
	View Route
	Menu []MenuItem
	// Reason explains a redirect or fallback with common.ErrSessionAbsent or
	// common.ErrRoleMismatch. It is never shown to the user.
	Reason error
}

func (d Decision) Authenticated() bool { return d.State != Unauthenticated }

// Evaluate decides what path shows for sess. A nil session always lands
// on the login path. Inside the layout, a path no route of the role
// covers renders the role's default view; paths outside the layout are
// redirected to it.
func Evaluate(path string, sess *session.Session) Decision {
	state := StateOf(sess)
	if state == Unauthenticated {
		d := Decision{State: Unauthenticated, Path: common.LoginPath, Reason: common.ErrSessionAbsent}
		if path != common.LoginPath {
			d.Redirect = common.LoginPath
		}
		return d
	}

	role := sess.Role
	routes := table[role]
	home := routes[0]
	d := Decision{State: state, Path: path}

	switch {
	case isLayoutRoot(path) && !home.allowsPath(path):
		// The layout root is the tenant dashboard; roles without it start
		// at their first route.
		d.Path, d.Redirect = home.Path, home.Path
	case !underLayout(path):
		d.Path, d.Redirect = home.Path, home.Path
	}

	own, ok := match(role, d.Path)
	if other, isForeign := foreignMatch(role, d.Path); isForeign && (!ok || len(other.Path) > len(own.Path)) {
		d.Reason = common.ErrRoleMismatch
	}
	if ok {
		d.View = own
	} else {
		d.View = home
	}
	d.Menu = Menu(role, d.Path)
	return d
}

func (r Route) allowsPath(path string) bool {
	return strings.TrimSuffix(path, "/") == r.Path
}

func isLayoutRoot(path string) bool {
	return strings.TrimSuffix(path, "/") == common.LayoutRoot
}

func underLayout(path string) bool {
	return path == common.LayoutRoot || strings.HasPrefix(path, common.LayoutRoot+"/")
}
