// Package router decides, from the persisted session alone, which screen
// the console may show for a path.
//
// The routing table is static and keyed by role. Evaluate is a pure
// function of (path, session); Layout adds the navigation state: it
// evaluates once per path change, follows redirects, and owns logout.
package router

import (
	"strings"

	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
)

// Route is one entry of the side menu.
type Route struct {
	Path  string
	Label string
	Roles []session.Role
}

func (r Route) allows(role session.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

const (
	DashboardPath = common.LayoutRoot
	TenantsPath   = common.LayoutRoot + "/tenants"
)

var (
	dashboard = Route{Path: DashboardPath, Label: "Dashboard", Roles: []session.Role{session.RoleTenant}}
	tenants   = Route{Path: TenantsPath, Label: "Tenants", Roles: []session.Role{session.RoleAdmin}}

	table = map[session.Role][]Route{
		session.RoleTenant: {dashboard},
		session.RoleAdmin:  {tenants},
	}
)

// Routes lists the routes of role in menu order. The first one is the
// role's default view.
func Routes(role session.Role) []Route {
	return append([]Route(nil), table[role]...)
}

// MenuItem is a Route as drawn for a given path.
type MenuItem struct {
	Route
	Active bool
}

// Menu marks every route of role whose path prefixes path as active.
func Menu(role session.Role, path string) []MenuItem {
	routes := table[role]
	items := make([]MenuItem, len(routes))
	for i, r := range routes {
		items[i] = MenuItem{Route: r, Active: strings.HasPrefix(path, r.Path)}
	}
	return items
}

// match returns the most specific route of role covering path.
func match(role session.Role, path string) (Route, bool) {
	var best Route
	found := false
	for _, r := range table[role] {
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			if !found || len(r.Path) > len(best.Path) {
				best, found = r, true
			}
		}
	}
	return best, found
}

// foreignMatch returns the most specific route covering path that role
// may not see.
func foreignMatch(role session.Role, path string) (Route, bool) {
	var best Route
	found := false
	for other, routes := range table {
		if other == role {
			continue
		}
		for _, r := range routes {
			if r.allows(role) {
				continue
			}
			if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
				if !found || len(r.Path) > len(best.Path) {
					best, found = r, true
				}
			}
		}
	}
	return best, found
}
