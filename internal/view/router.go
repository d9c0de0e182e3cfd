// Package view picks the screen the shell renders.
package view

import (
	"portal/internal/auth/models"
	"portal/internal/auth/service"
)

// View names a screen.
type View string

const (
	Login       View = "login"
	FirstLogin  View = "first-login"
	Dashboard   View = "dashboard"
	Profile     View = "profile"
	Admin       View = "admin"
	Ministries  View = "ministries"
	Departments View = "departments"
	Positions   View = "positions"
	Addresses   View = "addresses"
	Resources   View = "resources"
)

type entry struct {
	view      View
	title     string
	adminOnly bool
}

// menu is the navigation in display order.
var menu = []entry{
	{Dashboard, "Главная", false},
	{Profile, "Профиль", false},
	{Admin, "Администрирование", true},
	{Ministries, "Министерства", true},
	{Departments, "Подразделения", true},
	{Positions, "Должности", true},
	{Addresses, "Адреса", true},
	{Resources, "Ресурсы", true},
}

// Resolve returns the screen for the gate state. Unknown or forbidden
// requests in the active state fall back to the dashboard.
func Resolve(state service.State, role models.Role, requested View) View {
	switch state {
	case service.StateUnauthenticated:
		return Login
	case service.StatePendingProfile:
		return FirstLogin
	}
	for _, e := range menu {
		if e.view == requested {
			if e.adminOnly && role != models.RoleAdmin {
				return Dashboard
			}
			return requested
		}
	}
	return Dashboard
}

// Item is one navigation entry.
type Item struct {
	View  View
	Title string
}

// Navigation lists the views role may open, in menu order.
func Navigation(role models.Role) []Item {
	items := make([]Item, 0, len(menu))
	for _, e := range menu {
		if e.adminOnly && role != models.RoleAdmin {
			continue
		}
		items = append(items, Item{View: e.view, Title: e.title})
	}
	return items
}

// Title returns the menu title of v, or v itself for screens outside the menu.
func Title(v View) string {
	for _, e := range menu {
		if e.view == v {
			return e.title
		}
	}
	return string(v)
}
