// Package view holds the data handed to the page templates.
package view

import (
	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// Page wraps every rendered page.
type Page struct {
	Title   string
	Active  string
	Session Session
	Notice  string
	Error   string
	DevMode bool
	Data    any
}

// Session is what the navbar needs to know about the operator.
type Session struct {
	Authenticated bool
	Loading       bool
	User          *domain.NormalizedUser
}

// ErrorPage backs the error boundary.
type ErrorPage struct {
	Code     int
	Heading  string
	Message  string
	Detail   string
	Stack    string
	RetryURL string
}

// NavItem is one sidebar entry.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

// Sidebar lists the navigation targets, all of which are routed.
var Sidebar = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Href: "/dashboard"},
	{Key: "users", Label: "Users", Href: "/users"},
	{Key: "settings", Label: "Settings", Href: "/settings"},
}

type Login struct {
	Email    string
	Password string
	Next     string
}

// DemoLogin is the account seeded by the bundled mock API.
var DemoLogin = Login{Email: "admin@example.com", Password: "password"}

// Settings describes the running configuration shown to the operator.
type Settings struct {
	Env          string
	APIBaseURL   string
	SessionStore string
	StaleTime    string
	CacheTime    string
	MockAPI      bool
}
