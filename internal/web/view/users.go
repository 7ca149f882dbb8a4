package view

import (
	"net/url"
	"strconv"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// Roles are the options of every role selector.
var Roles = []domain.UserRole{domain.RoleAdmin, domain.RoleUser, domain.RoleModerator}

type UserList struct {
	Users  []domain.NormalizedUser
	Total  int
	Page   int
	Pages  int
	Search string
	Role   string
	Prev   string
	Next   string
	Form   UserForm
}

// UserForm echoes a submitted form back after a failed create or update.
type UserForm struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
}

type UserDetail struct {
	User     *domain.NormalizedUser
	NotFound bool
	ID       string
}

// NewUserList derives pagination links from the page and the active filters.
func NewUserList(p *domain.UsersPage, params domain.ListUsersParams) UserList {
	l := UserList{
		Search: params.Search,
		Role:   string(params.Role),
		Page:   params.Page,
		Pages:  1,
	}
	if p != nil {
		l.Users = p.Users
		l.Total = p.Total
		l.Page = p.Page
		l.Pages = p.Pages()
	}
	if l.Page > 1 {
		l.Prev = pageLink(params, l.Page-1)
	}
	if l.Page < l.Pages {
		l.Next = pageLink(params, l.Page+1)
	}
	return l
}

func pageLink(params domain.ListUsersParams, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Role != "" {
		q.Set("role", string(params.Role))
	}
	return "/users?" + q.Encode()
}
