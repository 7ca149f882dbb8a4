package service

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// NormalizeUser derives the display fields of u. Unparseable timestamps
// become the zero time.
func NormalizeUser(u domain.User) domain.NormalizedUser {
	return domain.NormalizedUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: parseTime(u.CreatedAt),
		UpdatedAt: parseTime(u.UpdatedAt),
		FullName:  u.FirstName + " " + u.LastName,
		Initials:  initial(u.FirstName) + initial(u.LastName),
		IsAdmin:   u.Role == domain.RoleAdmin,
	}
}

func NormalizeUsers(users []domain.User) []domain.NormalizedUser {
	out := make([]domain.NormalizedUser, len(users))
	for i, u := range users {
		out[i] = NormalizeUser(u)
	}
	return out
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
