package domain

import "time"

// UserRole is the access level of a dashboard user.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleModerator:
		return true
	}
	return false
}

// User is the wire representation returned by the REST API.
// Timestamps stay as ISO-8601 strings until normalisation.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Avatar    string   `json:"avatar,omitempty"`
	Role      UserRole `json:"role"`
	IsActive  bool     `json:"isActive"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// NormalizedUser is a User enriched with the fields every view needs.
// It never leaves the process.
type NormalizedUser struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Avatar    string
	Role      UserRole
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	FullName string
	Initials string
	IsAdmin  bool
}

// UserPatch is a partial user merged into the signed-in user by the auth store.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Avatar    *string
	Role      *UserRole
	IsActive  *bool
	UpdatedAt *string
}

type CreateUserRequest struct {
	Email     string   `json:"email"     validate:"required,email"`
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName"  validate:"required"`
	Password  string   `json:"password"  validate:"required,min=6"`
	Role      UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin user moderator"`
}

// UpdateUserRequest carries the only fields that may change after creation.
type UpdateUserRequest struct {
	FirstName *string   `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string   `json:"lastName,omitempty"  validate:"omitempty,min=1"`
	Avatar    *string   `json:"avatar,omitempty"`
	Role      *UserRole `json:"role,omitempty"      validate:"omitempty,oneof=admin user moderator"`
	IsActive  *bool     `json:"isActive,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type BulkDeleteResponse struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
}

// ListUsersParams is the query of GET /users. Zero values are omitted.
type ListUsersParams struct {
	Page   int      `json:"page,omitempty"`
	Limit  int      `json:"limit,omitempty"`
	Search string   `json:"search,omitempty"`
	Role   UserRole `json:"role,omitempty"`
}

type UsersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// UsersPage is a normalised UsersResponse.
type UsersPage struct {
	Users []NormalizedUser
	Total int
	Page  int
	Limit int
}

// Pages returns the number of pages needed to show Total users.
func (p UsersPage) Pages() int {
	if p.Limit <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
