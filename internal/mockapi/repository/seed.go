package repository

import "github.com/eventops/rooming-dashboard/internal/core/domain"

// Demo credentials accepted by the mock API.
const (
	DemoEmail    = "admin@example.com"
	DemoPassword = "password"
)

// SeedUsers are the accounts present when the mock API starts.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:        "1",
			Email:     "john.doe@example.com",
			FirstName: "John",
			LastName:  "Doe",
			Role:      domain.RoleAdmin,
			IsActive:  true,
			CreatedAt: "2023-01-01T00:00:00Z",
			UpdatedAt: "2023-01-01T00:00:00Z",
		},
		{
			ID:        "2",
			Email:     "jane.smith@example.com",
			FirstName: "Jane",
			LastName:  "Smith",
			Role:      domain.RoleUser,
			IsActive:  true,
			CreatedAt: "2023-01-02T00:00:00Z",
			UpdatedAt: "2023-01-02T00:00:00Z",
		},
	}
}
