package domain

import "context"

// UserRepository reads the identity provider's role assignments. Accounts
// themselves live in Supabase auth; only role rows are owned locally.
type UserRepository interface {
	// ListRoles returns the roles assigned to a user, empty when none.
	ListRoles(ctx context.Context, userID string) ([]string, error)
}

// AuthUsecase gates dashboard access.
type AuthUsecase interface {
	// IsAdmin reports whether the user carries the admin role.
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
