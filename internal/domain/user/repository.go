package user

import "context"

type UserRepository interface {
	// GetByUsername returns the active user or ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (User, error)

	// RolesForUser returns the user's role codes.
	RolesForUser(ctx context.Context, userID string) ([]string, error)
}
