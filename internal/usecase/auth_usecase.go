package usecase

import (
	"context"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// IsAdmin checks role assignments in the user_roles table. The JWT role
// claim is not trusted: it may be stale or just "authenticated".
func (u *authUsecase) IsAdmin(ctx context.Context, userID string) (bool, error) {
	roles, err := u.userRepo.ListRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == "admin" {
			return true, nil
		}
	}
	return false, nil
}
