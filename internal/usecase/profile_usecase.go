package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo}
}

func (u *profileUsecase) List(ctx context.Context, opts domain.ProfileListOptions) (*domain.PaginatedResult[domain.UserProfile], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	profiles, total, err := u.profileRepo.List(ctx, opts)
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to fetch profiles: " + err.Error()))
	}

	return &domain.PaginatedResult[domain.UserProfile]{
		Data:       profiles,
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(opts.PageSize))),
	}, nil
}

func (u *profileUsecase) Update(ctx context.Context, id string, req domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Email != "" {
		profile.Email = req.Email
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	profile.UpdatedAt = time.Now()

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, apperror.Internal(errors.New("Failed to update profile: " + err.Error()))
	}
	return profile, nil
}

func (u *profileUsecase) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if id == "" {
		return apperror.BadRequest("Profile ID is required")
	}

	if err := u.profileRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}
