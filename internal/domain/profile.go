package domain

import (
	"context"
	"time"
)

// UserProfile is a registered website user as shown on the dashboard.
type UserProfile struct {
	ID        string    `json:"id"` // Supabase auth UUID
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest carries editable profile fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"omitempty,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,valid_phone"`
}

// ProfileListOptions carries filter and pagination parameters.
type ProfileListOptions struct {
	// Search matches against full name and email.
	Search   string
	Page     int
	PageSize int
}

type ProfileRepository interface {
	List(ctx context.Context, opts ProfileListOptions) ([]UserProfile, int64, error)
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	Update(ctx context.Context, profile *UserProfile) error
	Delete(ctx context.Context, id string) error
}

type ProfileUsecase interface {
	List(ctx context.Context, opts ProfileListOptions) (*PaginatedResult[UserProfile], error)
	Update(ctx context.Context, id string, req UpdateProfileRequest) (*UserProfile, error)
	Delete(ctx context.Context, id string) error
}
