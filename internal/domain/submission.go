package domain

import (
	"context"
	"time"
)

// Submission workflow statuses
const (
	StatusPending   = "pending"
	StatusNegosiasi = "negosiasi"
	StatusSuccess   = "success"
)

// FormSubmission is a lead-intake form entry under admin triage.
type FormSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	Service   string    `json:"service"`
	LandSize  string    `json:"landSize,omitempty"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSubmissionRequest carries editable submission fields.
type UpdateSubmissionRequest struct {
	Name     string `json:"name" binding:"omitempty,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,valid_phone"`
	Company  string `json:"company" binding:"omitempty,max=200"`
	Service  string `json:"service" binding:"omitempty,max=100"`
	LandSize string `json:"landSize" binding:"omitempty,max=100"`
	Message  string `json:"message" binding:"omitempty,max=5000"`
}

// ChangeStatusRequest moves a submission through the triage workflow.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,submission_status"`
}

// SubmissionListOptions carries filter and pagination parameters.
type SubmissionListOptions struct {
	// Search matches against name, email and service.
	Search string
	// Status filters by workflow status; empty returns all.
	Status string
	Page     int
	PageSize int
}

type SubmissionRepository interface {
	List(ctx context.Context, opts SubmissionListOptions) ([]FormSubmission, int64, error)
	GetByID(ctx context.Context, id string) (*FormSubmission, error)
	Update(ctx context.Context, sub *FormSubmission) error
	Delete(ctx context.Context, id string) error
}

type SubmissionUsecase interface {
	List(ctx context.Context, opts SubmissionListOptions) (*PaginatedResult[FormSubmission], error)
	Get(ctx context.Context, id string) (*FormSubmission, error)
	Update(ctx context.Context, id string, req UpdateSubmissionRequest) (*FormSubmission, error)
	// ChangeStatus updates the workflow status and fires the status-update
	// notification to the customer. Notification failure never fails the
	// status change.
	ChangeStatus(ctx context.Context, id string, newStatus string) (*FormSubmission, error)
	Delete(ctx context.Context, id string) error
}

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
