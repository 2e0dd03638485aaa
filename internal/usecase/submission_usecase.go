package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"
)

type submissionUsecase struct {
	subRepo        domain.SubmissionRepository
	notificationUC domain.NotificationUsecase
	log            *slog.Logger
}

func NewSubmissionUsecase(subRepo domain.SubmissionRepository, notificationUC domain.NotificationUsecase, log *slog.Logger) domain.SubmissionUsecase {
	return &submissionUsecase{
		subRepo:        subRepo,
		notificationUC: notificationUC,
		log:            log,
	}
}

func (u *submissionUsecase) List(ctx context.Context, opts domain.SubmissionListOptions) (*domain.PaginatedResult[domain.FormSubmission], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	subs, total, err := u.subRepo.List(ctx, opts)
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to fetch submissions: " + err.Error()))
	}

	return &domain.PaginatedResult[domain.FormSubmission]{
		Data:       subs,
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(opts.PageSize))),
	}, nil
}

func (u *submissionUsecase) Get(ctx context.Context, id string) (*domain.FormSubmission, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperror.BadRequest("Submission ID is required")
	}

	sub, err := u.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *submissionUsecase) Update(ctx context.Context, id string, req domain.UpdateSubmissionRequest) (*domain.FormSubmission, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	sub, err := u.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		sub.Name = req.Name
	}
	if req.Email != "" {
		sub.Email = req.Email
	}
	if req.Phone != "" {
		sub.Phone = req.Phone
	}
	if req.Company != "" {
		sub.Company = req.Company
	}
	if req.Service != "" {
		sub.Service = req.Service
	}
	if req.LandSize != "" {
		sub.LandSize = req.LandSize
	}
	if req.Message != "" {
		sub.Message = req.Message
	}
	sub.UpdatedAt = time.Now()

	if err := u.subRepo.Update(ctx, sub); err != nil {
		return nil, apperror.Internal(errors.New("Failed to update submission: " + err.Error()))
	}
	return sub, nil
}

// ChangeStatus moves a submission through the triage workflow and notifies
// the customer. The notification is best-effort: its failure is logged and
// the status change stands.
func (u *submissionUsecase) ChangeStatus(ctx context.Context, id string, newStatus string) (*domain.FormSubmission, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	switch newStatus {
	case domain.StatusPending, domain.StatusNegosiasi, domain.StatusSuccess:
	default:
		return nil, apperror.BadRequest("Unknown status: " + newStatus)
	}

	sub, err := u.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := sub.Status
	if oldStatus == newStatus {
		return sub, nil
	}

	sub.Status = newStatus
	sub.UpdatedAt = time.Now()
	if err := u.subRepo.Update(ctx, sub); err != nil {
		return nil, apperror.Internal(errors.New("Failed to update status: " + err.Error()))
	}

	if _, err := u.notificationUC.Dispatch(ctx, domain.StatusUpdateNotification{
		Name:      sub.Name,
		Email:     sub.Email,
		Service:   sub.Service,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}); err != nil {
		u.log.Error("failed to send status update email", "error", err, "submission_id", id)
	}

	return sub, nil
}

func (u *submissionUsecase) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if id == "" {
		return apperror.BadRequest("Submission ID is required")
	}

	if err := u.subRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// requireAdmin checks the role placed in context by the auth middleware.
// Fails safe when the key is missing.
func requireAdmin(ctx context.Context) error {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if role != "admin" {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}
