package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

const submissionColumns = `id, name, email, phone, COALESCE(company, ''), service, COALESCE(land_size, ''), COALESCE(message, ''), status, created_at, updated_at`

func (r *submissionRepo) List(ctx context.Context, opts domain.SubmissionListOptions) ([]domain.FormSubmission, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if opts.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR service ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+opts.Search+"%")
		argPos++
	}
	if opts.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, opts.Status)
		argPos++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM form_submissions" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + submissionColumns + " FROM form_submissions" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, opts.PageSize, (opts.Page-1)*opts.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	subs := []domain.FormSubmission{}
	for rows.Next() {
		var s domain.FormSubmission
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.Phone, &s.Company,
			&s.Service, &s.LandSize, &s.Message, &s.Status,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		subs = append(subs, s)
	}

	return subs, total, rows.Err()
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*domain.FormSubmission, error) {
	query := "SELECT " + submissionColumns + " FROM form_submissions WHERE id = $1"

	var s domain.FormSubmission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Company,
		&s.Service, &s.LandSize, &s.Message, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Submission not found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepo) Update(ctx context.Context, sub *domain.FormSubmission) error {
	query := `UPDATE form_submissions
              SET name = $2, email = $3, phone = $4, company = NULLIF($5, ''),
                  service = $6, land_size = NULLIF($7, ''), message = NULLIF($8, ''),
                  status = $9, updated_at = $10
              WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		sub.ID, sub.Name, sub.Email, sub.Phone, sub.Company,
		sub.Service, sub.LandSize, sub.Message, sub.Status, sub.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Submission not found")
	}
	return nil
}

func (r *submissionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM form_submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Submission not found")
	}
	return nil
}
