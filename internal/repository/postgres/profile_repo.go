package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) List(ctx context.Context, opts domain.ProfileListOptions) ([]domain.UserProfile, int64, error) {
	where := ""
	args := []interface{}{}
	argPos := 1

	if opts.Search != "" {
		where = fmt.Sprintf(" WHERE (full_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+opts.Search+"%")
		argPos++
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM profiles"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, full_name, email, COALESCE(phone, ''), created_at, updated_at FROM profiles` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, opts.PageSize, (opts.Page-1)*opts.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := []domain.UserProfile{}
	for rows.Next() {
		var p domain.UserProfile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}

	return profiles, total, rows.Err()
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT id, full_name, email, COALESCE(phone, ''), created_at, updated_at FROM profiles WHERE id = $1`

	var p domain.UserProfile
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	query := `UPDATE profiles
              SET full_name = $2, email = $3, phone = NULLIF($4, ''), updated_at = $5
              WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, profile.ID, profile.FullName, profile.Email, profile.Phone, profile.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Profile with this email already exists")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}
