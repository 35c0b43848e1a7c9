package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"academyhub/api/internal/models"
)

type AcademyRepository struct {
	pool *pgxpool.Pool
}

func NewAcademyRepository(pool *pgxpool.Pool) *AcademyRepository {
	return &AcademyRepository{pool: pool}
}

const academyColumns = `id, name, location, description, contact_email, contact_phone, contact_name, contact_person_phone, logo_url, status, created_at, updated_at`

func scanAcademy(row pgx.Row) (models.Academy, error) {
	var academy models.Academy
	if err := row.Scan(
		&academy.ID,
		&academy.Name,
		&academy.Location,
		&academy.Description,
		&academy.ContactEmail,
		&academy.ContactPhone,
		&academy.ContactName,
		&academy.ContactPersonPhone,
		&academy.LogoURL,
		&academy.Status,
		&academy.CreatedAt,
		&academy.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Academy{}, ErrAcademyNotFound
		}
		return models.Academy{}, err
	}
	return academy, nil
}

// CreateWithAdmin inserts the academy and its first admin user in one
// transaction. Neither row exists without the other.
func (r *AcademyRepository) CreateWithAdmin(ctx context.Context, academy models.Academy, admin models.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO academies (
			id, name, location, description, contact_email, contact_phone, contact_name, contact_person_phone, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`

	if _, err := tx.Exec(ctx, query,
		academy.ID,
		academy.Name,
		academy.Location,
		academy.Description,
		academy.ContactEmail,
		academy.ContactPhone,
		academy.ContactName,
		academy.ContactPersonPhone,
		academy.Status,
	); err != nil {
		return err
	}

	if err := insertUser(ctx, tx, admin); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AcademyRepository) GetByID(ctx context.Context, id string) (models.Academy, error) {
	const query = `SELECT ` + academyColumns + ` FROM academies WHERE id = $1`
	return scanAcademy(r.pool.QueryRow(ctx, query, id))
}

// ListByStatus returns academies in a given status, oldest first, matching the
// review-queue order super admins work through.
func (r *AcademyRepository) ListByStatus(ctx context.Context, status models.AcademyStatus) ([]models.Academy, error) {
	const query = `SELECT ` + academyColumns + ` FROM academies WHERE status = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var academies []models.Academy
	for rows.Next() {
		academy, err := scanAcademy(rows)
		if err != nil {
			return nil, err
		}
		academies = append(academies, academy)
	}
	return academies, rows.Err()
}

func (r *AcademyRepository) UpdateStatus(ctx context.Context, id string, status models.AcademyStatus) error {
	const query = `UPDATE academies SET status = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAcademyNotFound
	}
	return nil
}

func (r *AcademyRepository) UpdateLogoURL(ctx context.Context, id string, logoURL string) error {
	const query = `UPDATE academies SET logo_url = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, logoURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAcademyNotFound
	}
	return nil
}

// CountByStatus returns academy counts keyed by lifecycle status.
func (r *AcademyRepository) CountByStatus(ctx context.Context) (map[models.AcademyStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM academies GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.AcademyStatus]int)
	for rows.Next() {
		var status models.AcademyStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
