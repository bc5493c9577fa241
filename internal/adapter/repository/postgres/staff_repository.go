package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

const staffColumns = `id, name, email, password_hash, role, created_at`

type StaffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var staff domain.Staff
	err := row.Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	query := `
	INSERT INTO staff (id, name, email, password_hash, role, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, staff.ID, staff.Name, staff.Email, staff.PasswordHash, staff.Role, staff.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "staff_email_key") {
			return domain.ErrStaffExists
		}
		return fmt.Errorf("failed to insert staff: %w", err)
	}

	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	return scanStaff(r.db.QueryRowContext(ctx, query, staffID))
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = $1`
	return scanStaff(r.db.QueryRowContext(ctx, query, email))
}

func (r *StaffRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE role = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var staff []domain.Staff
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}

		staff = append(staff, *member)
	}

	return staff, rows.Err()
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	query := `
	UPDATE staff
	SET name = $1, email = $2, password_hash = $3
	WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, staff.Name, staff.Email, staff.PasswordHash, staff.ID)
	if err != nil {
		if isUniqueViolation(err, "staff_email_key") {
			return domain.ErrStaffExists
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrStaffNotFound
	}

	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, staffID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, staffID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrStaffNotFound
	}

	return nil
}
