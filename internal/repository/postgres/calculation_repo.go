package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// SavedCalculationRepository implements domain.SavedCalculationRepository using PostgreSQL
type SavedCalculationRepository struct {
	pool *pgxpool.Pool
}

// NewSavedCalculationRepository creates a new SavedCalculationRepository
func NewSavedCalculationRepository(pool *pgxpool.Pool) *SavedCalculationRepository {
	return &SavedCalculationRepository{pool: pool}
}

// Create persists a calculation for the user
func (r *SavedCalculationRepository) Create(calc *domain.SavedCalculation) (*domain.SavedCalculation, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO saved_calculations (user_id, kind, payload)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, kind, payload, created_at`,
		uuidToPg(calc.UserID), calc.Kind, []byte(calc.Payload))
	return scanCalculation(row)
}

// GetByID retrieves a saved calculation scoped to its owner
func (r *SavedCalculationRepository) GetByID(userID uuid.UUID, id int32) (*domain.SavedCalculation, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT id, user_id, kind, payload, created_at
		 FROM saved_calculations WHERE id = $1 AND user_id = $2`,
		id, uuidToPg(userID))
	return scanCalculation(row)
}

// GetAllByUser lists the user's saved calculations, newest first
func (r *SavedCalculationRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavedCalculation, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, user_id, kind, payload, created_at
		 FROM saved_calculations WHERE user_id = $1
		 ORDER BY created_at DESC`,
		uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calcs := make([]*domain.SavedCalculation, 0)
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, rows.Err()
}

// Delete removes a saved calculation scoped to its owner
func (r *SavedCalculationRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM saved_calculations WHERE id = $1 AND user_id = $2`,
		id, uuidToPg(userID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCalculationNotFound
	}
	return nil
}

func scanCalculation(row pgx.Row) (*domain.SavedCalculation, error) {
	var (
		c         domain.SavedCalculation
		userID    pgtype.UUID
		payload   []byte
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&c.ID, &userID, &c.Kind, &payload, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCalculationNotFound
		}
		return nil, err
	}
	c.UserID = pgToUUID(userID)
	c.Payload = payload
	c.CreatedAt = createdAt.Time
	return &c, nil
}
