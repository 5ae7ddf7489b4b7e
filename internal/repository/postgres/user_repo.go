package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, auth0_id, email, first_name, last_name, phone, role, email_verified, created_at, updated_at, deleted_at`

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`,
		uuidToPg(id))
	return scanUser(row)
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE auth0_id = $1 AND deleted_at IS NULL`,
		auth0ID)
	return scanUser(row)
}

// CreateOrGetByAuth0ID creates a new user or returns the existing one
// (upsert on login). New accounts default to the customer role.
func (r *UserRepository) CreateOrGetByAuth0ID(auth0ID, email string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO users (auth0_id, email, role)
		 VALUES ($1, $2, 'customer')
		 ON CONFLICT (auth0_id) DO UPDATE SET email = EXCLUDED.email, updated_at = now()
		 RETURNING `+userColumns,
		auth0ID, email)
	return scanUser(row)
}

// Update updates an existing user's profile fields
func (r *UserRepository) Update(user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE users
		 SET first_name = $2, last_name = $3, phone = $4, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING `+userColumns,
		uuidToPg(user.ID),
		stringPtrToPgText(user.FirstName),
		stringPtrToPgText(user.LastName),
		stringPtrToPgText(user.Phone))
	return scanUser(row)
}

// MarkEmailVerified sets the email_verified flag after OTP verification
func (r *UserRepository) MarkEmailVerified(id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE users SET email_verified = TRUE, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		uuidToPg(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id        pgtype.UUID
		u         domain.User
		firstName pgtype.Text
		lastName  pgtype.Text
		phone     pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		deletedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &u.Auth0ID, &u.Email, &firstName, &lastName, &phone,
		&u.Role, &u.EmailVerified, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.ID = pgToUUID(id)
	u.FirstName = pgTextToStringPtr(firstName)
	u.LastName = pgTextToStringPtr(lastName)
	u.Phone = pgTextToStringPtr(phone)
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	u.DeletedAt = pgTimestamptzToTimePtr(deletedAt)
	return &u, nil
}
