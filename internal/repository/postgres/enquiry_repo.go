package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// EnquiryRepository implements domain.EnquiryRepository using PostgreSQL
type EnquiryRepository struct {
	pool *pgxpool.Pool
}

// NewEnquiryRepository creates a new EnquiryRepository
func NewEnquiryRepository(pool *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{pool: pool}
}

// Create persists a contact form submission
func (r *EnquiryRepository) Create(enquiry *domain.Enquiry) (*domain.Enquiry, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO enquiries (name, email, phone, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, email, phone, message, created_at`,
		enquiry.Name, enquiry.Email, stringPtrToPgText(enquiry.Phone), enquiry.Message)
	return scanEnquiry(row)
}

// GetAll lists the most recent enquiries for the agent dashboard
func (r *EnquiryRepository) GetAll(limit int) ([]*domain.Enquiry, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, name, email, phone, message, created_at
		 FROM enquiries ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enquiries := make([]*domain.Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}

func scanEnquiry(row pgx.Row) (*domain.Enquiry, error) {
	var (
		e         domain.Enquiry
		phone     pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&e.ID, &e.Name, &e.Email, &phone, &e.Message, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrEnquiryNotFound
		}
		return nil, err
	}
	e.Phone = pgTextToStringPtr(phone)
	e.CreatedAt = createdAt.Time
	return &e, nil
}
