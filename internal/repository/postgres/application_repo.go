package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// ApplicationRepository implements domain.ApplicationRepository using PostgreSQL
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationColumns = `id, customer_id, agent_id, property_address, purchase_price, loan_amount, status, lender, notes, created_at, updated_at`

// Create persists a new bond application
func (r *ApplicationRepository) Create(app *domain.Application) (*domain.Application, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO applications (customer_id, agent_id, property_address, purchase_price, loan_amount, status, lender, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+applicationColumns,
		uuidToPg(app.CustomerID),
		uuidToPg(app.AgentID),
		app.PropertyAddress,
		decimalToNumeric(app.PurchasePrice),
		decimalToNumeric(app.LoanAmount),
		string(app.Status),
		stringPtrToPgText(app.Lender),
		stringPtrToPgText(app.Notes))
	return scanApplication(row)
}

// GetByID retrieves an application scoped to the managing agent
func (r *ApplicationRepository) GetByID(agentID uuid.UUID, id int32) (*domain.Application, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND agent_id = $2`,
		id, uuidToPg(agentID))
	return scanApplication(row)
}

// GetAllByAgent lists an agent's pipeline, newest first
func (r *ApplicationRepository) GetAllByAgent(agentID uuid.UUID) ([]*domain.Application, error) {
	return r.list(`SELECT `+applicationColumns+` FROM applications WHERE agent_id = $1 ORDER BY created_at DESC`, agentID)
}

// GetAllByCustomer lists a customer's applications, newest first
func (r *ApplicationRepository) GetAllByCustomer(customerID uuid.UUID) ([]*domain.Application, error) {
	return r.list(`SELECT `+applicationColumns+` FROM applications WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *ApplicationRepository) list(query string, id uuid.UUID) ([]*domain.Application, error) {
	rows, err := r.pool.Query(context.Background(), query, uuidToPg(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// Update persists status, lender and notes changes
func (r *ApplicationRepository) Update(app *domain.Application) (*domain.Application, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE applications
		 SET status = $3, lender = $4, notes = $5, updated_at = now()
		 WHERE id = $1 AND agent_id = $2
		 RETURNING `+applicationColumns,
		app.ID,
		uuidToPg(app.AgentID),
		string(app.Status),
		stringPtrToPgText(app.Lender),
		stringPtrToPgText(app.Notes))
	return scanApplication(row)
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		a             domain.Application
		customerID    pgtype.UUID
		agentID       pgtype.UUID
		purchasePrice pgtype.Numeric
		loanAmount    pgtype.Numeric
		status        string
		lender        pgtype.Text
		notes         pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(&a.ID, &customerID, &agentID, &a.PropertyAddress,
		&purchasePrice, &loanAmount, &status, &lender, &notes, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	a.CustomerID = pgToUUID(customerID)
	a.AgentID = pgToUUID(agentID)
	a.PurchasePrice = numericToDecimal(purchasePrice)
	a.LoanAmount = numericToDecimal(loanAmount)
	a.Status = domain.ApplicationStatus(status)
	a.Lender = pgTextToStringPtr(lender)
	a.Notes = pgTextToStringPtr(notes)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}
