package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrApplicationAddressEmpty  = errors.New("property address is required")
	ErrApplicationAmountInvalid = errors.New("loan amount must be positive")
	ErrApplicationStatusInvalid = errors.New("unknown application status")
)

// ApplicationStatus tracks a bond application through origination.
type ApplicationStatus string

const (
	StatusSubmitted     ApplicationStatus = "submitted"
	StatusDocsPending   ApplicationStatus = "docs_pending"
	StatusSentToLenders ApplicationStatus = "sent_to_lenders"
	StatusOfferReceived ApplicationStatus = "offer_received"
	StatusAccepted      ApplicationStatus = "accepted"
	StatusRegistered    ApplicationStatus = "registered"
	StatusDeclined      ApplicationStatus = "declined"
	StatusCancelled     ApplicationStatus = "cancelled"
)

// statusTransitions is the forward flow of an application. Declined and
// cancelled are terminal; cancellation is allowed from any live status.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted:     {StatusDocsPending, StatusSentToLenders, StatusCancelled},
	StatusDocsPending:   {StatusSentToLenders, StatusCancelled},
	StatusSentToLenders: {StatusOfferReceived, StatusDeclined, StatusCancelled},
	StatusOfferReceived: {StatusAccepted, StatusDeclined, StatusCancelled},
	StatusAccepted:      {StatusRegistered, StatusCancelled},
	StatusRegistered:    {},
	StatusDeclined:      {},
	StatusCancelled:     {},
}

// IsValid reports whether the status is one of the known states.
func (s ApplicationStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application is a bond application tracked on the agent dashboard.
type Application struct {
	ID              int32             `json:"id"`
	CustomerID      uuid.UUID         `json:"customerId"`
	AgentID         uuid.UUID         `json:"agentId"`
	PropertyAddress string            `json:"propertyAddress"`
	PurchasePrice   decimal.Decimal   `json:"purchasePrice"`
	LoanAmount      decimal.Decimal   `json:"loanAmount"`
	Status          ApplicationStatus `json:"status"`
	Lender          *string           `json:"lender,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (a *Application) Validate() error {
	if strings.TrimSpace(a.PropertyAddress) == "" {
		return ErrApplicationAddressEmpty
	}
	if a.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return ErrApplicationAmountInvalid
	}
	if !a.Status.IsValid() {
		return ErrApplicationStatusInvalid
	}
	return nil
}

type ApplicationRepository interface {
	Create(app *Application) (*Application, error)
	GetByID(agentID uuid.UUID, id int32) (*Application, error)
	GetAllByAgent(agentID uuid.UUID) ([]*Application, error)
	GetAllByCustomer(customerID uuid.UUID) ([]*Application, error)
	Update(app *Application) (*Application, error)
}
