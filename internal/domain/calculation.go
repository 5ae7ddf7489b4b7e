package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCalculationKindInvalid  = errors.New("unknown calculation kind")
	ErrCalculationPayloadEmpty = errors.New("calculation payload is required")
)

// SavedCalculation is a calculator result a customer chose to keep. The
// payload is the result variant serialized as JSON; Kind discriminates
// which variant it is.
type SavedCalculation struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// knownKinds mirrors the calculator result union.
var knownKinds = map[string]struct{}{
	"bond":          {},
	"affordability": {},
	"deposit":       {},
	"additional":    {},
	"transfer":      {},
	"amortisation":  {},
}

func (c *SavedCalculation) Validate() error {
	if _, ok := knownKinds[c.Kind]; !ok {
		return ErrCalculationKindInvalid
	}
	if len(c.Payload) == 0 {
		return ErrCalculationPayloadEmpty
	}
	return nil
}

type SavedCalculationRepository interface {
	Create(calc *SavedCalculation) (*SavedCalculation, error)
	GetByID(userID uuid.UUID, id int32) (*SavedCalculation, error)
	GetAllByUser(userID uuid.UUID) ([]*SavedCalculation, error)
	Delete(userID uuid.UUID, id int32) error
}
