package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// CalculationService persists calculator results for signed-in customers.
// The calculators themselves are pure functions in the calc package; this
// service only handles the saved-result lifecycle.
type CalculationService struct {
	calcRepo domain.SavedCalculationRepository
}

// NewCalculationService creates a new CalculationService
func NewCalculationService(calcRepo domain.SavedCalculationRepository) *CalculationService {
	return &CalculationService{calcRepo: calcRepo}
}

// Save stores a calculator result under the user's profile
func (s *CalculationService) Save(userID uuid.UUID, result calc.Result) (*domain.SavedCalculation, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	saved := &domain.SavedCalculation{
		UserID:  userID,
		Kind:    string(result.ResultKind()),
		Payload: payload,
	}
	if err := saved.Validate(); err != nil {
		return nil, err
	}

	created, err := s.calcRepo.Create(saved)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("kind", saved.Kind).Msg("Failed to save calculation")
		return nil, err
	}
	return created, nil
}

// Get retrieves a saved calculation scoped to its owner
func (s *CalculationService) Get(userID uuid.UUID, id int32) (*domain.SavedCalculation, error) {
	return s.calcRepo.GetByID(userID, id)
}

// List returns the user's saved calculations
func (s *CalculationService) List(userID uuid.UUID) ([]*domain.SavedCalculation, error) {
	return s.calcRepo.GetAllByUser(userID)
}

// Delete removes a saved calculation scoped to its owner
func (s *CalculationService) Delete(userID uuid.UUID, id int32) error {
	return s.calcRepo.Delete(userID, id)
}
