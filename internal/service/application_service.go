package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/websocket"
)

// ApplicationService manages the bond application pipeline and pushes
// live events to the managing agent's dashboard.
type ApplicationService struct {
	appRepo   domain.ApplicationRepository
	publisher websocket.EventPublisher
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appRepo domain.ApplicationRepository, publisher websocket.EventPublisher) *ApplicationService {
	return &ApplicationService{
		appRepo:   appRepo,
		publisher: publisher,
	}
}

// Create registers a new application in the submitted state
func (s *ApplicationService) Create(app *domain.Application) (*domain.Application, error) {
	app.Status = domain.StatusSubmitted
	if err := app.Validate(); err != nil {
		return nil, err
	}

	created, err := s.appRepo.Create(app)
	if err != nil {
		log.Error().Err(err).Str("agent_id", app.AgentID.String()).Msg("Failed to create application")
		return nil, err
	}

	s.publisher.Publish(created.AgentID, websocket.ApplicationCreated(created))
	log.Info().Int32("application_id", created.ID).Str("agent_id", created.AgentID.String()).Msg("Application created")
	return created, nil
}

// Get retrieves an application scoped to the managing agent
func (s *ApplicationService) Get(agentID uuid.UUID, id int32) (*domain.Application, error) {
	return s.appRepo.GetByID(agentID, id)
}

// ListByAgent returns an agent's pipeline
func (s *ApplicationService) ListByAgent(agentID uuid.UUID) ([]*domain.Application, error) {
	return s.appRepo.GetAllByAgent(agentID)
}

// ListByCustomer returns a customer's applications
func (s *ApplicationService) ListByCustomer(customerID uuid.UUID) ([]*domain.Application, error) {
	return s.appRepo.GetAllByCustomer(customerID)
}

// ApplicationUpdate carries the mutable application fields. Nil leaves a
// field unchanged; Status empty means no transition.
type ApplicationUpdate struct {
	Status domain.ApplicationStatus
	Lender *string
	Notes  *string
}

// Update applies a status transition and/or field changes. Transitions
// outside the allowed flow are rejected.
func (s *ApplicationService) Update(agentID uuid.UUID, id int32, update ApplicationUpdate) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(agentID, id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if update.Status != "" && update.Status != app.Status {
		if !update.Status.IsValid() {
			return nil, domain.ErrApplicationStatusInvalid
		}
		if !app.Status.CanTransitionTo(update.Status) {
			return nil, domain.ErrInvalidStatusTransition
		}
		app.Status = update.Status
		statusChanged = true
	}
	if update.Lender != nil {
		app.Lender = update.Lender
	}
	if update.Notes != nil {
		app.Notes = update.Notes
	}

	updated, err := s.appRepo.Update(app)
	if err != nil {
		log.Error().Err(err).Int32("application_id", id).Msg("Failed to update application")
		return nil, err
	}

	if statusChanged {
		s.publisher.Publish(updated.AgentID, websocket.ApplicationStatusChanged(updated))
		log.Info().
			Int32("application_id", updated.ID).
			Str("status", string(updated.Status)).
			Msg("Application status changed")
	}

	return updated, nil
}
