// Package testutil provides hand-rolled mocks for service and handler tests.
package testutil

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/mail"
	"github.com/elandref93/WiseBond-sub004/internal/websocket"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   email,
		Role:    domain.RoleCustomer,
	}
	m.AddUser(user)
	return user, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	m.AddUser(user)
	return user, nil
}

// MarkEmailVerified sets the verified flag
func (m *MockUserRepository) MarkEmailVerified(id uuid.UUID) error {
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.EmailVerified = true
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockSavedCalculationRepository is a mock implementation of domain.SavedCalculationRepository
type MockSavedCalculationRepository struct {
	Calculations map[int32]*domain.SavedCalculation
	NextID       int32
	CreateFn     func(calc *domain.SavedCalculation) (*domain.SavedCalculation, error)
}

// NewMockSavedCalculationRepository creates a new MockSavedCalculationRepository
func NewMockSavedCalculationRepository() *MockSavedCalculationRepository {
	return &MockSavedCalculationRepository{
		Calculations: make(map[int32]*domain.SavedCalculation),
		NextID:       1,
	}
}

// Create persists a calculation
func (m *MockSavedCalculationRepository) Create(calc *domain.SavedCalculation) (*domain.SavedCalculation, error) {
	if m.CreateFn != nil {
		return m.CreateFn(calc)
	}
	calc.ID = m.NextID
	m.NextID++
	calc.CreatedAt = time.Now()
	m.Calculations[calc.ID] = calc
	return calc, nil
}

// GetByID retrieves a calculation scoped to its owner
func (m *MockSavedCalculationRepository) GetByID(userID uuid.UUID, id int32) (*domain.SavedCalculation, error) {
	calc, ok := m.Calculations[id]
	if !ok || calc.UserID != userID {
		return nil, domain.ErrCalculationNotFound
	}
	return calc, nil
}

// GetAllByUser lists the user's calculations
func (m *MockSavedCalculationRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavedCalculation, error) {
	calcs := make([]*domain.SavedCalculation, 0)
	for _, calc := range m.Calculations {
		if calc.UserID == userID {
			calcs = append(calcs, calc)
		}
	}
	return calcs, nil
}

// Delete removes a calculation scoped to its owner
func (m *MockSavedCalculationRepository) Delete(userID uuid.UUID, id int32) error {
	calc, ok := m.Calculations[id]
	if !ok || calc.UserID != userID {
		return domain.ErrCalculationNotFound
	}
	delete(m.Calculations, id)
	return nil
}

// MockEnquiryRepository is a mock implementation of domain.EnquiryRepository
type MockEnquiryRepository struct {
	Enquiries []*domain.Enquiry
	NextID    int32
	CreateFn  func(enquiry *domain.Enquiry) (*domain.Enquiry, error)
}

// NewMockEnquiryRepository creates a new MockEnquiryRepository
func NewMockEnquiryRepository() *MockEnquiryRepository {
	return &MockEnquiryRepository{NextID: 1}
}

// Create persists an enquiry
func (m *MockEnquiryRepository) Create(enquiry *domain.Enquiry) (*domain.Enquiry, error) {
	if m.CreateFn != nil {
		return m.CreateFn(enquiry)
	}
	enquiry.ID = m.NextID
	m.NextID++
	enquiry.CreatedAt = time.Now()
	m.Enquiries = append(m.Enquiries, enquiry)
	return enquiry, nil
}

// GetAll lists the most recent enquiries
func (m *MockEnquiryRepository) GetAll(limit int) ([]*domain.Enquiry, error) {
	if limit > len(m.Enquiries) {
		limit = len(m.Enquiries)
	}
	out := make([]*domain.Enquiry, 0, limit)
	for i := len(m.Enquiries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Enquiries[i])
	}
	return out, nil
}

// MockApplicationRepository is a mock implementation of domain.ApplicationRepository
type MockApplicationRepository struct {
	Applications map[int32]*domain.Application
	NextID       int32
	UpdateFn     func(app *domain.Application) (*domain.Application, error)
}

// NewMockApplicationRepository creates a new MockApplicationRepository
func NewMockApplicationRepository() *MockApplicationRepository {
	return &MockApplicationRepository{
		Applications: make(map[int32]*domain.Application),
		NextID:       1,
	}
}

// Create persists an application
func (m *MockApplicationRepository) Create(app *domain.Application) (*domain.Application, error) {
	app.ID = m.NextID
	m.NextID++
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	m.Applications[app.ID] = app
	return app, nil
}

// GetByID retrieves an application scoped to the managing agent
func (m *MockApplicationRepository) GetByID(agentID uuid.UUID, id int32) (*domain.Application, error) {
	app, ok := m.Applications[id]
	if !ok || app.AgentID != agentID {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

// GetAllByAgent lists an agent's applications
func (m *MockApplicationRepository) GetAllByAgent(agentID uuid.UUID) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)
	for _, app := range m.Applications {
		if app.AgentID == agentID {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

// GetAllByCustomer lists a customer's applications
func (m *MockApplicationRepository) GetAllByCustomer(customerID uuid.UUID) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)
	for _, app := range m.Applications {
		if app.CustomerID == customerID {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

// Update persists application changes
func (m *MockApplicationRepository) Update(app *domain.Application) (*domain.Application, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(app)
	}
	existing, ok := m.Applications[app.ID]
	if !ok || existing.AgentID != app.AgentID {
		return nil, domain.ErrApplicationNotFound
	}
	app.UpdatedAt = time.Now()
	m.Applications[app.ID] = app
	return app, nil
}

// MockDocumentRepository is a mock implementation of domain.DocumentRepository
type MockDocumentRepository struct {
	Documents map[uuid.UUID]*domain.Document
	CreateFn  func(doc *domain.Document) (*domain.Document, error)
}

// NewMockDocumentRepository creates a new MockDocumentRepository
func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		Documents: make(map[uuid.UUID]*domain.Document),
	}
}

// Create persists document metadata
func (m *MockDocumentRepository) Create(doc *domain.Document) (*domain.Document, error) {
	if m.CreateFn != nil {
		return m.CreateFn(doc)
	}
	doc.UploadedAt = time.Now()
	m.Documents[doc.ID] = doc
	return doc, nil
}

// GetByID retrieves a document scoped to its owner
func (m *MockDocumentRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Document, error) {
	doc, ok := m.Documents[id]
	if !ok || doc.UserID != userID || doc.DeletedAt != nil {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// GetAllByUser lists the user's documents
func (m *MockDocumentRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Document, error) {
	docs := make([]*domain.Document, 0)
	for _, doc := range m.Documents {
		if doc.UserID == userID && doc.DeletedAt == nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// SoftDelete marks a document as deleted
func (m *MockDocumentRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	doc, ok := m.Documents[id]
	if !ok || doc.UserID != userID || doc.DeletedAt != nil {
		return domain.ErrDocumentNotFound
	}
	now := time.Now()
	doc.DeletedAt = &now
	return nil
}

// MockOTPStore is an in-memory implementation of domain.OTPStore
type MockOTPStore struct {
	Codes map[string]string
	SetFn func(email, code string, ttl time.Duration) error
}

// NewMockOTPStore creates a new MockOTPStore
func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{Codes: make(map[string]string)}
}

// Set stores a code
func (m *MockOTPStore) Set(email, code string, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(email, code, ttl)
	}
	m.Codes[email] = code
	return nil
}

// Get returns the outstanding code
func (m *MockOTPStore) Get(email string) (string, error) {
	code, ok := m.Codes[email]
	if !ok {
		return "", domain.ErrOTPNotFound
	}
	return code, nil
}

// Delete removes the code
func (m *MockOTPStore) Delete(email string) error {
	delete(m.Codes, email)
	return nil
}

// MockMailSender captures outbound messages instead of sending them
type MockMailSender struct {
	Messages []mail.Message
	SendFn   func(ctx context.Context, msg mail.Message) error
	mu       sync.Mutex
}

// NewMockMailSender creates a new MockMailSender
func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

// Send records the message
func (m *MockMailSender) Send(ctx context.Context, msg mail.Message) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
	return nil
}

// Sent returns a copy of the captured messages
func (m *MockMailSender) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}

// MockFileRepository is an in-memory implementation of storage.FileRepository
type MockFileRepository struct {
	Objects  map[string][]byte
	UploadFn func(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	mu       sync.Mutex
}

// NewMockFileRepository creates a new MockFileRepository
func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockFileRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, objectPath, data, contentType, size)
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf
	return objectPath, nil
}

// Delete removes the object
func (m *MockFileRepository) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL
func (m *MockFileRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + objectPath, nil
}

// MockRenderer is a report.Renderer that returns canned PDF bytes
type MockRenderer struct {
	RenderFn func(ctx context.Context, html string) ([]byte, error)
	Rendered []string
	mu       sync.Mutex
}

// NewMockRenderer creates a new MockRenderer
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

// RenderPDF records the HTML and returns placeholder bytes
func (m *MockRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if m.RenderFn != nil {
		return m.RenderFn(ctx, html)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rendered = append(m.Rendered, html)
	return []byte("%PDF-1.4 test"), nil
}

// MockEventPublisher captures published websocket events
type MockEventPublisher struct {
	Events []PublishedEvent
	mu     sync.Mutex
}

// PublishedEvent pairs an event with the agent it was addressed to
type PublishedEvent struct {
	AgentID uuid.UUID
	Event   websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(agentID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{AgentID: agentID, Event: event})
}

// Published returns a copy of the captured events
func (m *MockEventPublisher) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.Events))
	copy(out, m.Events)
	return out
}
