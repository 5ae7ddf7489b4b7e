package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/testutil"
)

func newReportFixture() (*ReportService, *testutil.MockRenderer, *testutil.MockFileRepository, *testutil.MockMailSender, *testutil.MockUserRepository) {
	renderer := testutil.NewMockRenderer()
	fileRepo := testutil.NewMockFileRepository()
	sender := testutil.NewMockMailSender()
	userRepo := testutil.NewMockUserRepository()
	service := NewReportService(renderer, fileRepo, sender, userRepo)
	return service, renderer, fileRepo, sender, userRepo
}

func TestGenerateReport_RendersAndArchives(t *testing.T) {
	service, renderer, fileRepo, _, _ := newReportFixture()
	userID := uuid.New()
	result := bondResultFixture(t)

	inputs := []calc.DisplayResult{
		{Label: "Loan amount", Value: "R900,000.00"},
		{Label: "Interest rate", Value: "11.25%"},
	}

	generated, err := service.Generate(context.Background(), userID, *result, inputs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !bytes.HasPrefix(generated.PDF, []byte("%PDF")) {
		t.Error("Expected PDF bytes")
	}
	if generated.FileName != "wisebond-bond-report.pdf" {
		t.Errorf("Unexpected file name %s", generated.FileName)
	}
	if _, ok := fileRepo.Objects[generated.StoragePath]; !ok {
		t.Error("Expected the PDF to be archived")
	}
	if generated.DownloadURL == "" {
		t.Error("Expected a presigned download URL")
	}

	if len(renderer.Rendered) != 1 {
		t.Fatalf("Expected 1 render, got %d", len(renderer.Rendered))
	}
	html := renderer.Rendered[0]
	if !strings.Contains(html, "Bond Repayment Report") {
		t.Error("Expected the report title in the rendered HTML")
	}
	if !strings.Contains(html, "R900,000.00") {
		t.Error("Expected the inputs in the rendered HTML")
	}
}

func TestGenerateAndEmail_RequiresVerifiedEmail(t *testing.T) {
	service, _, _, sender, userRepo := newReportFixture()

	user := &domain.User{
		ID:      uuid.New(),
		Auth0ID: "auth0|report",
		Email:   "report@example.com",
		Role:    domain.RoleCustomer,
	}
	userRepo.AddUser(user)
	result := bondResultFixture(t)

	_, err := service.GenerateAndEmail(context.Background(), user.ID, *result, nil)
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("Expected ErrEmailNotVerified, got %v", err)
	}
	if len(sender.Sent()) != 0 {
		t.Error("Expected no email for an unverified address")
	}
}

func TestGenerateAndEmail_AttachesPDF(t *testing.T) {
	service, _, _, sender, userRepo := newReportFixture()

	user := &domain.User{
		ID:            uuid.New(),
		Auth0ID:       "auth0|verified",
		Email:         "verified@example.com",
		Role:          domain.RoleCustomer,
		EmailVerified: true,
	}
	userRepo.AddUser(user)
	result := bondResultFixture(t)

	generated, err := service.GenerateAndEmail(context.Background(), user.ID, *result, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("Expected 1 email, got %d", len(sent))
	}
	if len(sent[0].Attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(sent[0].Attachments))
	}
	if sent[0].Attachments[0].Filename != generated.FileName {
		t.Errorf("Expected attachment %s, got %s", generated.FileName, sent[0].Attachments[0].Filename)
	}
	if !bytes.Equal(sent[0].Attachments[0].Data, generated.PDF) {
		t.Error("Expected the attachment to carry the rendered PDF")
	}
}

func TestGenerateReport_RendererFailure(t *testing.T) {
	service, renderer, fileRepo, _, _ := newReportFixture()
	renderer.RenderFn = func(ctx context.Context, html string) ([]byte, error) {
		return nil, errors.New("chromium exited 1")
	}
	result := bondResultFixture(t)

	_, err := service.Generate(context.Background(), uuid.New(), *result, nil)
	if err == nil {
		t.Fatal("Expected an error when rendering fails")
	}
	if len(fileRepo.Objects) != 0 {
		t.Error("Expected nothing archived when rendering fails")
	}
}
