package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/mail"
	"github.com/elandref93/WiseBond-sub004/internal/report"
	"github.com/elandref93/WiseBond-sub004/internal/repository/storage"
)

// reportTitles maps result kinds to PDF titles
var reportTitles = map[calc.Kind]string{
	calc.KindBond:          "Bond Repayment Report",
	calc.KindAffordability: "Affordability Report",
	calc.KindDeposit:       "Deposit Savings Report",
	calc.KindAdditional:    "Additional Payment Report",
	calc.KindTransfer:      "Transfer Cost Report",
	calc.KindAmortisation:  "Amortisation Schedule",
}

// ReportService assembles calculator results into branded PDF reports,
// archives them to object storage and optionally emails them.
type ReportService struct {
	renderer report.Renderer
	fileRepo storage.FileRepository
	sender   mail.Sender
	userRepo domain.UserRepository
}

// NewReportService creates a new ReportService
func NewReportService(renderer report.Renderer, fileRepo storage.FileRepository, sender mail.Sender, userRepo domain.UserRepository) *ReportService {
	return &ReportService{
		renderer: renderer,
		fileRepo: fileRepo,
		sender:   sender,
		userRepo: userRepo,
	}
}

// GeneratedReport is a rendered PDF plus its archive location
type GeneratedReport struct {
	FileName    string
	PDF         []byte
	StoragePath string
	DownloadURL string
}

// Generate renders a PDF for the result and archives it under the user
func (s *ReportService) Generate(ctx context.Context, userID uuid.UUID, result calc.Result, inputs []calc.DisplayResult) (*GeneratedReport, error) {
	kind := result.ResultKind()
	title, ok := reportTitles[kind]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	html, err := report.Build(title, result, inputs, time.Now())
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("kind", string(kind)).Msg("Failed to render report")
		return nil, err
	}

	objectPath := storage.GenerateReportPath(userID, string(kind))
	if _, err := s.fileRepo.Upload(ctx, objectPath, bytes.NewReader(pdf), "application/pdf", int64(len(pdf))); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to archive report")
		return nil, err
	}

	url, err := s.fileRepo.GeneratePresignedURL(ctx, objectPath, PresignedURLExpiry)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to presign report URL")
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("kind", string(kind)).
		Int("size_bytes", len(pdf)).
		Msg("Report generated")

	return &GeneratedReport{
		FileName:    fmt.Sprintf("wisebond-%s-report.pdf", kind),
		PDF:         pdf,
		StoragePath: objectPath,
		DownloadURL: url,
	}, nil
}

// GenerateAndEmail renders the report and sends it to the user's verified
// email address as an attachment.
func (s *ReportService) GenerateAndEmail(ctx context.Context, userID uuid.UUID, result calc.Result, inputs []calc.DisplayResult) (*GeneratedReport, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	generated, err := s.Generate(ctx, userID, result, inputs)
	if err != nil {
		return nil, err
	}

	title := reportTitles[result.ResultKind()]
	msg := mail.Message{
		To:      []string{user.Email},
		Subject: "Your WiseBond " + title,
		Text: fmt.Sprintf("Hi %s,\n\nYour %s is attached.\n\nThe WiseBond team",
			user.FullName(), title),
		Attachments: []mail.Attachment{
			{Filename: generated.FileName, Data: generated.PDF},
		},
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return nil, err
	}

	return generated, nil
}
