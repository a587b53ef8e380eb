package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"diacfix/internal/domain"
	"diacfix/internal/port"
	"diacfix/internal/textrepair"
)

// ProcessConfig holds pipeline assembly settings.
type ProcessConfig struct {
	Deliverable  domain.DeliverableMode
	PreviewChars int
}

// ProcessService runs a submitted document through extraction and repair
// and persists the deliverable in the result store.
type ProcessService interface {
	// Process never fails: on any internal error it returns a degraded
	// result carrying an explanatory payload, so the caller always has a
	// stable identifier to continue the user flow with.
	Process(ctx context.Context, doc domain.SubmittedDocument) *domain.ProcessingResult
	// Download atomically fetches and deletes a stored result.
	Download(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error)
}

type processService struct {
	extractor port.TextExtractor
	store     port.ResultStore
	cfg       ProcessConfig
	validate  func([]byte) error
}

// NewProcessService creates a ProcessService implementation.
func NewProcessService(extractor port.TextExtractor, store port.ResultStore, cfg ProcessConfig) ProcessService {
	if cfg.Deliverable == "" {
		cfg.Deliverable = domain.DeliverableReport
	}
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = 500
	}
	return &processService{
		extractor: extractor,
		store:     store,
		cfg:       cfg,
		validate:  validatePDF,
	}
}

func (s *processService) Process(ctx context.Context, doc domain.SubmittedDocument) *domain.ProcessingResult {
	result := &domain.ProcessingResult{
		ID:        uuid.New(),
		FileName:  doc.FileName,
		Email:     doc.Email,
		Status:    domain.ResultStatusRepaired,
		CreatedAt: time.Now().UTC(),
	}

	log.Printf("processService.Process: processing %s (%d bytes) as result %s",
		doc.FileName, len(doc.Content), result.ID)

	if err := s.validate(doc.Content); err != nil {
		log.Printf("processService.Process: %s is not a readable PDF: %v", doc.FileName, err)
		s.degrade(ctx, result, "invalid_document", doc)
		return result
	}

	text, err := s.extractor.Extract(ctx, doc.Content, doc.FileName)
	if err != nil {
		log.Printf("processService.Process: extraction failed for result %s: %v", result.ID, err)
		s.degrade(ctx, result, "extraction_failed", doc)
		return result
	}

	repaired := textrepair.Repair(text)
	result.Payload = s.assemble(doc, text, repaired)

	if err := s.store.Put(ctx, result); err != nil {
		log.Printf("processService.Process: storing result %s failed: %v", result.ID, err)
		// Retry with the explanatory payload under the same identifier.
		s.degrade(ctx, result, "store_write_failed", doc)
	}

	return result
}

func (s *processService) Download(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	return s.store.Take(ctx, id)
}

// degrade fills the result with an explanatory payload and stores it, so
// the identifier stays downloadable for support correlation.
func (s *processService) degrade(ctx context.Context, result *domain.ProcessingResult, cause string, doc domain.SubmittedDocument) {
	result.Status = domain.ResultStatusDegraded
	result.Error = cause
	result.Payload = []byte(fmt.Sprintf(
		"Nu am putut procesa documentul.\n"+
			"Fișier original: %s\n"+
			"ID suport: %s\n\n"+
			"Te rugăm să încerci din nou cu un alt fișier sau cu o versiune mai mică.\n"+
			"Dacă problema persistă, contactează-ne la contact@diacriticefix.ro și menționează ID-ul de mai sus.\n",
		doc.FileName, result.ID))

	if err := s.store.Put(ctx, result); err != nil {
		log.Printf("processService.degrade: storing degraded result %s failed: %v", result.ID, err)
	}
}

// assemble builds the deliverable payload. The report shape reproduces the
// original filename, the submitter email, and bounded previews of the text
// before and after repair; fulltext delivers the entire repaired text.
func (s *processService) assemble(doc domain.SubmittedDocument, original, repaired string) []byte {
	if s.cfg.Deliverable == domain.DeliverableFullText {
		return []byte(repaired)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "PDF cu diacritice reparate!\n")
	fmt.Fprintf(&b, "Fișier original: %s\n", doc.FileName)
	if doc.Email != "" {
		fmt.Fprintf(&b, "Email utilizator: %s\n", doc.Email)
	}
	fmt.Fprintf(&b, "\nText original (primele %d caractere):\n%s\n", s.cfg.PreviewChars, preview(original, s.cfg.PreviewChars))
	fmt.Fprintf(&b, "\nText cu diacritice reparate (primele %d caractere):\n%s\n", s.cfg.PreviewChars, preview(repaired, s.cfg.PreviewChars))
	return b.Bytes()
}

func preview(s string, chars int) string {
	runes := []rune(s)
	if len(runes) <= chars {
		return s
	}
	return string(runes[:chars])
}

// validatePDF checks the upload is structurally a PDF before any remote
// call is spent on it. Relaxed mode tolerates the slightly malformed files
// real-world scanners emit.
func validatePDF(content []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.Validate(bytes.NewReader(content), conf)
}
