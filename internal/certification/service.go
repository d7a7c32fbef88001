// Package certification handles the upcycling evidence review flow: a lot's
// transformation is documented, reviewed, and — when approved — the lot
// becomes eligible for retirement.
package certification

import (
	"time"

	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/eventing"
	"aura/marketplace/marketplace-backend/internal/store"
	"aura/marketplace/marketplace-backend/pkg/lifecycle"
	"aura/marketplace/marketplace-backend/pkg/validate"
)

type RequestCertificationRequest struct {
	LotID       string `json:"lotId" validate:"required"`
	SubmittedBy string `json:"submittedBy" validate:"required"`
	EvidenceURI string `json:"evidenceUri" validate:"required,uri"`
}

type ReviewRequest struct {
	Approve        *bool  `json:"approve" validate:"required"`
	Reviewer       string `json:"reviewer" validate:"required"`
	Notes          string `json:"notes"`
	CertificateURI string `json:"certificateUri" validate:"omitempty,uri"`
}

type Service struct {
	store    *store.Memory
	workflow *eventing.WorkflowEngine
	machine  *lifecycle.StateMachine
}

func NewService(st *store.Memory, workflow *eventing.WorkflowEngine) *Service {
	return &Service{
		store:    st,
		workflow: workflow,
		machine:  lifecycle.NewStateMachine(),
	}
}

// RequestCertification records a pending review for an existing lot,
// schedules the certification workflow task (which emits
// certification.requested), and moves the lot into upcycling when its
// current status allows it.
func (s *Service) RequestCertification(req RequestCertificationRequest) (domain.CertificationRequest, error) {
	if err := validate.Struct(req); err != nil {
		return domain.CertificationRequest{}, err
	}
	if _, ok := s.store.GetLot(req.LotID); !ok {
		return domain.CertificationRequest{}, domain.NewNotFound("lot", req.LotID)
	}
	cert := s.store.CreateCertification(domain.CertificationRequest{
		LotID:       req.LotID,
		SubmittedBy: req.SubmittedBy,
		EvidenceURI: req.EvidenceURI,
		Status:      domain.CertificationStatusPending,
	})
	s.workflow.ScheduleCertification(cert.ID)
	s.transitionLot(req.LotID, domain.LotStatusUpcyclingPending)
	return cert, nil
}

// ReviewCertification approves or rejects a pending request. Requests that
// were already reviewed are returned unchanged. Approval moves the lot to
// upcycling_validated when its current status allows it.
func (s *Service) ReviewCertification(id string, req ReviewRequest) (domain.CertificationRequest, error) {
	if err := validate.Struct(req); err != nil {
		return domain.CertificationRequest{}, err
	}
	cert, ok := s.store.GetCertification(id)
	if !ok {
		return domain.CertificationRequest{}, domain.NewNotFound("certification", id)
	}
	if cert.Status != domain.CertificationStatusPending {
		return cert, nil
	}
	now := time.Now().UTC()
	status := domain.CertificationStatusRejected
	if *req.Approve {
		status = domain.CertificationStatusApproved
	}
	updated, _ := s.store.UpdateCertification(id, func(c *domain.CertificationRequest) {
		c.Status = status
		c.Reviewer = req.Reviewer
		c.ReviewedAt = &now
		c.Notes = req.Notes
		c.CertificateURI = req.CertificateURI
	})
	if status == domain.CertificationStatusApproved {
		s.transitionLot(cert.LotID, domain.LotStatusUpcyclingValidated)
	}
	return updated, nil
}

// ListCertifications returns every certification request in insertion order.
func (s *Service) ListCertifications() []domain.CertificationRequest {
	return s.store.Certifications()
}

func (s *Service) transitionLot(lotID string, to domain.LotStatus) {
	lot, ok := s.store.GetLot(lotID)
	if !ok || lot.Status == to {
		return
	}
	if !s.machine.CanTransition(lot.Status, to) {
		return
	}
	s.store.UpdateLot(lotID, func(l *domain.WasteLot) {
		l.Status = to
	})
}
