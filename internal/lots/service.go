// Package lots implements the waste-lot onboarding lifecycle: registration,
// verification, tokenization and retirement.
package lots

import (
	"fmt"
	"time"

	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/eventing"
	"aura/marketplace/marketplace-backend/internal/store"
	"aura/marketplace/marketplace-backend/pkg/lifecycle"
	"aura/marketplace/marketplace-backend/pkg/validate"
)

// DefaultVerifier reviews lots when the caller names no verifier.
const DefaultVerifier = "Aura Compliance"

// Requests

type RegisterLotRequest struct {
	ProducerID          string  `json:"producerId" validate:"required"`
	MaterialType        string  `json:"materialType" validate:"required"`
	QuantityTons        float64 `json:"quantityTons" validate:"required,gt=0"`
	Location            string  `json:"location" validate:"required"`
	PriceFloorUsdPerTon float64 `json:"priceFloorUsdPerTon" validate:"required,gt=0"`
	Notes               string  `json:"notes"`
}

type VerificationRequest struct {
	Method   string `json:"method" validate:"required"`
	Verifier string `json:"verifier"`
	Notes    string `json:"notes"`
}

type TokenizationRequest struct {
	Symbol string `json:"symbol" validate:"required,min=2"`
	Supply int64  `json:"supply" validate:"required,gt=0"`
}

// Service orchestrates lot operations between callers and the store, the
// event bus and the workflow engine.
type Service struct {
	store    *store.Memory
	bus      *eventing.Bus
	workflow *eventing.WorkflowEngine
	machine  *lifecycle.StateMachine
}

// NewService wires a lot service onto the shared store, bus and workflow engine.
func NewService(st *store.Memory, bus *eventing.Bus, workflow *eventing.WorkflowEngine) *Service {
	return &Service{
		store:    st,
		bus:      bus,
		workflow: workflow,
		machine:  lifecycle.NewStateMachine(),
	}
}

// RegisterLot validates the payload, creates a pending-verification lot with a
// placeholder verification, and schedules the verification workflow task
// (which emits lot.registered).
func (s *Service) RegisterLot(req RegisterLotRequest) (domain.WasteLot, error) {
	if err := validate.Struct(req); err != nil {
		return domain.WasteLot{}, err
	}
	lot := s.store.CreateLot(domain.WasteLot{
		ProducerID:          req.ProducerID,
		MaterialType:        req.MaterialType,
		QuantityTons:        req.QuantityTons,
		Location:            req.Location,
		PriceFloorUsdPerTon: req.PriceFloorUsdPerTon,
		Status:              domain.LotStatusPendingVerification,
		Verification: &domain.Verification{
			Method:   "pending",
			Verifier: DefaultVerifier,
		},
	})
	s.workflow.ScheduleVerification(lot.ID)
	return lot, nil
}

// ListLots returns every lot in insertion order.
func (s *Service) ListLots() []domain.WasteLot {
	return s.store.Lots()
}

// GetLot returns the lot with the given id.
func (s *Service) GetLot(id string) (domain.WasteLot, error) {
	lot, ok := s.store.GetLot(id)
	if !ok {
		return domain.WasteLot{}, domain.NewNotFound("lot", id)
	}
	return lot, nil
}

// SubmitVerification transitions the lot to verified, replaces its
// verification record, and emits lot.verified.
func (s *Service) SubmitVerification(lotID string, req VerificationRequest) (domain.WasteLot, error) {
	if err := validate.Struct(req); err != nil {
		return domain.WasteLot{}, err
	}
	verifier := req.Verifier
	if verifier == "" {
		verifier = DefaultVerifier
	}
	now := time.Now().UTC()
	updated, ok := s.store.UpdateLot(lotID, func(lot *domain.WasteLot) {
		lot.Status = domain.LotStatusVerified
		lot.Verification = &domain.Verification{
			Method:     req.Method,
			Verifier:   verifier,
			Notes:      req.Notes,
			VerifiedAt: &now,
		}
	})
	if !ok {
		return domain.WasteLot{}, domain.NewNotFound("lot", lotID)
	}
	s.bus.Emit(eventing.Event{
		Kind:    eventing.EventLotVerified,
		Payload: map[string]string{"lotId": lotID},
	})
	return updated, nil
}

// TokenizeLot transitions the lot to tokenized and attaches the token.
//
// Matching the original behavior this does not require the lot to be verified
// first, and re-tokenizing silently overwrites the prior token (the second
// call wins). Whether that is intentional idempotence or a missing guard is
// an open question; do not add a guard here without resolving it.
func (s *Service) TokenizeLot(lotID string, req TokenizationRequest) (domain.WasteLot, error) {
	if err := validate.Struct(req); err != nil {
		return domain.WasteLot{}, err
	}
	updated, ok := s.store.UpdateLot(lotID, func(lot *domain.WasteLot) {
		lot.Status = domain.LotStatusTokenized
		lot.Token = &domain.TokenizedAsset{
			TokenID:  fmt.Sprintf("%s-%s", req.Symbol, lot.ID),
			Symbol:   req.Symbol,
			Supply:   req.Supply,
			IssuedAt: time.Now().UTC(),
		}
	})
	if !ok {
		return domain.WasteLot{}, domain.NewNotFound("lot", lotID)
	}
	return updated, nil
}

// RetireLot moves an upcycling-validated lot to retired and stamps the
// token's RetiredAt when a token exists.
func (s *Service) RetireLot(lotID string) (domain.WasteLot, error) {
	lot, ok := s.store.GetLot(lotID)
	if !ok {
		return domain.WasteLot{}, domain.NewNotFound("lot", lotID)
	}
	if !s.machine.CanTransition(lot.Status, domain.LotStatusRetired) {
		return domain.WasteLot{}, &domain.TransitionError{From: lot.Status, To: domain.LotStatusRetired}
	}
	now := time.Now().UTC()
	updated, _ := s.store.UpdateLot(lotID, func(l *domain.WasteLot) {
		l.Status = domain.LotStatusRetired
		if l.Token != nil {
			l.Token.RetiredAt = &now
		}
	})
	return updated, nil
}

// FindProducerAgents returns agents with type producer and the exact given
// id. The id already identifies at most one agent, so the type check is kept
// only to mirror the original filter.
func (s *Service) FindProducerAgents(producerID string) []domain.Agent {
	matches := []domain.Agent{}
	for _, agent := range s.store.Agents() {
		if agent.Type == domain.AgentTypeProducer && agent.ID == producerID {
			matches = append(matches, agent)
		}
	}
	return matches
}
