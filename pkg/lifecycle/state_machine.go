package lifecycle

import "aura/marketplace/marketplace-backend/internal/domain"

// StateMachine enforces waste-lot status transitions
type StateMachine struct {
	allowedTransitions map[domain.LotStatus][]domain.LotStatus
}

// NewStateMachine creates a state machine with the allowed lot transitions
func NewStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[domain.LotStatus][]domain.LotStatus{
			domain.LotStatusDraft:               {domain.LotStatusPendingVerification},
			domain.LotStatusPendingVerification: {domain.LotStatusVerified},
			domain.LotStatusVerified:            {domain.LotStatusTokenized, domain.LotStatusNegotiating},
			domain.LotStatusTokenized:           {domain.LotStatusNegotiating, domain.LotStatusUpcyclingPending},
			domain.LotStatusNegotiating:         {domain.LotStatusSettled},
			domain.LotStatusSettled:             {domain.LotStatusUpcyclingPending},
			domain.LotStatusUpcyclingPending:    {domain.LotStatusUpcyclingValidated},
			domain.LotStatusUpcyclingValidated:  {domain.LotStatusRetired},
			domain.LotStatusRetired:             {},
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to domain.LotStatus) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) AllowedTransitions(from domain.LotStatus) []domain.LotStatus {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []domain.LotStatus{}
	}
	return allowed
}
