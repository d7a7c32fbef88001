// Package agents manages marketplace participant records and their
// negotiation strategies.
package agents

import (
	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/store"
	"aura/marketplace/marketplace-backend/pkg/validate"
)

type UpsertAgentRequest struct {
	ID           string                `json:"id"`
	Owner        string                `json:"owner" validate:"required"`
	Type         string                `json:"type" validate:"required,oneof=producer recycler compliance logistics"`
	ContactEmail string                `json:"contactEmail" validate:"omitempty,email"`
	Strategy     *domain.AgentStrategy `json:"strategy"`
}

type ListAgentsFilter struct {
	Type string `json:"type" validate:"omitempty,oneof=producer recycler compliance logistics"`
}

type Service struct {
	store *store.Memory
}

func NewService(st *store.Memory) *Service {
	return &Service{store: st}
}

// UpsertAgent updates the agent when the id resolves and creates one
// otherwise. On update, provided fields shallow-overwrite existing ones.
func (s *Service) UpsertAgent(req UpsertAgentRequest) (domain.Agent, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Agent{}, err
	}
	agent := domain.Agent{
		ID:           req.ID,
		Owner:        req.Owner,
		Type:         domain.AgentType(req.Type),
		ContactEmail: req.ContactEmail,
	}
	if req.Strategy != nil {
		agent.Strategy = *req.Strategy
	}
	return s.store.UpsertAgent(agent), nil
}

// ListAgents returns agents in insertion order, optionally filtered by type.
func (s *Service) ListAgents(filter ListAgentsFilter) ([]domain.Agent, error) {
	if err := validate.Struct(filter); err != nil {
		return nil, err
	}
	all := s.store.Agents()
	if filter.Type == "" {
		return all, nil
	}
	matches := []domain.Agent{}
	for _, agent := range all {
		if agent.Type == domain.AgentType(filter.Type) {
			matches = append(matches, agent)
		}
	}
	return matches, nil
}

// GetAgent returns the agent with the given id.
func (s *Service) GetAgent(id string) (domain.Agent, error) {
	agent, ok := s.store.GetAgent(id)
	if !ok {
		return domain.Agent{}, domain.NewNotFound("agent", id)
	}
	return agent, nil
}

// UpdateStrategy shallow-merges the partial strategy into the agent's
// existing one; unset fields keep their current values.
func (s *Service) UpdateStrategy(id string, partial domain.AgentStrategy) (domain.Agent, error) {
	agent, ok := s.store.UpdateAgentStrategy(id, partial)
	if !ok {
		return domain.Agent{}, domain.NewNotFound("agent", id)
	}
	return agent, nil
}
