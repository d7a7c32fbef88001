package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/store"
)

func newService() *Service {
	return NewService(store.NewFromState(store.State{}))
}

func TestUpsertAgentCreates(t *testing.T) {
	s := newService()
	ceiling := 280.0

	agent, err := s.UpsertAgent(UpsertAgentRequest{
		Owner:        "HyperPoly Upcycling",
		Type:         "recycler",
		ContactEmail: "trade@hyperpoly.example",
		Strategy:     &domain.AgentStrategy{BuyCeiling: &ceiling},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, agent.ID)
	assert.Equal(t, domain.AgentTypeRecycler, agent.Type)
	require.NotNil(t, agent.Strategy.BuyCeiling)
	assert.Equal(t, 280.0, *agent.Strategy.BuyCeiling)
}

func TestUpsertAgentUpdatesExisting(t *testing.T) {
	s := newService()
	created, err := s.UpsertAgent(UpsertAgentRequest{Owner: "GreenCircuit Labs", Type: "producer"})
	require.NoError(t, err)

	updated, err := s.UpsertAgent(UpsertAgentRequest{
		ID:    created.ID,
		Owner: "GreenCircuit Labs Inc",
		Type:  "producer",
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "GreenCircuit Labs Inc", updated.Owner)

	all, err := s.ListAgents(ListAgentsFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertAgentValidation(t *testing.T) {
	s := newService()

	_, err := s.UpsertAgent(UpsertAgentRequest{Owner: "Acme", Type: "broker"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")

	_, err = s.UpsertAgent(UpsertAgentRequest{Owner: "Acme", Type: "producer", ContactEmail: "not-an-email"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "contactEmail")
}

func TestListAgentsTypeFilter(t *testing.T) {
	s := newService()
	_, err := s.UpsertAgent(UpsertAgentRequest{Owner: "GreenCircuit Labs", Type: "producer"})
	require.NoError(t, err)
	_, err = s.UpsertAgent(UpsertAgentRequest{Owner: "HyperPoly Upcycling", Type: "recycler"})
	require.NoError(t, err)

	producers, err := s.ListAgents(ListAgentsFilter{Type: "producer"})
	require.NoError(t, err)
	require.Len(t, producers, 1)
	assert.Equal(t, "GreenCircuit Labs", producers[0].Owner)

	_, err = s.ListAgents(ListAgentsFilter{Type: "martian"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateStrategyMerges(t *testing.T) {
	s := newService()
	margin, sla := 0.15, 6.0
	agent, err := s.UpsertAgent(UpsertAgentRequest{
		Owner:    "GreenCircuit Labs",
		Type:     "producer",
		Strategy: &domain.AgentStrategy{TargetMargin: &margin, ResponseSLAHours: &sla},
	})
	require.NoError(t, err)

	ceiling := 280.0
	updated, err := s.UpdateStrategy(agent.ID, domain.AgentStrategy{BuyCeiling: &ceiling})

	require.NoError(t, err)
	require.NotNil(t, updated.Strategy.TargetMargin)
	assert.Equal(t, 0.15, *updated.Strategy.TargetMargin)
	require.NotNil(t, updated.Strategy.ResponseSLAHours)
	assert.Equal(t, 6.0, *updated.Strategy.ResponseSLAHours)
	require.NotNil(t, updated.Strategy.BuyCeiling)
	assert.Equal(t, 280.0, *updated.Strategy.BuyCeiling)
}

func TestUpdateStrategyNotFound(t *testing.T) {
	s := newService()
	_, err := s.UpdateStrategy("missing", domain.AgentStrategy{})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
