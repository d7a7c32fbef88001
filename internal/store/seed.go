package store

import (
	"time"

	"github.com/google/uuid"

	"aura/marketplace/marketplace-backend/internal/domain"
)

// seedDefaults pre-populates the store so the marketplace is demonstrable
// without prior input: one agent per persona, a sample lot awaiting
// verification, and an open offer between the producer and the recycler.
func (m *Memory) seedDefaults() {
	now := time.Now().UTC()
	producer := domain.Agent{
		ID:           uuid.NewString(),
		Owner:        "GreenCircuit Labs",
		Type:         domain.AgentTypeProducer,
		ContactEmail: "ops@greencircuit.example",
		Strategy: domain.AgentStrategy{
			TargetMargin:     f64(0.15),
			ResponseSLAHours: f64(6),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	recycler := domain.Agent{
		ID:           uuid.NewString(),
		Owner:        "HyperPoly Upcycling",
		Type:         domain.AgentTypeRecycler,
		ContactEmail: "trade@hyperpoly.example",
		Strategy: domain.AgentStrategy{
			BuyCeiling:       f64(280),
			ResponseSLAHours: f64(4),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	compliance := domain.Agent{
		ID:           uuid.NewString(),
		Owner:        "Aura Compliance",
		Type:         domain.AgentTypeCompliance,
		ContactEmail: "audit@aura.example",
		Strategy: domain.AgentStrategy{
			Metadata: map[string]any{"approvalsPerDay": 20},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.agents = append(m.agents, producer, recycler, compliance)

	lot := m.CreateLot(domain.WasteLot{
		ProducerID:          producer.ID,
		MaterialType:        "Lithium-ion Batteries",
		QuantityTons:        12,
		Location:            "Austin, TX",
		PriceFloorUsdPerTon: 320,
		Status:              domain.LotStatusPendingVerification,
	})
	m.UpdateLot(lot.ID, func(l *domain.WasteLot) {
		l.Verification = &domain.Verification{
			Method:   "document_upload",
			Verifier: "Aura Compliance",
		}
	})
	m.CreateOffer(domain.MarketplaceOffer{
		LotID:           lot.ID,
		ProducerAgentID: producer.ID,
		RecyclerAgentID: recycler.ID,
		Status:          domain.OfferStatusOpen,
		ProducerOffer:   f64(410),
		RecyclerOffer:   f64(360),
	})
}

func f64(v float64) *float64 { return &v }
