// Package store holds the single in-memory record store for the marketplace.
// State lives for the process lifetime only; there is no durable persistence
// and no delete operation. The store is owned by the composition root and
// injected into the services — it is never a package-level global.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"aura/marketplace/marketplace-backend/internal/domain"
)

// OfferTTL is computed once at offer creation and never revisited. Expiry is
// informational; no sweeper enforces it.
const OfferTTL = 120 * time.Minute

// State is a full snapshot of every collection, used to construct a store
// with explicit contents (tests) or to read everything at once (snapshots).
type State struct {
	Lots           []domain.WasteLot
	Agents         []domain.Agent
	Offers         []domain.MarketplaceOffer
	Shipments      []domain.Shipment
	Certifications []domain.CertificationRequest
}

// Memory is the sole owner of all domain state. A single RWMutex serializes
// access because gin serves each request on its own goroutine.
type Memory struct {
	mu             sync.RWMutex
	lots           []domain.WasteLot
	agents         []domain.Agent
	offers         []domain.MarketplaceOffer
	shipments      []domain.Shipment
	certifications []domain.CertificationRequest
}

// New constructs a store pre-populated with the demo seed: three agents, one
// pending-verification lot, and one open offer referencing them.
func New() *Memory {
	m := &Memory{}
	m.seedDefaults()
	return m
}

// NewFromState constructs a store with exactly the given contents, no seed.
func NewFromState(state State) *Memory {
	return &Memory{
		lots:           state.Lots,
		agents:         state.Agents,
		offers:         state.Offers,
		shipments:      state.Shipments,
		certifications: state.Certifications,
	}
}

// CreateLot stamps id and timestamps and appends the lot. Callers validate
// before calling; the store itself performs no validation.
func (m *Memory) CreateLot(lot domain.WasteLot) domain.WasteLot {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	lot.ID = uuid.NewString()
	lot.CreatedAt = now
	lot.UpdatedAt = now
	m.lots = append(m.lots, lot)
	return cloneLot(lot)
}

// UpdateLot applies fn to the stored lot and re-stamps UpdatedAt. The second
// return is false when the id does not resolve.
func (m *Memory) UpdateLot(id string, fn func(*domain.WasteLot)) (domain.WasteLot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lots {
		if m.lots[i].ID == id {
			fn(&m.lots[i])
			m.lots[i].UpdatedAt = time.Now().UTC()
			return cloneLot(m.lots[i]), true
		}
	}
	return domain.WasteLot{}, false
}

// GetLot returns the lot with the given id, if present.
func (m *Memory) GetLot(id string) (domain.WasteLot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.lots {
		if m.lots[i].ID == id {
			return cloneLot(m.lots[i]), true
		}
	}
	return domain.WasteLot{}, false
}

// Lots returns a copy of every lot in insertion order.
func (m *Memory) Lots() []domain.WasteLot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.WasteLot, len(m.lots))
	for i := range m.lots {
		out[i] = cloneLot(m.lots[i])
	}
	return out
}

// UpsertAgent updates the agent with the given id when it exists, shallow
// overwriting the provided fields, and creates a fresh agent otherwise.
func (m *Memory) UpsertAgent(agent domain.Agent) domain.Agent {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if agent.ID != "" {
		for i := range m.agents {
			if m.agents[i].ID == agent.ID {
				if agent.Owner != "" {
					m.agents[i].Owner = agent.Owner
				}
				if agent.Type != "" {
					m.agents[i].Type = agent.Type
				}
				if agent.ContactEmail != "" {
					m.agents[i].ContactEmail = agent.ContactEmail
				}
				if !agent.Strategy.IsZero() {
					m.agents[i].Strategy = agent.Strategy
				}
				m.agents[i].UpdatedAt = now
				return cloneAgent(m.agents[i])
			}
		}
	}
	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}
	agent.CreatedAt = now
	agent.UpdatedAt = now
	m.agents = append(m.agents, agent)
	return cloneAgent(agent)
}

// UpdateAgentStrategy shallow-merges the partial strategy into the agent's
// existing strategy and re-stamps UpdatedAt.
func (m *Memory) UpdateAgentStrategy(id string, partial domain.AgentStrategy) (domain.Agent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.agents {
		if m.agents[i].ID == id {
			m.agents[i].Strategy.Merge(partial)
			m.agents[i].UpdatedAt = time.Now().UTC()
			return cloneAgent(m.agents[i]), true
		}
	}
	return domain.Agent{}, false
}

// GetAgent returns the agent with the given id, if present.
func (m *Memory) GetAgent(id string) (domain.Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.agents {
		if m.agents[i].ID == id {
			return cloneAgent(m.agents[i]), true
		}
	}
	return domain.Agent{}, false
}

// Agents returns a copy of every agent in insertion order.
func (m *Memory) Agents() []domain.Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Agent, len(m.agents))
	for i := range m.agents {
		out[i] = cloneAgent(m.agents[i])
	}
	return out
}

// CreateOffer stamps id and timestamps and fixes ExpiresAt at now + OfferTTL.
func (m *Memory) CreateOffer(offer domain.MarketplaceOffer) domain.MarketplaceOffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	offer.ID = uuid.NewString()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	offer.ExpiresAt = now.Add(OfferTTL)
	m.offers = append(m.offers, offer)
	return cloneOffer(offer)
}

// UpdateOffer applies fn to the stored offer and re-stamps UpdatedAt.
func (m *Memory) UpdateOffer(id string, fn func(*domain.MarketplaceOffer)) (domain.MarketplaceOffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.offers {
		if m.offers[i].ID == id {
			fn(&m.offers[i])
			m.offers[i].UpdatedAt = time.Now().UTC()
			return cloneOffer(m.offers[i]), true
		}
	}
	return domain.MarketplaceOffer{}, false
}

// GetOffer returns the offer with the given id, if present.
func (m *Memory) GetOffer(id string) (domain.MarketplaceOffer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.offers {
		if m.offers[i].ID == id {
			return cloneOffer(m.offers[i]), true
		}
	}
	return domain.MarketplaceOffer{}, false
}

// Offers returns a copy of every offer in insertion order.
func (m *Memory) Offers() []domain.MarketplaceOffer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.MarketplaceOffer, len(m.offers))
	for i := range m.offers {
		out[i] = cloneOffer(m.offers[i])
	}
	return out
}

// CreateShipment stamps an id and appends. Shipments are create-only.
func (m *Memory) CreateShipment(shipment domain.Shipment) domain.Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()
	shipment.ID = uuid.NewString()
	m.shipments = append(m.shipments, shipment)
	return shipment
}

// Shipments returns a copy of every shipment in insertion order.
func (m *Memory) Shipments() []domain.Shipment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Shipment, len(m.shipments))
	copy(out, m.shipments)
	return out
}

// CreateCertification stamps id and SubmittedAt and appends.
func (m *Memory) CreateCertification(cert domain.CertificationRequest) domain.CertificationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	cert.ID = uuid.NewString()
	cert.SubmittedAt = time.Now().UTC()
	m.certifications = append(m.certifications, cert)
	return cloneCertification(cert)
}

// UpdateCertification applies fn to the stored certification request.
func (m *Memory) UpdateCertification(id string, fn func(*domain.CertificationRequest)) (domain.CertificationRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.certifications {
		if m.certifications[i].ID == id {
			fn(&m.certifications[i])
			return cloneCertification(m.certifications[i]), true
		}
	}
	return domain.CertificationRequest{}, false
}

// GetCertification returns the certification request with the given id.
func (m *Memory) GetCertification(id string) (domain.CertificationRequest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.certifications {
		if m.certifications[i].ID == id {
			return cloneCertification(m.certifications[i]), true
		}
	}
	return domain.CertificationRequest{}, false
}

// Certifications returns a copy of every certification request in insertion order.
func (m *Memory) Certifications() []domain.CertificationRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.CertificationRequest, len(m.certifications))
	for i := range m.certifications {
		out[i] = cloneCertification(m.certifications[i])
	}
	return out
}

// Snapshot returns a consistent copy of every collection.
func (m *Memory) Snapshot() State {
	return State{
		Lots:           m.Lots(),
		Agents:         m.Agents(),
		Offers:         m.Offers(),
		Shipments:      m.Shipments(),
		Certifications: m.Certifications(),
	}
}

// Clone helpers duplicate pointer-typed fields so that callers never share
// memory with the canonical records.

func cloneLot(lot domain.WasteLot) domain.WasteLot {
	if lot.Verification != nil {
		v := *lot.Verification
		lot.Verification = &v
	}
	if lot.Token != nil {
		t := *lot.Token
		lot.Token = &t
	}
	return lot
}

func cloneAgent(agent domain.Agent) domain.Agent {
	agent.Strategy = cloneStrategy(agent.Strategy)
	return agent
}

func cloneStrategy(s domain.AgentStrategy) domain.AgentStrategy {
	if s.BuyFloor != nil {
		v := *s.BuyFloor
		s.BuyFloor = &v
	}
	if s.BuyCeiling != nil {
		v := *s.BuyCeiling
		s.BuyCeiling = &v
	}
	if s.TargetMargin != nil {
		v := *s.TargetMargin
		s.TargetMargin = &v
	}
	if s.ResponseSLAHours != nil {
		v := *s.ResponseSLAHours
		s.ResponseSLAHours = &v
	}
	if s.BundlePreference != nil {
		v := *s.BundlePreference
		s.BundlePreference = &v
	}
	if s.Metadata != nil {
		meta := make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			meta[k] = v
		}
		s.Metadata = meta
	}
	return s
}

func cloneOffer(offer domain.MarketplaceOffer) domain.MarketplaceOffer {
	if offer.ProducerOffer != nil {
		v := *offer.ProducerOffer
		offer.ProducerOffer = &v
	}
	if offer.RecyclerOffer != nil {
		v := *offer.RecyclerOffer
		offer.RecyclerOffer = &v
	}
	if offer.AgreedPrice != nil {
		v := *offer.AgreedPrice
		offer.AgreedPrice = &v
	}
	return offer
}

func cloneCertification(cert domain.CertificationRequest) domain.CertificationRequest {
	if cert.ReviewedAt != nil {
		v := *cert.ReviewedAt
		cert.ReviewedAt = &v
	}
	return cert
}
