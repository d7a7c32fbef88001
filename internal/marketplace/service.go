// Package marketplace implements agent matchmaking, offer negotiation and the
// marketplace-wide snapshot.
package marketplace

import (
	"time"

	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/eventing"
	"aura/marketplace/marketplace-backend/internal/store"
	"aura/marketplace/marketplace-backend/pkg/lifecycle"
	"aura/marketplace/marketplace-backend/pkg/validate"
)

type DecisionRequest struct {
	Decision              string   `json:"decision" validate:"required,oneof=accept counter reject"`
	CounterOfferUsdPerTon *float64 `json:"counterOfferUsdPerTon" validate:"omitempty,gt=0"`
}

type ListOffersFilter struct {
	Status string `json:"status" validate:"omitempty,oneof=open counter accepted rejected"`
}

// Snapshot is the dashboard-facing view of the whole marketplace.
type Snapshot struct {
	GeneratedAt time.Time                 `json:"generatedAt"`
	Lots        []domain.WasteLot         `json:"lots"`
	Agents      []domain.Agent            `json:"agents"`
	Offers      []domain.MarketplaceOffer `json:"offers"`
	Summary     domain.ESGSummary         `json:"summary"`
}

// Service runs rule-based matchmaking between producers and recyclers and
// settles the resulting offers.
type Service struct {
	store   *store.Memory
	bus     *eventing.Bus
	machine *lifecycle.StateMachine
}

func NewService(st *store.Memory, bus *eventing.Bus) *Service {
	return &Service{
		store:   st,
		bus:     bus,
		machine: lifecycle.NewStateMachine(),
	}
}

// Matchmake pairs every verified or tokenized lot with each recycler agent
// whose buy ceiling accepts the lot's price floor, records an open offer per
// new pair, moves the lot into negotiation, and emits offer.created.
func (s *Service) Matchmake() []domain.MarketplaceOffer {
	created := []domain.MarketplaceOffer{}
	for _, lot := range s.store.Lots() {
		if lot.Status != domain.LotStatusVerified && lot.Status != domain.LotStatusTokenized {
			continue
		}
		producer, ok := s.producerAgentFor(lot.ProducerID)
		if !ok {
			continue
		}
		matched := false
		for _, recycler := range s.store.Agents() {
			if recycler.Type != domain.AgentTypeRecycler {
				continue
			}
			if !meetsPriceExpectations(lot, recycler) {
				continue
			}
			if s.hasActiveOffer(lot.ID, producer.ID, recycler.ID) {
				continue
			}
			offer := s.store.CreateOffer(domain.MarketplaceOffer{
				LotID:           lot.ID,
				ProducerAgentID: producer.ID,
				RecyclerAgentID: recycler.ID,
				Status:          domain.OfferStatusOpen,
				ProducerOffer:   f64(producerAsk(lot, producer)),
				RecyclerOffer:   f64(suggestRecyclerOffer(lot, recycler)),
			})
			created = append(created, offer)
			matched = true
			s.bus.Emit(eventing.Event{
				Kind:    eventing.EventOfferCreated,
				Payload: map[string]string{"offerId": offer.ID},
			})
		}
		if matched && s.machine.CanTransition(lot.Status, domain.LotStatusNegotiating) {
			s.store.UpdateLot(lot.ID, func(l *domain.WasteLot) {
				l.Status = domain.LotStatusNegotiating
			})
		}
	}
	return created
}

// ListOffers returns offers in insertion order, optionally filtered by status.
func (s *Service) ListOffers(filter ListOffersFilter) ([]domain.MarketplaceOffer, error) {
	if err := validate.Struct(filter); err != nil {
		return nil, err
	}
	all := s.store.Offers()
	if filter.Status == "" {
		return all, nil
	}
	matches := []domain.MarketplaceOffer{}
	for _, offer := range all {
		if offer.Status == domain.OfferStatus(filter.Status) {
			matches = append(matches, offer)
		}
	}
	return matches, nil
}

// GetOffer returns the offer with the given id.
func (s *Service) GetOffer(id string) (domain.MarketplaceOffer, error) {
	offer, ok := s.store.GetOffer(id)
	if !ok {
		return domain.MarketplaceOffer{}, domain.NewNotFound("offer", id)
	}
	return offer, nil
}

// DecideOffer applies an accept, counter or reject decision. Offers that
// already reached a terminal status are returned unchanged. ExpiresAt is
// fixed at creation and never recomputed here.
func (s *Service) DecideOffer(id string, req DecisionRequest) (domain.MarketplaceOffer, error) {
	if err := validate.Struct(req); err != nil {
		return domain.MarketplaceOffer{}, err
	}
	offer, ok := s.store.GetOffer(id)
	if !ok {
		return domain.MarketplaceOffer{}, domain.NewNotFound("offer", id)
	}
	if offer.Status == domain.OfferStatusAccepted || offer.Status == domain.OfferStatusRejected {
		return offer, nil
	}

	switch req.Decision {
	case "accept":
		agreed := firstPrice(req.CounterOfferUsdPerTon, offer.RecyclerOffer, offer.ProducerOffer)
		updated, _ := s.store.UpdateOffer(id, func(o *domain.MarketplaceOffer) {
			o.Status = domain.OfferStatusAccepted
			o.AgreedPrice = agreed
		})
		// Acceptance settles the lot regardless of where it currently sits
		// in the lifecycle; an accepted offer with an unsettled lot would
		// strand the deal.
		s.store.UpdateLot(offer.LotID, func(l *domain.WasteLot) {
			l.Status = domain.LotStatusSettled
		})
		return updated, nil
	case "counter":
		updated, _ := s.store.UpdateOffer(id, func(o *domain.MarketplaceOffer) {
			o.Status = domain.OfferStatusCounter
			if req.CounterOfferUsdPerTon != nil {
				o.RecyclerOffer = req.CounterOfferUsdPerTon
			}
		})
		s.transitionLot(offer.LotID, domain.LotStatusNegotiating)
		return updated, nil
	default: // reject
		updated, _ := s.store.UpdateOffer(id, func(o *domain.MarketplaceOffer) {
			o.Status = domain.OfferStatusRejected
		})
		return updated, nil
	}
}

// BuildSnapshot assembles the dashboard snapshot with the ESG summary.
func (s *Service) BuildSnapshot() Snapshot {
	state := s.store.Snapshot()
	return Snapshot{
		GeneratedAt: time.Now().UTC(),
		Lots:        state.Lots,
		Agents:      state.Agents,
		Offers:      state.Offers,
		Summary:     summarize(state),
	}
}

func summarize(state store.State) domain.ESGSummary {
	summary := domain.ESGSummary{}
	var priceTotal float64
	for _, lot := range state.Lots {
		if lot.Token != nil {
			summary.LotsTokenized++
		}
		if lot.Status == domain.LotStatusRetired {
			summary.LotsRetired++
		}
		summary.TotalTonnage += lot.QuantityTons
		priceTotal += lot.PriceFloorUsdPerTon
	}
	if len(state.Lots) > 0 {
		summary.AveragePricePerTon = priceTotal / float64(len(state.Lots))
	}
	for _, shipment := range state.Shipments {
		if shipment.Status == domain.ShipmentStatusScheduled {
			summary.PendingShipments++
		}
	}
	return summary
}

func (s *Service) producerAgentFor(producerID string) (domain.Agent, bool) {
	for _, agent := range s.store.Agents() {
		if agent.Type == domain.AgentTypeProducer && agent.ID == producerID {
			return agent, true
		}
	}
	return domain.Agent{}, false
}

func (s *Service) hasActiveOffer(lotID, producerAgentID, recyclerAgentID string) bool {
	for _, offer := range s.store.Offers() {
		if offer.LotID != lotID || offer.ProducerAgentID != producerAgentID || offer.RecyclerAgentID != recyclerAgentID {
			continue
		}
		if offer.Status == domain.OfferStatusOpen || offer.Status == domain.OfferStatusCounter {
			return true
		}
	}
	return false
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

func meetsPriceExpectations(lot domain.WasteLot, recycler domain.Agent) bool {
	if recycler.Strategy.BuyCeiling == nil {
		return true
	}
	return lot.PriceFloorUsdPerTon <= *recycler.Strategy.BuyCeiling
}

func producerAsk(lot domain.WasteLot, producer domain.Agent) float64 {
	if producer.Strategy.TargetMargin != nil {
		return lot.PriceFloorUsdPerTon * (1 + *producer.Strategy.TargetMargin)
	}
	return lot.PriceFloorUsdPerTon
}

func suggestRecyclerOffer(lot domain.WasteLot, recycler domain.Agent) float64 {
	floor := lot.PriceFloorUsdPerTon
	if recycler.Strategy.BuyCeiling == nil {
		return floor
	}
	ceiling := *recycler.Strategy.BuyCeiling
	midpoint := (floor + ceiling) / 2
	if midpoint > ceiling {
		return ceiling
	}
	return midpoint
}

func firstPrice(candidates ...*float64) *float64 {
	for _, candidate := range candidates {
		if candidate != nil {
			v := *candidate
			return &v
		}
	}
	return nil
}

func f64(v float64) *float64 { return &v }
