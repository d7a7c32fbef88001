// Package logistics schedules lot pickups with carriers.
package logistics

import (
	"time"

	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/eventing"
	"aura/marketplace/marketplace-backend/internal/store"
	"aura/marketplace/marketplace-backend/pkg/validate"
)

type ScheduleShipmentRequest struct {
	LotID           string    `json:"lotId" validate:"required"`
	Carrier         string    `json:"carrier" validate:"required"`
	ScheduledPickup time.Time `json:"scheduledPickup" validate:"required"`
	TrackerURL      string    `json:"trackerUrl" validate:"omitempty,url"`
}

type Service struct {
	store    *store.Memory
	workflow *eventing.WorkflowEngine
}

func NewService(st *store.Memory, workflow *eventing.WorkflowEngine) *Service {
	return &Service{store: st, workflow: workflow}
}

// ScheduleShipment records a scheduled shipment for an existing lot and
// schedules the shipment workflow task (which emits shipment.scheduled).
// Shipments are create-only; there is no status update operation.
func (s *Service) ScheduleShipment(req ScheduleShipmentRequest) (domain.Shipment, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Shipment{}, err
	}
	if _, ok := s.store.GetLot(req.LotID); !ok {
		return domain.Shipment{}, domain.NewNotFound("lot", req.LotID)
	}
	shipment := s.store.CreateShipment(domain.Shipment{
		LotID:           req.LotID,
		Carrier:         req.Carrier,
		ScheduledPickup: req.ScheduledPickup.UTC(),
		Status:          domain.ShipmentStatusScheduled,
		TrackerURL:      req.TrackerURL,
	})
	s.workflow.ScheduleShipment(shipment.ID)
	return shipment, nil
}

// ListShipments returns every shipment in insertion order.
func (s *Service) ListShipments() []domain.Shipment {
	return s.store.Shipments()
}
