package domain

import "time"

// LotStatus represents the lifecycle status of a waste lot
type LotStatus string

const (
	LotStatusDraft               LotStatus = "draft"
	LotStatusPendingVerification LotStatus = "pending_verification"
	LotStatusVerified            LotStatus = "verified"
	LotStatusTokenized           LotStatus = "tokenized"
	LotStatusNegotiating         LotStatus = "negotiating"
	LotStatusSettled             LotStatus = "settled"
	LotStatusUpcyclingPending    LotStatus = "upcycling_pending"
	LotStatusUpcyclingValidated  LotStatus = "upcycling_validated"
	LotStatusRetired             LotStatus = "retired"
)

// WasteLot is a unit of waste material offered for upcycling or recycling.
type WasteLot struct {
	ID                  string          `json:"id"`
	ProducerID          string          `json:"producerId"`
	MaterialType        string          `json:"materialType"`
	QuantityTons        float64         `json:"quantityTons"`
	Location            string          `json:"location"`
	PriceFloorUsdPerTon float64         `json:"priceFloorUsdPerTon"`
	Status              LotStatus       `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	Verification        *Verification   `json:"verification,omitempty"`
	Token               *TokenizedAsset `json:"token,omitempty"`
}

// Verification records how a lot was (or will be) verified.
type Verification struct {
	Method     string     `json:"method"`
	Verifier   string     `json:"verifier"`
	Notes      string     `json:"notes,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// TokenizedAsset is the symbolic on-ledger claim attached to a tokenized lot.
type TokenizedAsset struct {
	TokenID   string     `json:"tokenId"`
	Symbol    string     `json:"symbol"`
	Supply    int64      `json:"supply"`
	IssuedAt  time.Time  `json:"issuedAt"`
	RetiredAt *time.Time `json:"retiredAt,omitempty"`
}

// AgentType classifies marketplace participants
type AgentType string

const (
	AgentTypeProducer   AgentType = "producer"
	AgentTypeRecycler   AgentType = "recycler"
	AgentTypeCompliance AgentType = "compliance"
	AgentTypeLogistics  AgentType = "logistics"
)

// Agent is a marketplace participant with configurable negotiation parameters.
type Agent struct {
	ID           string        `json:"id"`
	Owner        string        `json:"owner"`
	Type         AgentType     `json:"type"`
	ContactEmail string        `json:"contactEmail,omitempty"`
	Strategy     AgentStrategy `json:"strategy"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// AgentStrategy is an open bag of negotiation parameters. Nil fields are
// "unset" so that partial updates can merge without clobbering existing values.
type AgentStrategy struct {
	BuyFloor         *float64       `json:"buyFloor,omitempty"`
	BuyCeiling       *float64       `json:"buyCeiling,omitempty"`
	TargetMargin     *float64       `json:"targetMargin,omitempty"`
	ResponseSLAHours *float64       `json:"responseSLAHours,omitempty"`
	BundlePreference *bool          `json:"bundlePreference,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// Merge shallow-merges the provided partial strategy into s. Set fields
// overwrite, unset fields are left alone; a provided metadata map replaces
// the existing one wholesale.
func (s *AgentStrategy) Merge(partial AgentStrategy) {
	if partial.BuyFloor != nil {
		s.BuyFloor = partial.BuyFloor
	}
	if partial.BuyCeiling != nil {
		s.BuyCeiling = partial.BuyCeiling
	}
	if partial.TargetMargin != nil {
		s.TargetMargin = partial.TargetMargin
	}
	if partial.ResponseSLAHours != nil {
		s.ResponseSLAHours = partial.ResponseSLAHours
	}
	if partial.BundlePreference != nil {
		s.BundlePreference = partial.BundlePreference
	}
	if partial.Metadata != nil {
		s.Metadata = partial.Metadata
	}
}

// IsZero reports whether no strategy field has been set.
func (s AgentStrategy) IsZero() bool {
	return s.BuyFloor == nil && s.BuyCeiling == nil && s.TargetMargin == nil &&
		s.ResponseSLAHours == nil && s.BundlePreference == nil && s.Metadata == nil
}

// OfferStatus represents the status of a marketplace offer
type OfferStatus string

const (
	OfferStatusOpen     OfferStatus = "open"
	OfferStatusCounter  OfferStatus = "counter"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

// MarketplaceOffer pairs a lot with a producer agent and a recycler agent.
// ExpiresAt is fixed when the offer is created and never recomputed.
type MarketplaceOffer struct {
	ID              string      `json:"id"`
	LotID           string      `json:"lotId"`
	ProducerAgentID string      `json:"producerAgentId"`
	RecyclerAgentID string      `json:"recyclerAgentId"`
	Status          OfferStatus `json:"status"`
	ProducerOffer   *float64    `json:"producerOffer,omitempty"`
	RecyclerOffer   *float64    `json:"recyclerOffer,omitempty"`
	AgreedPrice     *float64    `json:"agreedPrice,omitempty"`
	ExpiresAt       time.Time   `json:"expiresAt"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusScheduled ShipmentStatus = "scheduled"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// Shipment is a scheduled pickup of a lot by a carrier.
type Shipment struct {
	ID              string         `json:"id"`
	LotID           string         `json:"lotId"`
	Carrier         string         `json:"carrier"`
	ScheduledPickup time.Time      `json:"scheduledPickup"`
	Status          ShipmentStatus `json:"status"`
	TrackerURL      string         `json:"trackerUrl,omitempty"`
}

// CertificationStatus represents the review status of a certification request
type CertificationStatus string

const (
	CertificationStatusPending  CertificationStatus = "pending"
	CertificationStatusApproved CertificationStatus = "approved"
	CertificationStatusRejected CertificationStatus = "rejected"
)

// CertificationRequest is an upcycling-evidence review request for a lot.
type CertificationRequest struct {
	ID             string              `json:"id"`
	LotID          string              `json:"lotId"`
	SubmittedBy    string              `json:"submittedBy"`
	SubmittedAt    time.Time           `json:"submittedAt"`
	EvidenceURI    string              `json:"evidenceUri"`
	Status         CertificationStatus `json:"status"`
	Reviewer       string              `json:"reviewer,omitempty"`
	ReviewedAt     *time.Time          `json:"reviewedAt,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CertificateURI string              `json:"certificateUri,omitempty"`
}

// ESGSummary aggregates marketplace-wide impact figures for the dashboard.
type ESGSummary struct {
	LotsTokenized      int     `json:"lotsTokenized"`
	LotsRetired        int     `json:"lotsRetired"`
	TotalTonnage       float64 `json:"totalTonnage"`
	AveragePricePerTon float64 `json:"averagePricePerTon"`
	PendingShipments   int     `json:"pendingShipments"`
}
