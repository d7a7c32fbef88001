package certification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/marketplace/marketplace-backend/internal/domain"
	"aura/marketplace/marketplace-backend/internal/eventing"
	"aura/marketplace/marketplace-backend/internal/store"
)

type fixture struct {
	store    *store.Memory
	workflow *eventing.WorkflowEngine
	service  *Service
	events   []eventing.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: store.NewFromState(store.State{})}
	bus := eventing.NewBus()
	bus.Subscribe(eventing.EventCertificationRequested, func(e eventing.Event) {
		f.events = append(f.events, e)
	})
	f.workflow = eventing.NewWorkflowEngine(bus)
	f.service = NewService(f.store, f.workflow)
	return f
}

func approve(v bool) *bool { return &v }

func TestRequestCertification(t *testing.T) {
	f := newFixture(t)
	lot := f.store.CreateLot(domain.WasteLot{Status: domain.LotStatusSettled})

	cert, err := f.service.RequestCertification(RequestCertificationRequest{
		LotID:       lot.ID,
		SubmittedBy: "recycler-ops",
		EvidenceURI: "ipfs://bafy-evidence",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CertificationStatusPending, cert.Status)
	assert.False(t, cert.SubmittedAt.IsZero())

	tasks := f.workflow.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, eventing.TaskCertification, tasks[0].Kind)
	assert.Equal(t, cert.ID, tasks[0].Metadata["certificationId"])

	require.Len(t, f.events, 1)
	assert.Equal(t, cert.ID, f.events[0].Payload["certificationId"])

	// A settled lot moves into upcycling review.
	updated, _ := f.store.GetLot(lot.ID)
	assert.Equal(t, domain.LotStatusUpcyclingPending, updated.Status)
}

func TestRequestCertificationLeavesIneligibleLotStatusAlone(t *testing.T) {
	f := newFixture(t)
	lot := f.store.CreateLot(domain.WasteLot{Status: domain.LotStatusPendingVerification})

	_, err := f.service.RequestCertification(RequestCertificationRequest{
		LotID:       lot.ID,
		SubmittedBy: "recycler-ops",
		EvidenceURI: "ipfs://bafy-evidence",
	})

	require.NoError(t, err)
	updated, _ := f.store.GetLot(lot.ID)
	assert.Equal(t, domain.LotStatusPendingVerification, updated.Status)
}

func TestRequestCertificationUnknownLot(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.RequestCertification(RequestCertificationRequest{
		LotID:       "missing",
		SubmittedBy: "recycler-ops",
		EvidenceURI: "ipfs://bafy-evidence",
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Empty(t, f.service.ListCertifications())
}

func TestReviewCertificationApprove(t *testing.T) {
	f := newFixture(t)
	lot := f.store.CreateLot(domain.WasteLot{Status: domain.LotStatusSettled})
	cert, err := f.service.RequestCertification(RequestCertificationRequest{
		LotID:       lot.ID,
		SubmittedBy: "recycler-ops",
		EvidenceURI: "ipfs://bafy-evidence",
	})
	require.NoError(t, err)

	reviewed, err := f.service.ReviewCertification(cert.ID, ReviewRequest{
		Approve:        approve(true),
		Reviewer:       "Aura Compliance",
		Notes:          "evidence complete",
		CertificateURI: "ipfs://bafy-cert",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CertificationStatusApproved, reviewed.Status)
	assert.Equal(t, "Aura Compliance", reviewed.Reviewer)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "ipfs://bafy-cert", reviewed.CertificateURI)

	updated, _ := f.store.GetLot(lot.ID)
	assert.Equal(t, domain.LotStatusUpcyclingValidated, updated.Status)
}

func TestReviewCertificationReject(t *testing.T) {
	f := newFixture(t)
	lot := f.store.CreateLot(domain.WasteLot{Status: domain.LotStatusSettled})
	cert, err := f.service.RequestCertification(RequestCertificationRequest{
		LotID:       lot.ID,
		SubmittedBy: "recycler-ops",
		EvidenceURI: "ipfs://bafy-evidence",
	})
	require.NoError(t, err)

	reviewed, err := f.service.ReviewCertification(cert.ID, ReviewRequest{
		Approve:  approve(false),
		Reviewer: "Aura Compliance",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CertificationStatusRejected, reviewed.Status)

	// Rejection does not advance the lot.
	updated, _ := f.store.GetLot(lot.ID)
	assert.Equal(t, domain.LotStatusUpcyclingPending, updated.Status)
}

func TestReviewCertificationIsIdempotentAfterDecision(t *testing.T) {
	f := newFixture(t)
	lot := f.store.CreateLot(domain.WasteLot{Status: domain.LotStatusSettled})
	cert, err := f.service.RequestCertification(RequestCertificationRequest{
		LotID:       lot.ID,
		SubmittedBy: "recycler-ops",
		EvidenceURI: "ipfs://bafy-evidence",
	})
	require.NoError(t, err)

	_, err = f.service.ReviewCertification(cert.ID, ReviewRequest{
		Approve:  approve(true),
		Reviewer: "Aura Compliance",
	})
	require.NoError(t, err)

	again, err := f.service.ReviewCertification(cert.ID, ReviewRequest{
		Approve:  approve(false),
		Reviewer: "Someone Else",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CertificationStatusApproved, again.Status)
	assert.Equal(t, "Aura Compliance", again.Reviewer)
}

func TestReviewCertificationValidationAndNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ReviewCertification("any", ReviewRequest{Reviewer: "Aura Compliance"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "approve")

	_, err = f.service.ReviewCertification("missing", ReviewRequest{
		Approve:  approve(true),
		Reviewer: "Aura Compliance",
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
