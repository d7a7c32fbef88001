package eventing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleVerificationRecordsTaskAndEmits(t *testing.T) {
	bus := NewBus()
	var events []Event
	bus.Subscribe(EventLotRegistered, func(e Event) {
		events = append(events, e)
	})
	engine := NewWorkflowEngine(bus)

	before := time.Now().UTC()
	task := engine.ScheduleVerification("lot-1")

	assert.Equal(t, TaskVerification, task.Kind)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "lot-1", task.Metadata["lotId"])
	// Scheduled one hour out.
	assert.WithinDuration(t, before.Add(time.Hour), task.ScheduledAt, time.Second)

	require.Len(t, events, 1)
	assert.Equal(t, "lot-1", events[0].Payload["lotId"])
}

func TestScheduleShipmentAndCertificationOffsets(t *testing.T) {
	bus := NewBus()
	var kinds []EventKind
	for _, kind := range Kinds() {
		bus.Subscribe(kind, func(e Event) {
			kinds = append(kinds, e.Kind)
		})
	}
	engine := NewWorkflowEngine(bus)

	before := time.Now().UTC()
	shipment := engine.ScheduleShipment("ship-1")
	cert := engine.ScheduleCertification("cert-1")

	assert.WithinDuration(t, before.Add(30*time.Minute), shipment.ScheduledAt, time.Second)
	assert.WithinDuration(t, before.Add(2*time.Hour), cert.ScheduledAt, time.Second)
	assert.Equal(t, []EventKind{EventShipmentScheduled, EventCertificationRequested}, kinds)
	assert.Equal(t, "ship-1", shipment.Metadata["shipmentId"])
	assert.Equal(t, "cert-1", cert.Metadata["certificationId"])
}

func TestListTasksReturnsSnapshot(t *testing.T) {
	engine := NewWorkflowEngine(NewBus())
	engine.ScheduleVerification("lot-1")
	engine.ScheduleShipment("ship-1")

	tasks := engine.ListTasks()
	require.Len(t, tasks, 2)

	// Mutating the snapshot must not affect the engine's record.
	tasks[0].Kind = TaskCertification
	fresh := engine.ListTasks()
	assert.Equal(t, TaskVerification, fresh[0].Kind)
}

func TestTasksAccumulateWithoutEviction(t *testing.T) {
	engine := NewWorkflowEngine(NewBus())
	for i := 0; i < 10; i++ {
		engine.ScheduleVerification("lot")
	}
	assert.Len(t, engine.ListTasks(), 10)
}
