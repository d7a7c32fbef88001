package eventing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskKind identifies the kind of deferred operational work a task records.
type TaskKind string

const (
	TaskVerification  TaskKind = "verification"
	TaskShipment      TaskKind = "shipment"
	TaskCertification TaskKind = "certification"
)

// Per-kind offsets between task creation and the scheduled timestamp.
const (
	verificationOffset  = time.Hour
	shipmentOffset      = 30 * time.Minute
	certificationOffset = 2 * time.Hour
)

// Task is a recorded intent to perform future operational work. Nothing
// consumes tasks at ScheduledAt; the engine is an intent log, not a scheduler.
type Task struct {
	ID          string            `json:"id"`
	Kind        TaskKind          `json:"kind"`
	ScheduledAt time.Time         `json:"scheduledAt"`
	Metadata    map[string]string `json:"metadata"`
}

// WorkflowEngine records tasks and notifies listeners through the bus. It
// never executes anything, retries nothing, and evicts nothing.
type WorkflowEngine struct {
	mu    sync.Mutex
	bus   *Bus
	tasks []Task
}

// NewWorkflowEngine creates an engine that emits through the given bus.
func NewWorkflowEngine(bus *Bus) *WorkflowEngine {
	return &WorkflowEngine{bus: bus}
}

// ScheduleVerification records a verification task for the lot and emits
// lot.registered.
func (w *WorkflowEngine) ScheduleVerification(lotID string) Task {
	return w.schedule(TaskVerification, verificationOffset,
		map[string]string{"lotId": lotID},
		Event{Kind: EventLotRegistered, Payload: map[string]string{"lotId": lotID}})
}

// ScheduleShipment records a shipment task and emits shipment.scheduled.
func (w *WorkflowEngine) ScheduleShipment(shipmentID string) Task {
	return w.schedule(TaskShipment, shipmentOffset,
		map[string]string{"shipmentId": shipmentID},
		Event{Kind: EventShipmentScheduled, Payload: map[string]string{"shipmentId": shipmentID}})
}

// ScheduleCertification records a certification task and emits
// certification.requested.
func (w *WorkflowEngine) ScheduleCertification(certificationID string) Task {
	return w.schedule(TaskCertification, certificationOffset,
		map[string]string{"certificationId": certificationID},
		Event{Kind: EventCertificationRequested, Payload: map[string]string{"certificationId": certificationID}})
}

// ListTasks returns a snapshot copy of every task ever recorded.
func (w *WorkflowEngine) ListTasks() []Task {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Task, len(w.tasks))
	copy(out, w.tasks)
	return out
}

func (w *WorkflowEngine) schedule(kind TaskKind, offset time.Duration, metadata map[string]string, event Event) Task {
	task := Task{
		ID:          fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8]),
		Kind:        kind,
		ScheduledAt: time.Now().UTC().Add(offset),
		Metadata:    metadata,
	}
	w.mu.Lock()
	w.tasks = append(w.tasks, task)
	w.mu.Unlock()
	// Emit outside the lock so handlers may list tasks without deadlocking.
	w.bus.Emit(event)
	return task
}
