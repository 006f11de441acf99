package events

import (
	"context"
	"time"
)

// AuditEvent is an append-only record of a significant domain action,
// published asynchronously for downstream compliance consumers.
type AuditEvent struct {
	EventID    string    `json:"eventID"`
	EventType  string    `json:"eventType"`
	FirmID     string    `json:"firmID"`
	EntityID   string    `json:"entityID"` // ID of the aggregate the event concerns
	ActorID    string    `json:"actorID"`  // UserID that performed the action
	OccurredAt time.Time `json:"occurredAt"`
	Detail     string    `json:"detail,omitempty"`
}

// Audit event types emitted by the services.
const (
	EventLedgerEntryAppended    = "trust.ledger.entry_appended"
	EventReconciliationRecorded = "trust.reconciliation.recorded"
	EventGuidelineOverridden    = "billing.guideline.overridden"
	EventInvoiceIssued          = "billing.invoice.issued"
	EventInvoiceVoided          = "billing.invoice.voided"
)

// Publisher delivers audit events to the event stream. Implementations
// must be safe for concurrent use. Publishing is best-effort from the
// caller's perspective: a failed publish must not roll back the domain
// write it describes.
type Publisher interface {
	Publish(ctx context.Context, event AuditEvent) error
	Close() error
}
