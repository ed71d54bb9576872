package events

import (
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketAccepted    EventType = "ticket_accepted"
	EventTicketDenied      EventType = "ticket_denied"
	EventTicketResolved    EventType = "ticket_resolved"
	EventTicketAssigned    EventType = "ticket_assigned"
	EventTicketSplit       EventType = "ticket_split"
	EventTicketOverdue     EventType = "ticket_overdue"
	EventReassignRequested EventType = "reassign_requested"
	EventReassignReviewed  EventType = "reassign_reviewed"
)

// TargetKind distinguishes ticket and sub-ticket targets.
type TargetKind string

const (
	TargetTicket    TargetKind = "ticket"
	TargetSubTicket TargetKind = "sub_ticket"
)

// Actor identifies who performed a console action.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a console action emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	TargetKind TargetKind  `json:"target_kind"`
	TargetID   string      `json:"target_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ReviewActionPayload carries the note or reason attached to a review
// action.
type ReviewActionPayload struct {
	Action domain.Action `json:"action"`
	Note   string        `json:"note,omitempty"`
}

// TicketSplitPayload records the category fan-out of a split.
type TicketSplitPayload struct {
	CategoryIDs []string `json:"category_ids"`
	SplitCount  int      `json:"split_count"`
}

// ReassignRequestedPayload carries the request linkage.
type ReassignRequestedPayload struct {
	RequestID        string  `json:"request_id"`
	Reason           string  `json:"reason"`
	SuggestedStaffID *string `json:"suggested_staff_id,omitempty"`
}

// ReassignReviewedPayload carries the terminal decision.
type ReassignReviewedPayload struct {
	RequestID   string                `json:"request_id"`
	Action      domain.ReviewAction   `json:"action"`
	NewAssignee *string               `json:"new_assignee,omitempty"`
	Status      domain.ReassignStatus `json:"status"`
}

// TicketOverduePayload is emitted by the queue watcher for newly-overdue
// tickets.
type TicketOverduePayload struct {
	Priority domain.TicketPriority `json:"priority"`
	DueDate  *time.Time            `json:"due_date,omitempty"`
}
