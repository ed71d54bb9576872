package domain

import "time"

// SubTicketStatus enumerates lifecycle states for per-category sub-tickets.
type SubTicketStatus string

const (
	SubTicketStatusAssigned   SubTicketStatus = "assigned"
	SubTicketStatusInProgress SubTicketStatus = "in_progress"
	SubTicketStatusResolved   SubTicketStatus = "resolved"
	SubTicketStatusDenied     SubTicketStatus = "denied"
	SubTicketStatusEscalated  SubTicketStatus = "escalated"
)

// SubTicket is a per-category unit of work split out of a multi-category
// ticket. Created only as a side effect of splitting the parent.
type SubTicket struct {
	ID             string          `json:"id"`
	TicketID       string          `json:"ticketId"`
	CategoryID     string          `json:"categoryId"`
	Category       *Category       `json:"category,omitempty"`
	AssigneeID     *string         `json:"assigneeId"`
	Status         SubTicketStatus `json:"status"`
	Priority       TicketPriority  `json:"priority"`
	AssignedAt     *time.Time      `json:"assignedAt"`
	AcceptedAt     *time.Time      `json:"acceptedAt"`
	ResolvedAt     *time.Time      `json:"resolvedAt"`
	DueDate        *time.Time      `json:"dueDate"`
	ResolutionNote *string         `json:"resolutionNote"`
	DeniedReason   *string         `json:"deniedReason"`
	Attachments    []Attachment    `json:"attachments"`
}

// Overdue reports whether the sub-ticket passed its due date without reaching
// a terminal state.
func (s *SubTicket) Overdue(now time.Time) bool {
	if s.DueDate == nil {
		return false
	}
	switch s.Status {
	case SubTicketStatusResolved, SubTicketStatusDenied:
		return false
	}
	return s.DueDate.Before(now)
}
