package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusDenied     TicketStatus = "denied"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

var priorityRanks = map[TicketPriority]int{
	TicketPriorityCritical: 4,
	TicketPriorityHigh:     3,
	TicketPriorityMedium:   2,
	TicketPriorityLow:      1,
}

// Rank returns the sort weight of a priority. Unknown priorities rank 0.
func (p TicketPriority) Rank() int {
	return priorityRanks[p]
}

// TicketCategory associates a ticket with a category. The backend sometimes
// embeds the full category record, sometimes only the id.
type TicketCategory struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Category   *Category `json:"category,omitempty"`
}

// Attachment stores file metadata attached to a ticket or sub-ticket.
type Attachment struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"size"`
}

// Ticket is a reported issue, possibly spanning multiple categories.
// The backend owns the record; the gateway only renders fetched snapshots.
type Ticket struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Status         TicketStatus     `json:"status"`
	Priority       TicketPriority   `json:"priority"`
	RoomID         *string          `json:"roomId"`
	DepartmentID   *string          `json:"departmentId"`
	Categories     []TicketCategory `json:"ticketCategories"`
	AssigneeID     *string          `json:"assigneeId"`
	CreatedByID    string           `json:"createdById"`
	CreatedAt      time.Time        `json:"createdAt"`
	DueDate        *time.Time       `json:"dueDate"`
	AcceptedAt     *time.Time       `json:"acceptedAt"`
	ResolvedAt     *time.Time       `json:"resolvedAt"`
	ResolutionNote *string          `json:"resolutionNote"`
	DeniedReason   *string          `json:"deniedReason"`
	Attachments    []Attachment     `json:"attachments"`
}

// PendingSplit reports whether the ticket spans multiple categories and must
// be split into sub-tickets before single-staff assignment is meaningful.
func (t *Ticket) PendingSplit() bool {
	return len(t.Categories) >= 2
}

// WaitingAcceptance reports whether the ticket sits with an assignee who has
// not accepted it yet.
func (t *Ticket) WaitingAcceptance() bool {
	return t.Status == TicketStatusAssigned && t.AssigneeID != nil && t.AcceptedAt == nil
}

// Overdue reports whether the ticket passed its due date without reaching a
// terminal state.
func (t *Ticket) Overdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	switch t.Status {
	case TicketStatusResolved, TicketStatusClosed, TicketStatusDenied:
		return false
	}
	return t.DueDate.Before(now)
}
