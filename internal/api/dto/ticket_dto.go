package dto

import (
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	RoomID      *string  `json:"roomId"`
	CategoryIDs []string `json:"categoryIds"`
}

// UpdateTicketRequest patches mutable ticket fields.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	RoomID      *string                `json:"roomId"`
}

// DenyRequest carries the mandatory denial reason.
type DenyRequest struct {
	Reason string `json:"reason"`
}

// ResolveRequest carries the mandatory resolution note.
type ResolveRequest struct {
	ResolutionNote string `json:"resolutionNote"`
}

// AssignRequest assigns a single-category ticket directly.
type AssignRequest struct {
	StaffID  string                `json:"staffId"`
	Priority domain.TicketPriority `json:"priority"`
}

// SplitSelectionRequest is one per-category choice in a split submission.
type SplitSelectionRequest struct {
	CategoryID string                `json:"categoryId"`
	Priority   domain.TicketPriority `json:"priority"`
	StaffID    *string               `json:"staffId"`
}

// SplitRequest submits the category split of a multi-category ticket.
type SplitRequest struct {
	Selections []SplitSelectionRequest `json:"selections"`
}
