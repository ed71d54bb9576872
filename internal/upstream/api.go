package upstream

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// The service layer depends on these narrow interfaces rather than the HTTP
// client so workflows can be exercised against fakes.

// TicketAPI covers the ticket endpoints of the backend contract.
type TicketAPI interface {
	ListTickets(ctx context.Context, query TicketQuery) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, id string, input UpdateTicketInput) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
	AcceptTicket(ctx context.Context, id string) error
	DenyTicket(ctx context.Context, id, reason string) error
	ResolveTicket(ctx context.Context, id, resolutionNote string) error
	AssignCategory(ctx context.Context, id string, input AssignInput) error
	SplitCategories(ctx context.Context, id string, splits []SplitInput) error
}

// SubTicketAPI covers the sub-ticket endpoints.
type SubTicketAPI interface {
	ListAssignedSubTickets(ctx context.Context) ([]domain.SubTicket, error)
	GetSubTicket(ctx context.Context, id string) (*domain.SubTicket, error)
	AcceptSubTicket(ctx context.Context, id string) error
	DenySubTicket(ctx context.Context, id, reason string) error
	ResolveSubTicket(ctx context.Context, id, resolutionNote string) error
}

// ReassignAPI covers the reassignment request endpoints.
type ReassignAPI interface {
	ListReassignRequests(ctx context.Context, status string) ([]domain.ReassignRequest, error)
	GetReassignRequest(ctx context.Context, id string) (*domain.ReassignRequest, error)
	CreateReassignRequest(ctx context.Context, input ReassignCreateInput) (*domain.ReassignRequest, error)
	ReviewReassignRequest(ctx context.Context, id string, input ReviewInput) (*domain.ReassignRequest, error)
}

// DirectoryAPI covers users and master data. The typed getters serve the
// workflow (department chasing, staff pickers); the raw resource methods
// back the CRUD passthrough.
type DirectoryAPI interface {
	ListStaff(ctx context.Context) ([]domain.User, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	GetDepartment(ctx context.Context, id string) (*domain.Department, error)
	ListResource(ctx context.Context, resource string) ([]json.RawMessage, error)
	GetResource(ctx context.Context, resource, id string) (json.RawMessage, error)
	CreateResource(ctx context.Context, resource string, body json.RawMessage) (json.RawMessage, error)
	UpdateResource(ctx context.Context, resource, id string, body json.RawMessage) (json.RawMessage, error)
	DeleteResource(ctx context.Context, resource, id string) error
}

// AuthAPI proxies console credentials to the backend.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context) error
}

// TicketQuery narrows a ticket listing server-side where the backend
// supports it. Tab semantics beyond status filtering are applied client-side
// by the listing service.
type TicketQuery struct {
	Status     string
	AssigneeID string
}

// CreateTicketInput is the student submission payload.
type CreateTicketInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	RoomID      *string  `json:"roomId,omitempty"`
	CategoryIDs []string `json:"categoryIds"`
}

// UpdateTicketInput patches mutable ticket fields.
type UpdateTicketInput struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Priority    *domain.TicketPriority `json:"priority,omitempty"`
	RoomID      *string                `json:"roomId,omitempty"`
}

// AssignInput assigns a single-category ticket directly to staff.
type AssignInput struct {
	StaffID  string                `json:"staffId"`
	Priority domain.TicketPriority `json:"priority"`
}

// SplitInput is one split of a multi-category ticket. CategoryIDs always
// holds exactly one id; the console does not merge categories into one
// sub-ticket.
type SplitInput struct {
	CategoryIDs []string              `json:"categoryIds"`
	Priority    domain.TicketPriority `json:"priority"`
	StaffID     *string               `json:"staffId,omitempty"`
}

// ReassignCreateInput opens a reassignment request for a ticket XOR a
// sub-ticket.
type ReassignCreateInput struct {
	TicketID     *string `json:"ticketId,omitempty"`
	SubTicketID  *string `json:"subTicketId,omitempty"`
	Reason       string  `json:"reason"`
	DepartmentID *string `json:"departmentId,omitempty"`
	StaffID      *string `json:"staffId,omitempty"`
}

// ReviewInput is the admin decision on a pending request. NewAssignee is
// omitted entirely when empty so the backend auto-assigns.
type ReviewInput struct {
	Action      domain.ReviewAction `json:"action"`
	ReviewNote  string              `json:"reviewNote,omitempty"`
	NewAssignee string              `json:"newAssignee,omitempty"`
}
