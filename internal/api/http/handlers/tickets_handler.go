package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/auth"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/service"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// TicketsHandler exposes the admin ticket views and review actions plus the
// basic ticket CRUD passthrough.
type TicketsHandler struct {
	listing *service.ListingService
	review  *service.ReviewService
	split   *service.SplitService
	tickets upstream.TicketAPI
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(listing *service.ListingService, review *service.ReviewService, split *service.SplitService, tickets upstream.TicketAPI) *TicketsHandler {
	return &TicketsHandler{listing: listing, review: review, split: split, tickets: tickets}
}

// List handles GET /tickets?tab=&status=&sort=priority&order=asc|desc.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	query, err := parseListQuery(c)
	if err != nil {
		return err
	}
	rows, err := h.listing.ListTickets(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows, "meta": fiber.Map{"count": len(rows), "tab": query.Tab}})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	row := service.TicketRow{
		Ticket:    *ticket,
		Actions:   ticket.EligibleActions(),
		IsOverdue: ticket.Overdue(time.Now()),
	}
	return c.JSON(fiber.Map{"data": row})
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || len(req.CategoryIDs) == 0 {
		return apperrors.NewValidationError("title and at least one category required", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), upstream.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		RoomID:      req.RoomID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateTicket(c.UserContext(), c.Params("id"), upstream.UpdateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		RoomID:      req.RoomID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Delete handles DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.tickets.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Accept handles POST /tickets/:id/accept.
func (h *TicketsHandler) Accept(c *fiber.Ctx) error {
	if err := h.review.AcceptTicket(c.UserContext(), auth.Principal(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"accepted": true}})
}

// Deny handles POST /tickets/:id/deny.
func (h *TicketsHandler) Deny(c *fiber.Ctx) error {
	var req dto.DenyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.review.DenyTicket(c.UserContext(), auth.Principal(c), c.Params("id"), req.Reason); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"denied": true}})
}

// Resolve handles POST /tickets/:id/resolve.
func (h *TicketsHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.review.ResolveTicket(c.UserContext(), auth.Principal(c), c.Params("id"), req.ResolutionNote); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"resolved": true}})
}

// Assign handles POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.review.AssignTicket(c.UserContext(), auth.Principal(c), c.Params("id"), req.StaffID, req.Priority); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"assigned": true}})
}

// SplitPlan handles GET /tickets/:id/split-plan.
func (h *TicketsHandler) SplitPlan(c *fiber.Ctx) error {
	plan, err := h.split.Plan(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": plan})
}

// Split handles POST /tickets/:id/split.
func (h *TicketsHandler) Split(c *fiber.Ctx) error {
	var req dto.SplitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	selections := make([]service.SplitSelection, 0, len(req.Selections))
	for _, selection := range req.Selections {
		entry := service.SplitSelection{
			CategoryID: selection.CategoryID,
			Priority:   selection.Priority,
		}
		if selection.StaffID != nil {
			entry.StaffID = *selection.StaffID
		}
		selections = append(selections, entry)
	}
	if err := h.split.Split(c.UserContext(), auth.Principal(c), c.Params("id"), selections); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"split": true}})
}

func parseListQuery(c *fiber.Ctx) (service.ListQuery, error) {
	tab := service.Tab(c.Query("tab", string(service.TabAll)))
	switch tab {
	case service.TabAll, service.TabStatus, service.TabPendingSplit, service.TabWaitingAcceptance, service.TabOverdue:
	default:
		return service.ListQuery{}, apperrors.NewValidationError("unknown tab", map[string]any{"tab": tab})
	}

	order := service.SortOrder(c.Query("order", string(service.SortAscending)))
	if order != service.SortAscending && order != service.SortDescending {
		return service.ListQuery{}, apperrors.NewValidationError("order must be asc or desc", nil)
	}

	return service.ListQuery{
		Tab:            tab,
		Status:         domain.TicketStatus(c.Query("status")),
		SortByPriority: c.Query("sort") == "priority",
		Order:          order,
	}, nil
}
