package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/auth"
	"github.com/spec-kit/helpdesk-console/internal/service"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// QueueHandler exposes the staff work queue: the caller's assigned
// sub-tickets and the accept/deny/resolve actions on them.
type QueueHandler struct {
	listing    *service.ListingService
	review     *service.ReviewService
	subTickets upstream.SubTicketAPI
}

// NewQueueHandler constructs handler.
func NewQueueHandler(listing *service.ListingService, review *service.ReviewService, subTickets upstream.SubTicketAPI) *QueueHandler {
	return &QueueHandler{listing: listing, review: review, subTickets: subTickets}
}

// List handles GET /queue?sort=priority&order=asc|desc. The staff view polls
// this endpoint; every call is a fresh upstream fetch.
func (h *QueueHandler) List(c *fiber.Ctx) error {
	order := service.SortOrder(c.Query("order", string(service.SortAscending)))
	if order != service.SortAscending && order != service.SortDescending {
		return apperrors.NewValidationError("order must be asc or desc", nil)
	}
	rows, err := h.listing.ListQueue(c.UserContext(), service.ListQuery{
		SortByPriority: c.Query("sort") == "priority",
		Order:          order,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows, "meta": fiber.Map{"count": len(rows)}})
}

// Get handles GET /queue/:id.
func (h *QueueHandler) Get(c *fiber.Ctx) error {
	subTicket, err := h.subTickets.GetSubTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	row := service.SubTicketRow{
		SubTicket: *subTicket,
		Actions:   subTicket.EligibleActions(),
		IsOverdue: subTicket.Overdue(time.Now()),
	}
	return c.JSON(fiber.Map{"data": row})
}

// Accept handles POST /queue/:id/accept.
func (h *QueueHandler) Accept(c *fiber.Ctx) error {
	if err := h.review.AcceptSubTicket(c.UserContext(), auth.Principal(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"accepted": true}})
}

// Deny handles POST /queue/:id/deny.
func (h *QueueHandler) Deny(c *fiber.Ctx) error {
	var req dto.DenyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.review.DenySubTicket(c.UserContext(), auth.Principal(c), c.Params("id"), req.Reason); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"denied": true}})
}

// Resolve handles POST /queue/:id/resolve.
func (h *QueueHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.review.ResolveSubTicket(c.UserContext(), auth.Principal(c), c.Params("id"), req.ResolutionNote); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"resolved": true}})
}
