package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/auth"
	"github.com/spec-kit/helpdesk-console/internal/service"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// ReassignHandler exposes the reassignment request workflow: staff open
// requests, admins list, inspect, and review them.
type ReassignHandler struct {
	reassignment *service.ReassignmentService
}

// NewReassignHandler constructs handler.
func NewReassignHandler(reassignment *service.ReassignmentService) *ReassignHandler {
	return &ReassignHandler{reassignment: reassignment}
}

// Create handles POST /reassign-requests.
func (h *ReassignHandler) Create(c *fiber.Ctx) error {
	var req dto.ReassignCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	request, err := h.reassignment.Create(c.UserContext(), auth.Principal(c), service.CreateRequestInput{
		TicketID:    req.TicketID,
		SubTicketID: req.SubTicketID,
		Reason:      req.Reason,
		StaffID:     req.StaffID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": request})
}

// List handles GET /reassign-requests?status=.
func (h *ReassignHandler) List(c *fiber.Ctx) error {
	requests, err := h.reassignment.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requests, "meta": fiber.Map{"count": len(requests)}})
}

// Context handles GET /reassign-requests/:id/context. It returns everything
// the review modal needs in one response.
func (h *ReassignHandler) Context(c *fiber.Ctx) error {
	reviewCtx, err := h.reassignment.Context(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewCtx})
}

// Review handles POST /reassign-requests/:id/review.
func (h *ReassignHandler) Review(c *fiber.Ctx) error {
	var req dto.ReassignReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	reviewed, err := h.reassignment.Review(c.UserContext(), auth.Principal(c), c.Params("id"), service.ReviewDecision{
		Action:      req.Action,
		ReviewNote:  req.ReviewNote,
		NewAssignee: req.NewAssignee,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewed})
}
