package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/service"
)

// MasterDataHandler passes master-data CRUD through to the backend. Records
// stay raw JSON end to end; the console does not reshape them.
type MasterDataHandler struct {
	directory *service.DirectoryService
}

// NewMasterDataHandler constructs handler.
func NewMasterDataHandler(directory *service.DirectoryService) *MasterDataHandler {
	return &MasterDataHandler{directory: directory}
}

// Staff handles GET /staff.
func (h *MasterDataHandler) Staff(c *fiber.Ctx) error {
	staff, err := h.directory.ListStaff(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staff, "meta": fiber.Map{"count": len(staff)}})
}

// List handles GET /master-data/:resource.
func (h *MasterDataHandler) List(c *fiber.Ctx) error {
	records, err := h.directory.List(c.UserContext(), c.Params("resource"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records, "meta": fiber.Map{"count": len(records)}})
}

// Get handles GET /master-data/:resource/:id.
func (h *MasterDataHandler) Get(c *fiber.Ctx) error {
	record, err := h.directory.Get(c.UserContext(), c.Params("resource"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Create handles POST /master-data/:resource.
func (h *MasterDataHandler) Create(c *fiber.Ctx) error {
	record, err := h.directory.Create(c.UserContext(), c.Params("resource"), json.RawMessage(c.Body()))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update handles PATCH /master-data/:resource/:id.
func (h *MasterDataHandler) Update(c *fiber.Ctx) error {
	record, err := h.directory.Update(c.UserContext(), c.Params("resource"), c.Params("id"), json.RawMessage(c.Body()))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Delete handles DELETE /master-data/:resource/:id.
func (h *MasterDataHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.Delete(c.UserContext(), c.Params("resource"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
