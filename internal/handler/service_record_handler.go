package handler

import (
	"errors"
	"fmt"

	"go-taller-records/internal/model"
	"go-taller-records/internal/render"
	"go-taller-records/internal/repository"
	"go-taller-records/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type ServiceRecordHandler struct {
	repo repository.ServiceRecordRepository
}

func NewServiceRecordHandler(repo repository.ServiceRecordRepository) *ServiceRecordHandler {
	return &ServiceRecordHandler{repo: repo}
}

func (h *ServiceRecordHandler) GetServiceRecords(c *fiber.Ctx) error {
	var area *model.ServiceArea
	if raw := c.Query("area"); raw != "" {
		a := model.ServiceArea(raw)
		area = &a
	}

	records, err := h.repo.FindAll(area)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load service records"})
	}
	return c.JSON(records)
}

func (h *ServiceRecordHandler) GetServiceRecord(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service record ID"})
	}

	record, err := h.repo.FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Service record not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load service record"})
	}
	return c.JSON(record)
}

func (h *ServiceRecordHandler) CreateServiceRecord(c *fiber.Ctx) error {
	var record model.ServiceRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&record); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		})
	}

	if err := h.repo.Create(&record); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save service record"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Service record created", "data": record})
}

func (h *ServiceRecordHandler) UpdateServiceRecord(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service record ID"})
	}

	existing, err := h.repo.FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Service record not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load service record"})
	}

	var incoming model.ServiceRecord
	if err := c.BodyParser(&incoming); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Area = incoming.Area
	existing.Client = incoming.Client
	existing.Equipment = incoming.Equipment
	existing.Technician = incoming.Technician
	existing.Fields = incoming.Fields

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		})
	}

	if err := h.repo.Update(existing); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save service record"})
	}
	return c.JSON(fiber.Map{"message": "Service record updated", "data": existing})
}

func (h *ServiceRecordHandler) DeleteServiceRecord(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service record ID"})
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Service record not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete service record"})
	}
	return c.JSON(fiber.Map{"message": "Service record deleted"})
}

// GetServiceRecordSheet renders the stored record as its read-only
// per-area sheet layout.
func (h *ServiceRecordHandler) GetServiceRecordSheet(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service record ID"})
	}

	record, err := h.repo.FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Service record not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load service record"})
	}

	return c.JSON(render.Sheet(record.Fields, record.Area))
}
