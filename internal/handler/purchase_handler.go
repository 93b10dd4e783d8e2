package handler

import (
	"errors"
	"fmt"
	"time"

	"go-taller-records/internal/model"
	"go-taller-records/internal/repository"
	"go-taller-records/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	repo repository.PurchaseRepository
}

func NewPurchaseHandler(repo repository.PurchaseRepository) *PurchaseHandler {
	return &PurchaseHandler{repo: repo}
}

// Helper to parse UUID route params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// parseListQuery reads the voucher-type gateway filter and the client-side
// predicates from the query string.
func parseListQuery(c *fiber.Ctx) (service.Filters, error) {
	filters := service.Filters{
		DateStart: c.Query("date_start"),
		DateEnd:   c.Query("date_end"),
		Search:    c.Query("search"),
	}
	if raw := c.Query("voucher_type"); raw != "" {
		vt := model.VoucherType(raw)
		if vt != model.VoucherInvoice && vt != model.VoucherDeliveryNote {
			return filters, fmt.Errorf("invalid voucher_type %q", raw)
		}
		filters.VoucherType = &vt
	}
	return filters, nil
}

func isEditorValidationError(err error) bool {
	return errors.Is(err, service.ErrProviderRequired) ||
		errors.Is(err, service.ErrVoucherTypeRequired) ||
		errors.Is(err, service.ErrVoucherNumberRequired) ||
		errors.Is(err, service.ErrAtLeastOneItem)
}

func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	filters, err := parseListQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	list := service.NewPurchaseListService(h.repo)
	if err := list.Load(filters.VoucherType); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load purchases"})
	}

	visible := list.Filtered(filters)
	return c.JSON(fiber.Map{
		"data":  visible,
		"count": len(visible),
		"total": service.AggregateTotal(visible),
	})
}

func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	record, err := h.repo.FindByID(id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load purchase"})
	}
	return c.JSON(record)
}

func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var draft service.PurchaseDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	editor := service.NewPurchaseEditor(h.repo)
	if err := editor.ApplyDraft(draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if err := editor.Save(); err != nil {
		if isEditorValidationError(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save purchase"})
	}

	record := editor.Record()
	return c.Status(201).JSON(fiber.Map{"message": "Purchase created", "data": record})
}

func (h *PurchaseHandler) UpdatePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	var draft service.PurchaseDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	editor, err := service.OpenPurchaseEditor(h.repo, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load purchase"})
	}

	if err := editor.ApplyDraft(draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if err := editor.Save(); err != nil {
		if isEditorValidationError(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save purchase"})
	}

	record := editor.Record()
	return c.JSON(fiber.Map{"message": "Purchase updated", "data": record})
}

func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	list := service.NewPurchaseListService(h.repo)
	if err := list.Delete(id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Purchase not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete purchase"})
	}
	return c.JSON(fiber.Map{"message": "Purchase deleted"})
}

// ExportPurchases streams the filtered subset as an xlsx download.
func (h *PurchaseHandler) ExportPurchases(c *fiber.Ctx) error {
	filters, err := parseListQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	list := service.NewPurchaseListService(h.repo)
	if err := list.Load(filters.VoucherType); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load purchases"})
	}

	now := time.Now()
	workbook, err := service.BuildPurchaseWorkbook(list.Filtered(filters), filters, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build export"})
	}
	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build export"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", service.ExportFileName(now)))
	return c.Send(buffer.Bytes())
}
