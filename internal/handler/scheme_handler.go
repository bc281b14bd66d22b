package handler

import (
	"budget-admin/internal/models"
	"budget-admin/internal/repository"
	"budget-admin/internal/service"
	"budget-admin/internal/utils"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type SchemeHandler struct {
	schemeRepo   *repository.SchemeRepository
	sheetService *service.SheetService
}

func NewSchemeHandler(schemeRepo *repository.SchemeRepository, sheetService *service.SheetService) *SchemeHandler {
	return &SchemeHandler{
		schemeRepo:   schemeRepo,
		sheetService: sheetService,
	}
}

func (h *SchemeHandler) GetSchemes(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	schemes, total, err := h.schemeRepo.FindAll(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve schemes", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	return utils.SuccessResponse(c, "Schemes retrieved successfully", fiber.Map{
		"schemes":    schemes,
		"pagination": pagination,
	})
}

func (h *SchemeHandler) GetScheme(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid scheme ID", err)
	}

	scheme, err := h.schemeRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Scheme not found", err)
	}

	return utils.SuccessResponse(c, "Scheme retrieved successfully", scheme)
}

func (h *SchemeHandler) CreateScheme(c *fiber.Ctx) error {
	var req models.SchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.SchemeCode == "" || req.SchemeName == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Scheme code and name are required", nil)
	}

	existing, err := h.schemeRepo.FindByCode(req.SchemeCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check scheme code", err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Scheme code already exists", nil)
	}

	scheme := &models.Scheme{
		SchemeCode:              req.SchemeCode,
		SchemeName:              req.SchemeName,
		DepartmentID:            req.DepartmentID,
		TotalBudgetProvision:    req.TotalBudgetProvision,
		ProgressiveAllotment:    req.ProgressiveAllotment,
		ActualExpenditureDec:    req.ActualExpenditureDec,
		PercentBudgetExp:        req.PercentBudgetExp,
		PercentActualExp:        req.PercentActualExp,
		ProvisionalCurrentMonth: req.ProvisionalCurrentMonth,
	}

	if err := h.schemeRepo.Create(scheme); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create scheme", err)
	}

	return utils.SuccessResponse(c, "Scheme created successfully", scheme)
}

func (h *SchemeHandler) UpdateScheme(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid scheme ID", err)
	}

	scheme, err := h.schemeRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Scheme not found", err)
	}

	var req models.SchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.SchemeName == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Scheme name is required", nil)
	}

	scheme.SchemeName = req.SchemeName
	scheme.TotalBudgetProvision = req.TotalBudgetProvision
	scheme.ProgressiveAllotment = req.ProgressiveAllotment
	scheme.ActualExpenditureDec = req.ActualExpenditureDec
	scheme.PercentBudgetExp = req.PercentBudgetExp
	scheme.PercentActualExp = req.PercentActualExp
	scheme.ProvisionalCurrentMonth = req.ProvisionalCurrentMonth

	if err := h.schemeRepo.Update(scheme); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update scheme", err)
	}

	return utils.SuccessResponse(c, "Scheme updated successfully", scheme)
}

func (h *SchemeHandler) DeleteScheme(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid scheme ID", err)
	}

	if err := h.schemeRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete scheme", err)
	}

	return utils.SuccessResponse(c, "Scheme deleted successfully", nil)
}

func (h *SchemeHandler) ExportSchemes(c *fiber.Ctx) error {
	schemes, err := h.schemeRepo.GetAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve schemes", err)
	}

	data, err := h.sheetService.ExportSchemes(schemes)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export schemes", err)
	}

	filename := fmt.Sprintf("schemes_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

func (h *SchemeHandler) DownloadTemplate(c *fiber.Ctx) error {
	data, err := h.sheetService.GenerateSchemeTemplate()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="scheme_import_template.xlsx"`)
	return c.Send(data)
}
