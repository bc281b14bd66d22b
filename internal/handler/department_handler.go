package handler

import (
	"budget-admin/internal/models"
	"budget-admin/internal/repository"
	"budget-admin/internal/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type DepartmentHandler struct {
	departmentRepo *repository.DepartmentRepository
}

func NewDepartmentHandler(departmentRepo *repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departmentRepo: departmentRepo}
}

func (h *DepartmentHandler) GetDepartments(c *fiber.Ctx) error {
	departments, err := h.departmentRepo.FindAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve departments", err)
	}

	return utils.SuccessResponse(c, "Departments retrieved successfully", departments)
}

func (h *DepartmentHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid department ID", err)
	}

	department, err := h.departmentRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Department not found", err)
	}

	return utils.SuccessResponse(c, "Department retrieved successfully", department)
}

func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var req models.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Department name is required", nil)
	}

	department := &models.Department{
		Name:     req.Name,
		IsActive: req.IsActive,
	}

	if err := h.departmentRepo.Create(department); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create department", err)
	}

	return utils.SuccessResponse(c, "Department created successfully", department)
}

func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid department ID", err)
	}

	department, err := h.departmentRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Department not found", err)
	}

	var req models.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Department name is required", nil)
	}

	department.Name = req.Name
	department.IsActive = req.IsActive

	if err := h.departmentRepo.Update(department); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update department", err)
	}

	return utils.SuccessResponse(c, "Department updated successfully", department)
}

func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid department ID", err)
	}

	if err := h.departmentRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete department", err)
	}

	return utils.SuccessResponse(c, "Department deleted successfully", nil)
}
