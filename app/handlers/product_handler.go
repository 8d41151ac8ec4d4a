package handlers

import (
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandlerInterface defines the contract for catalog handlers
type ProductHandlerInterface interface {
	CreateProduct(c fiber.Ctx) error
	ListProducts(c fiber.Ctx) error
	ExportProducts(c fiber.Ctx) error
}

// ProductHandler handles the shared product catalog
type ProductHandler struct {
	baseHandler
	productFlow businessflow.ProductFlow
}

// NewProductHandler creates a new product handler
func NewProductHandler(productFlow businessflow.ProductFlow, requestTimeout time.Duration) *ProductHandler {
	return &ProductHandler{
		baseHandler: newBaseHandler(requestTimeout),
		productFlow: productFlow,
	}
}

// CreateProduct adds a product to the catalog
// @Summary Create Product
// @Description Register a product. Price and quantity may be 0 and status may be false, but all three must be sent.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Product data"
// @Success 201 {object} dto.APIResponse{data=dto.ProductDTO} "Product registered successfully"
// @Failure 400 {object} dto.APIResponse "Missing required fields"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.invalidBody(c, err)
	}

	if details, missing := h.validate(&req); details != nil {
		if missing {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields", "MISSING_FIELDS", details)
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
	}

	ctx, cancel := h.createRequestContext(c, "/products")
	defer cancel()

	result, err := h.productFlow.CreateProduct(ctx, &req)
	if err != nil {
		if businessflow.IsMissingProductFields(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields", "MISSING_FIELDS", businessflow.MissingProductFields(&req))
		}
		return h.failure(c, err, "Failed to register product", "CREATE_PRODUCT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Product registered successfully", result)
}

// ListProducts returns the whole catalog
// @Summary List Products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProductDTO} "Products"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /products [get]
func (h *ProductHandler) ListProducts(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/products")
	defer cancel()

	result, err := h.productFlow.ListProducts(ctx)
	if err != nil {
		return h.failure(c, err, "Failed to list products", "LIST_PRODUCTS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Products retrieved successfully", result)
}

// ExportProducts downloads the catalog as a spreadsheet
// @Summary Export Products
// @Tags Products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {string} string "XLSX file"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /products/export [get]
func (h *ProductHandler) ExportProducts(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/products/export")
	defer cancel()

	filename, data, err := h.productFlow.ExportProducts(ctx)
	if err != nil {
		return h.failure(c, err, "Failed to generate Excel file", "EXPORT_FAILED")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(data)
}
