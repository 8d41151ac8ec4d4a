package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	"github.com/amirphl/restaurant-hub/models"
	"github.com/amirphl/restaurant-hub/repository"
	"github.com/amirphl/restaurant-hub/utils"
	"github.com/xuri/excelize/v2"
)

// ProductsExportFilename is the attachment name of the catalog export
const ProductsExportFilename = "products.xlsx"

const productsSheet = "products"

// ProductFlow handles the shared product catalog
type ProductFlow interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context) ([]dto.ProductDTO, error)
	ExportProducts(ctx context.Context) (string, []byte, error)
}

// ProductFlowImpl implements the catalog business flow
type ProductFlowImpl struct {
	productRepo repository.ProductRepository
	events      services.EventPublisher
}

// NewProductFlow creates a new product flow instance
func NewProductFlow(productRepo repository.ProductRepository, events services.EventPublisher) ProductFlow {
	return &ProductFlowImpl{
		productRepo: productRepo,
		events:      events,
	}
}

// MissingProductFields lists the required fields absent from req. An explicit
// zero price or quantity and an explicit false status count as present.
func MissingProductFields(req *dto.CreateProductRequest) []string {
	if req == nil {
		return []string{"name", "sku_code", "sector", "price", "quantity", "brand", "status"}
	}

	var missing []string
	check := func(name string, absent bool) {
		if absent {
			missing = append(missing, name)
		}
	}
	check("name", strings.TrimSpace(req.Name) == "")
	check("sku_code", strings.TrimSpace(req.SKUCode) == "")
	check("sector", strings.TrimSpace(req.Sector) == "")
	check("price", req.Price == nil)
	check("quantity", req.Quantity == nil)
	check("brand", strings.TrimSpace(req.Brand) == "")
	check("status", req.Status == nil)
	return missing
}

// CreateProduct adds a product to the catalog, stamping created_at in UTC
func (f *ProductFlowImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductDTO, error) {
	if missing := MissingProductFields(req); len(missing) > 0 {
		return nil, NewBusinessError("PRODUCT_VALIDATION_FAILED", "Product validation failed",
			fmt.Errorf("%w: %s", ErrMissingProductFields, strings.Join(missing, ", ")))
	}

	product := &models.Product{
		Name:             req.Name,
		SKUCode:          req.SKUCode,
		Sector:           req.Sector,
		Price:            *req.Price,
		PromotionalPrice: req.PromotionalPrice,
		Quantity:         *req.Quantity,
		Brand:            req.Brand,
		SupplierID:       req.SupplierID,
		Status:           *req.Status,
		Barcode:          req.Barcode,
		Cost:             req.Cost,
		UnitOfMeasure:    req.UnitOfMeasure,
		CreatedAt:        utils.UTCNow().Format(models.ProductTimestampLayout),
	}

	if err := f.productRepo.Save(ctx, product); err != nil {
		return nil, NewBusinessError("CREATE_PRODUCT_FAILED", "Create product failed", err)
	}

	result := ToProductDTO(*product)
	publish(ctx, f.events, services.EventProductCreated, product.UID, result)

	return &result, nil
}

// ListProducts returns the whole catalog ordered by uid
func (f *ProductFlowImpl) ListProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	products, err := f.productRepo.List(ctx, "uid ASC")
	if err != nil {
		return nil, NewBusinessError("LIST_PRODUCTS_FAILED", "List products failed", err)
	}

	result := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		result = append(result, ToProductDTO(*p))
	}
	return result, nil
}

// ExportProducts renders the catalog as an XLSX workbook with a single sheet
func (f *ProductFlowImpl) ExportProducts(ctx context.Context) (string, []byte, error) {
	products, err := f.ListProducts(ctx)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), productsSheet); err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	header := []any{"uid", "name", "sku_code", "sector", "price", "promotional_price", "quantity", "brand",
		"supplier_id", "status", "barcode", "cost", "unit_of_measure", "created_at"}
	if err := xl.SetSheetRow(productsSheet, "A1", &header); err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	for i, p := range products {
		record := []any{
			p.UID,
			p.Name,
			p.SKUCode,
			p.Sector,
			p.Price,
			cellValue(p.PromotionalPrice),
			p.Quantity,
			p.Brand,
			cellValue(p.SupplierID),
			p.Status,
			cellValue(p.Barcode),
			cellValue(p.Cost),
			cellValue(p.UnitOfMeasure),
			p.CreatedAt,
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(productsSheet, cellRef, &record); err != nil {
			return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return ProductsExportFilename, buf.Bytes(), nil
}

// cellValue turns an optional field into an empty cell when absent
func cellValue[T any](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}
