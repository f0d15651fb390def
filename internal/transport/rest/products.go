package rest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abgdnv/storeadmin/internal/csvio"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/service"
	"github.com/abgdnv/storeadmin/pkg/web"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type bulkEditRequest struct {
	IDs             []uuid.UUID     `json:"ids"             validate:"required,min=1"`
	Category        string          `json:"category"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
	AdjustmentType  string          `json:"adjustmentType"  validate:"omitempty,oneof=percentage fixed"`
	Tags            string          `json:"tags"`
}

type bulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// FindProducts lists products matching the query filters.
func (h *Handler) FindProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	filter, ok := h.parseProductFilter(w, r)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find products", "filter", filter)
	list, err := h.services.Products.FindAll(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Products not found", "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.services.Products.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Product with ID %s not found", id), fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CreateProduct handles the creation of a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto service.ProductDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "name", dto.Name)
	created, err := h.services.Products.Create(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Product not found", "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto service.ProductDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	updated, err := h.services.Products.Update(r.Context(), id, dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Product with ID %s not found", id), fmt.Sprintf("Failed to update product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteProductByID deletes a product by its ID.
func (h *Handler) DeleteProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.services.Products.DeleteByID(r.Context(), id); err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Product with ID %s not found", id), fmt.Sprintf("Failed to delete product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// ImportProducts creates products from a CSV body. The mode query parameter selects the layout.
func (h *Handler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mode, err := csvio.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		mLogger.WarnContext(r.Context(), "Invalid import mode", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			mLogger.WarnContext(r.Context(), "Import file too large", "limit", tooLarge.Limit)
			web.RespondError(w, mLogger, http.StatusRequestEntityTooLarge, fmt.Sprintf("Import file exceeds %d bytes", tooLarge.Limit))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error reading import body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to import products", "mode", mode, "bytes", len(body))
	summary, err := h.services.Products.Import(r.Context(), mode, string(body))
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Product not found", "Failed to import products")
		return
	}
	mLogger.InfoContext(r.Context(), "Products imported", "created", summary.Created, "failed", len(summary.Failed))
	web.RespondJSON(w, mLogger, http.StatusOK, summary)
}

// ImportSample returns an example file for the fixed column import layout.
func (h *Handler) ImportSample(w http.ResponseWriter, r *http.Request) {
	web.RespondAttachment(w, h.loggerWithReqID(r), csvContentType, "sample-products.csv", []byte(csvio.SampleFixedCSV))
}

// ExportProducts downloads the products matching the query filters as CSV or XLSX.
func (h *Handler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	filter, ok := h.parseProductFilter(w, r)
	if !ok {
		return
	}
	format := service.ExportFormat(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = service.ExportCSV
	}

	var buf bytes.Buffer
	if err := h.services.Products.Export(r.Context(), filter, format, &buf); err != nil {
		respondServiceError(w, r, mLogger, err, "Products not found", "Failed to export products")
		return
	}

	contentType := csvContentType
	if format == service.ExportXLSX {
		contentType = xlsxContentType
	}
	web.RespondAttachment(w, mLogger, contentType, "products."+string(format), buf.Bytes())
	mLogger.InfoContext(r.Context(), "Products exported", "format", format)
}

// BulkEditProducts applies one directive to many products.
func (h *Handler) BulkEditProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req bulkEditRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	directive := model.BulkEditDirective{
		PriceAdjustment: req.PriceAdjustment,
		AdjustmentKind:  model.AdjustmentKind(req.AdjustmentType),
		AddTags:         service.ParseTagList(req.Tags),
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		c := model.Category(category)
		directive.Category = &c
	}

	mLogger.DebugContext(r.Context(), "Received request to bulk edit products", "count", len(req.IDs))
	result, err := h.services.Products.BulkEdit(r.Context(), req.IDs, directive)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Product not found", "Failed to bulk edit products")
		return
	}
	mLogger.InfoContext(r.Context(), "Products bulk edited", "updated", len(result.Updated))
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

// BulkDeleteProducts removes many products.
func (h *Handler) BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req bulkDeleteRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to bulk delete products", "count", len(req.IDs))
	result, err := h.services.Products.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Product not found", "Failed to bulk delete products")
		return
	}
	mLogger.InfoContext(r.Context(), "Products bulk deleted", "deleted", len(result.Deleted))
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

func (h *Handler) parseProductFilter(w http.ResponseWriter, r *http.Request) (model.ProductFilter, bool) {
	mLogger := h.loggerWithReqID(r)
	query := r.URL.Query()
	filter := model.ProductFilter{Query: query.Get("q")}

	for _, raw := range query["category"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name == "" || strings.EqualFold(name, "all") {
				continue
			}
			c, err := model.ParseCategory(name)
			if err != nil {
				web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid category: %s", name))
				return filter, false
			}
			filter.Categories = append(filter.Categories, c)
		}
	}

	var ok bool
	if filter.MinPrice, ok = web.ParseOptionalDecimal(w, r, mLogger, "minPrice"); !ok {
		return filter, false
	}
	if filter.MaxPrice, ok = web.ParseOptionalDecimal(w, r, mLogger, "maxPrice"); !ok {
		return filter, false
	}

	switch stock := model.StockFilter(strings.ToLower(query.Get("stock"))); stock {
	case "", model.StockAll, model.StockInStock, model.StockOutOfStock:
		filter.Stock = stock
	default:
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid stock filter: %s", stock))
		return filter, false
	}

	filter.Offset, filter.Limit, ok = web.ParsePage(w, r, mLogger)
	return filter, ok
}
