package rest

import (
	"fmt"
	"net/http"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/service"
	"github.com/abgdnv/storeadmin/pkg/web"
)

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FindOrders lists orders. q searches id, customer name and email; status narrows by status.
func (h *Handler) FindOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	offset, limit, ok := web.ParsePage(w, r, mLogger)
	if !ok {
		return
	}
	filter := model.OrderFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		Offset: offset,
		Limit:  limit,
	}
	mLogger.DebugContext(r.Context(), "Received request to find orders", "filter", filter)
	list, err := h.services.Orders.FindAll(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Orders not found", "Failed to fetch orders")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// CreateOrder places an order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto service.OrderDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	created, err := h.services.Orders.Create(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Order not found", "Failed to create order")
		return
	}
	mLogger.InfoContext(r.Context(), "Order created successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.services.Orders.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Order with ID %s not found", id), fmt.Sprintf("Failed to retrieve order with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var req statusRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update order status", "ID", id, "status", req.Status)
	updated, err := h.services.Orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Order with ID %s not found", id), fmt.Sprintf("Failed to update order with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Order status updated", "ID", id, "status", updated.Status)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}
