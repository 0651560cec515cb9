package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// GET /order
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	SuccessJSON(w, orders)
}

// POST /order
// 使用者不存在或已有未付款訂單時回 404
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderCreateDTO
	if err := decodeBody(r, &req); err != nil || req.GetUserID() == "" {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	order, err := h.orderService.Create(r.Context(), req.GetUserID())
	writeResult(w, r, order, err)
}

// PUT /order
// 只有未付款訂單可以轉換
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderPayDTO
	if err := decodeBody(r, &req); err != nil || req.OrderID == "" || req.IsPaid == nil {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	order, err := h.orderService.PayOrder(r.Context(), req.OrderID, *req.IsPaid)
	writeResult(w, r, order, err)
}

// GET /order/{userId}
func (h *OrderHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.RetrieveActiveByUser(r.Context(), chi.URLParam(r, constants.PathUserID))
	writeResult(w, r, order, err)
}

// GET /order/{userId}/history
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.RetrievePaidByUser(r.Context(), chi.URLParam(r, constants.PathUserID))
	if err != nil {
		internalError(w, r, err)
		return
	}
	SuccessJSON(w, orders)
}
