package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartItemHandler struct {
	cartService service.ICartService
}

func NewCartItemHandler(cartService service.ICartService) *CartItemHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartItemHandler{cartService: cartService}
}

// GET /cartItem
func (h *CartItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.cartService.ListAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	SuccessJSON(w, items)
}

// POST /cartItem/{userId}
// quantity 為 0 代表移除, 回 204
func (h *CartItemHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.CartItemUpsertDTO
	if err := decodeBody(r, &req); err != nil || req.ProductID == "" {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	userID := chi.URLParam(r, constants.PathUserID)
	if req.Quantity == 0 {
		removed, err := h.cartService.RemoveProductOfActiveOrder(r.Context(), req.ProductID, userID)
		switch {
		case err != nil:
			internalError(w, r, err)
		case !removed:
			ErrorJSON(w, http.StatusNotFound, msgNotFound)
		default:
			NoContent(w)
		}
		return
	}

	item, err := h.cartService.UpsertProductToActiveOrder(r.Context(), req.ProductID, userID, req.Quantity)
	writeResult(w, r, item, err)
}

// DELETE /cartItem/{userId}
func (h *CartItemHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req dto.CartItemDeleteDTO
	if err := decodeBody(r, &req); err != nil || req.ProductID == "" {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.cartService.DeleteProductOfActiveOrder(r.Context(), req.ProductID, chi.URLParam(r, constants.PathUserID)); err != nil {
		internalError(w, r, err)
		return
	}
	NoContent(w)
}

// GET /cartItem/{userId}
// 回傳 active order 的明細與總金額, 使用者不存在時為空購物車
func (h *CartItemHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.CalculateCart(r.Context(), chi.URLParam(r, constants.PathUserID))
	writeResult(w, r, summary, err)
}
