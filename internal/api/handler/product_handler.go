package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService}
}

// GET /product
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	SuccessJSON(w, products)
}

// GET /product/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.Retrieve(r.Context(), chi.URLParam(r, constants.PathID))
	writeResult(w, r, product, err)
}

// POST /product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductCreateDTO
	if err := decodeBody(r, &req); err != nil {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	product, err := h.productService.Create(r.Context(), req.Type, req.UnitPrice)
	writeResult(w, r, product, err)
}

// PUT /product, id 在 body
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductUpdateDTO
	if err := decodeBody(r, &req); err != nil || req.ID == "" {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	product, err := h.productService.Update(r.Context(), req.ID, req.Type, req.UnitPrice)
	writeResult(w, r, product, err)
}

// DELETE /product/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, constants.PathID)); err != nil {
		internalError(w, r, err)
		return
	}
	NoContent(w)
}
