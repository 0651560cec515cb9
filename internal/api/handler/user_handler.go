package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{userService: userService}
}

// GET /user
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	SuccessJSON(w, users)
}

// GET /user/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Retrieve(r.Context(), chi.URLParam(r, constants.PathID))
	writeResult(w, r, user, err)
}

// POST /user, 同時建立第一張訂單
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateDTO
	if err := decodeBody(r, &req); err != nil {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	user, err := h.userService.Create(r.Context(), req.Name)
	writeResult(w, r, user, err)
}

// PUT /user, id 在 body
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UserUpdateDTO
	if err := decodeBody(r, &req); err != nil || req.ID == "" {
		ErrorJSON(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	user, err := h.userService.Update(r.Context(), req.ID, req.Name)
	writeResult(w, r, user, err)
}

// DELETE /user/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, constants.PathID)); err != nil {
		internalError(w, r, err)
		return
	}
	NoContent(w)
}
