package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tinybank/backend/internal/models"
	"github.com/tinybank/backend/internal/services"
)

type UserHandler struct {
	service   *services.UserService
	validator *services.ValidationHelper
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// CreateUser registers a new user
// @Summary Create user
// @Description Register a new active user without accounts
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User to create"
// @Success 201 {object} models.User
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	birthdate, err := time.Parse(models.BirthdateLayout, req.Birthdate)
	if err != nil {
		services.SendErrorResponse(w, "Invalid birthdate", http.StatusBadRequest, nil)
		return
	}

	u, err := h.service.CreateUser(r.Context(), req.Name, req.Key, birthdate)
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, u)
}

// GetUser returns a user
// @Summary Get user
// @Tags users
// @Produce json
// @Param key path string true "User key"
// @Success 200 {object} models.User
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(chi.URLParam(r, "key"))
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, u)
}

// DeactivateUser deactivates a user
// @Summary Deactivate user
// @Description Mark a user inactive. Accounts and history stay readable.
// @Tags users
// @Produce json
// @Param key path string true "User key"
// @Success 200 {object} models.User
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/deactivate [patch]
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.DeactivateUser(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, u)
}
