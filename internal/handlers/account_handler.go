package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tinybank/backend/internal/services"
)

type AccountHandler struct {
	service *services.AccountService
}

func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount opens an account
// @Summary Create account
// @Description Open a zero balance account for the user
// @Tags accounts
// @Produce json
// @Param key path string true "User key"
// @Success 201 {object} models.User
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.CreateAccount(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, u)
}

// GetBalance returns one account balance
// @Summary Get account balance
// @Tags accounts
// @Produce json
// @Param key path string true "User key"
// @Param accountId path string true "Account ID"
// @Success 200 {object} models.AccountBalance
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/accounts/{accountId}/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "accountId")
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(chi.URLParam(r, "key"), accountID)
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, balance)
}

// GetAllBalances returns every account balance of a user
// @Summary Get all balances
// @Tags accounts
// @Produce json
// @Param key path string true "User key"
// @Success 200 {array} models.AccountBalance
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/accounts/balance [get]
func (h *AccountHandler) GetAllBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.GetAllBalances(chi.URLParam(r, "key"))
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, balances)
}

// PaymentQR renders the payment QR code of an account
// @Summary Account payment QR code
// @Tags accounts
// @Produce png
// @Param key path string true "User key"
// @Param accountId path string true "Account ID"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/accounts/{accountId}/qr [get]
func (h *AccountHandler) PaymentQR(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "accountId")
	if !ok {
		return
	}

	img, err := h.service.PaymentQR(chi.URLParam(r, "key"), accountID)
	if err != nil {
		sendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
