package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tinybank/backend/internal/models"
	"github.com/tinybank/backend/internal/services"
)

type TransactionHandler struct {
	service   *services.TransactionService
	iso20022  *services.ISO20022Service
	validator *services.ValidationHelper
}

func NewTransactionHandler(service *services.TransactionService, iso20022 *services.ISO20022Service) *TransactionHandler {
	return &TransactionHandler{
		service:   service,
		iso20022:  iso20022,
		validator: services.NewValidationHelper(),
	}
}

// Deposit credits an account
// @Summary Deposit
// @Tags transactions
// @Produce json
// @Param key path string true "User key"
// @Param accountId path string true "Account ID"
// @Param amount query string true "Amount"
// @Success 200 {object} models.OperationStatus
// @Failure 400 {object} models.OperationStatus
// @Router /users/{key}/accounts/{accountId}/deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "accountId")
	if !ok {
		return
	}
	amount, ok := amountParam(w, r)
	if !ok {
		return
	}

	status := h.service.Deposit(r.Context(), chi.URLParam(r, "key"), accountID, amount)
	sendStatus(w, status)
}

// Withdraw debits an account
// @Summary Withdraw
// @Tags transactions
// @Produce json
// @Param key path string true "User key"
// @Param accountId path string true "Account ID"
// @Param amount query string true "Amount"
// @Success 200 {object} models.OperationStatus
// @Failure 400 {object} models.OperationStatus
// @Router /users/{key}/accounts/{accountId}/withdraw [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "accountId")
	if !ok {
		return
	}
	amount, ok := amountParam(w, r)
	if !ok {
		return
	}

	status := h.service.Withdraw(r.Context(), chi.URLParam(r, "key"), accountID, amount)
	sendStatus(w, status)
}

// SubmitTransfer moves money between two accounts
// @Summary Submit transfer
// @Description Transfer between two accounts of one user or of two users
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body models.TransferRequestBody true "Transfer"
// @Success 200 {object} ledger.TransferResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequestBody
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	res, err := h.service.SubmitTransfer(r.Context(), req.ToTransferRequest())
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, res)
}

// GetAccountHistory lists the entries of one account
// @Summary Account history
// @Tags transactions
// @Produce json
// @Param key path string true "User key"
// @Param accountId path string true "Account ID"
// @Success 200 {array} models.Entry
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/accounts/{accountId}/transactions [get]
func (h *TransactionHandler) GetAccountHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "accountId")
	if !ok {
		return
	}

	entries, err := h.service.GetAccountHistory(chi.URLParam(r, "key"), accountID)
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, entries)
}

// GetAllHistory lists the entries of every account of a user
// @Summary User history
// @Tags transactions
// @Produce json
// @Param key path string true "User key"
// @Success 200 {array} models.AccountHistory
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/transactions [get]
func (h *TransactionHandler) GetAllHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.GetAllHistory(chi.URLParam(r, "key"))
	if err != nil {
		sendError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, history)
}

// ExportPacs008 exports a transfer as ISO 20022 XML
// @Summary Export transfer as pacs.008
// @Tags iso20022
// @Produce xml
// @Param key path string true "User key"
// @Param accountId path string true "Account ID"
// @Param txId path string true "Transaction ID"
// @Success 200 {string} string "pacs.008.001.08 document"
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{key}/accounts/{accountId}/transactions/{txId}/pacs008 [get]
func (h *TransactionHandler) ExportPacs008(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "accountId")
	if !ok {
		return
	}
	txID, ok := uuidParam(w, r, "txId")
	if !ok {
		return
	}

	doc, err := h.iso20022.ExportTransfer(chi.URLParam(r, "key"), accountID, txID)
	if err != nil {
		sendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("X-Message-Type", services.Pacs008MessageType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

func sendStatus(w http.ResponseWriter, status models.OperationStatus) {
	code := http.StatusOK
	if status.IsFailure() {
		code = http.StatusBadRequest
	}
	services.SendJSON(w, code, status)
}
