package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from the provider's account to the recipient's account.
type TransferRequest struct {
	Amount             decimal.Decimal
	ProviderKey        string
	ProviderAccountID  uuid.UUID
	RecipientKey       string
	RecipientAccountID uuid.UUID
}

// IsIntraUser reports whether both accounts belong to the same principal.
func (t TransferRequest) IsIntraUser() bool {
	return t.ProviderKey == t.RecipientKey
}

// OperationStatus is the outcome of a deposit or withdrawal.
type OperationStatus struct {
	Successful   bool   `json:"successful"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func SuccessStatus() OperationStatus {
	return OperationStatus{Successful: true}
}

func FailureStatus(message string) OperationStatus {
	return OperationStatus{Successful: false, ErrorMessage: message}
}

// IsFailure is the negation of Successful.
func (s OperationStatus) IsFailure() bool {
	return !s.Successful
}
