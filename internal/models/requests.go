package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BirthdateLayout is the accepted format of CreateUserRequest.Birthdate.
const BirthdateLayout = "2006-01-02"

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=140" example:"John Doe"`
	Key       string `json:"ccNumber" validate:"required,min=4,max=64" example:"4111111111111111"`
	Birthdate string `json:"birthdate" validate:"required,datetime=2006-01-02" example:"1990-04-21"`
}

// TransferRequestBody is the body of POST /transactions.
type TransferRequestBody struct {
	SenderKey          string          `json:"senderId" validate:"required" example:"4111111111111111"`
	SenderAccountID    uuid.UUID       `json:"senderAccountId" validate:"required" swaggertype:"string" example:"6a3c1b7e-0a51-4f4c-8e5a-3f64e1d1c0de"`
	RecipientKey       string          `json:"recipientId" validate:"required" example:"5500000000000004"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId" validate:"required" swaggertype:"string" example:"9b2c5a52-1d35-4a44-9d7c-55b2b1c9f0aa"`
	Amount             decimal.Decimal `json:"amount" validate:"required,decimal_gt0" swaggertype:"string" example:"25.50"`
}

// ToTransferRequest maps the wire body onto the ledger request.
func (b TransferRequestBody) ToTransferRequest() TransferRequest {
	return TransferRequest{
		Amount:             b.Amount,
		ProviderKey:        b.SenderKey,
		ProviderAccountID:  b.SenderAccountID,
		RecipientKey:       b.RecipientKey,
		RecipientAccountID: b.RecipientAccountID,
	}
}
