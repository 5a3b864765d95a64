package ledger

import "errors"

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("transfer within the same account")
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrUserInactive      = errors.New("user inactive")
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrTransactionNotFound = errors.New("transaction not found")
)
