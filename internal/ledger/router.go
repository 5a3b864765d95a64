package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tinybank/backend/internal/models"
)

// TransferPath names the route a transfer request took.
type TransferPath string

const (
	PathIntraUser TransferPath = "INTRA_USER"
	PathInterUser TransferPath = "INTER_USER"
)

// TransferResult describes a completed transfer.
type TransferResult struct {
	TransactionID      uuid.UUID    `json:"transactionId"`
	Path               TransferPath `json:"path"`
	ProviderAccountID  uuid.UUID    `json:"senderAccountId"`
	RecipientAccountID uuid.UUID    `json:"recipientAccountId"`
}

// TransferRouter dispatches transfer requests either through one user's own
// accounts or across two users. Atomicity is left entirely to Account.TransferTo.
type TransferRouter struct {
	ledger *Ledger
}

func NewTransferRouter(l *Ledger) *TransferRouter {
	return &TransferRouter{ledger: l}
}

func (r *TransferRouter) Process(req models.TransferRequest) (TransferResult, error) {
	res := TransferResult{
		ProviderAccountID:  req.ProviderAccountID,
		RecipientAccountID: req.RecipientAccountID,
	}

	var (
		txID uuid.UUID
		err  error
	)
	if req.IsIntraUser() {
		res.Path = PathIntraUser
		txID, err = r.processSameUser(req)
	} else {
		res.Path = PathInterUser
		txID, err = r.processBetweenUsers(req)
	}
	if err != nil {
		return TransferResult{}, err
	}

	res.TransactionID = txID
	return res, nil
}

func (r *TransferRouter) processSameUser(req models.TransferRequest) (uuid.UUID, error) {
	user, err := r.lookup(req.ProviderKey)
	if err != nil {
		return uuid.Nil, err
	}

	return r.ledger.TransferBetweenOwnAccounts(user, req.Amount, req.ProviderAccountID, req.RecipientAccountID)
}

func (r *TransferRouter) processBetweenUsers(req models.TransferRequest) (uuid.UUID, error) {
	provider, err := r.lookup(req.ProviderKey)
	if err != nil {
		return uuid.Nil, err
	}
	recipient, err := r.lookup(req.RecipientKey)
	if err != nil {
		return uuid.Nil, err
	}

	for _, u := range []models.User{provider, recipient} {
		if u.IsInactive() {
			return uuid.Nil, fmt.Errorf("%w: key=%s", ErrUserInactive, models.MaskKey(u.Key))
		}
	}

	from, err := r.ledger.FindAccount(provider, req.ProviderAccountID)
	if err != nil {
		return uuid.Nil, err
	}
	to, err := r.ledger.FindAccount(recipient, req.RecipientAccountID)
	if err != nil {
		return uuid.Nil, err
	}

	return from.TransferTo(req.Amount, to)
}

func (r *TransferRouter) lookup(key string) (models.User, error) {
	u, ok := r.ledger.users.Get(key)
	if !ok {
		return models.User{}, fmt.Errorf("%w: key=%s", ErrUserNotFound, models.MaskKey(key))
	}
	return u, nil
}
