package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/tinybank/backend/internal/config"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/logger"
	"github.com/tinybank/backend/internal/models"
	"go.uber.org/zap"
)

const qrImageSize = 256

type AccountService struct {
	ledger *ledger.Ledger
	bank   config.LedgerConfig
	log    *zap.Logger
}

func NewAccountService(l *ledger.Ledger, bank config.LedgerConfig, log *zap.Logger) *AccountService {
	return &AccountService{
		ledger: l,
		bank:   bank,
		log:    log.Named("accounts"),
	}
}

// CreateAccount opens a zero balance account for the user and returns the
// updated user.
func (s *AccountService) CreateAccount(ctx context.Context, key string) (models.User, error) {
	u, err := s.ledger.Users().Update(key, s.ledger.AddAccount)
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("account created",
		zap.String("user", logger.MaskKey(key)),
		zap.Stringer("account_id", u.AccountIDs[len(u.AccountIDs)-1]))
	return u, nil
}

func (s *AccountService) GetBalance(key string, accountID uuid.UUID) (models.AccountBalance, error) {
	u, err := s.user(key)
	if err != nil {
		return models.AccountBalance{}, err
	}

	acc, err := s.ledger.FindAccount(u, accountID)
	if err != nil {
		return models.AccountBalance{}, err
	}

	return models.AccountBalance{AccountID: acc.ID(), UserKey: u.Key, Value: acc.Balance()}, nil
}

// GetAllBalances returns one balance per account, in the order the accounts
// were opened, read under a single set of read locks.
func (s *AccountService) GetAllBalances(key string) ([]models.AccountBalance, error) {
	u, err := s.user(key)
	if err != nil {
		return nil, err
	}

	accounts, err := s.ledger.UserAccounts(u)
	if err != nil {
		return nil, err
	}

	values := ledger.Balances(accounts...)
	out := make([]models.AccountBalance, len(accounts))
	for i, acc := range accounts {
		out[i] = models.AccountBalance{AccountID: acc.ID(), UserKey: u.Key, Value: values[i]}
	}
	return out, nil
}

// PaymentDetails is the content encoded in an account's payment QR code.
type PaymentDetails struct {
	AccountID uuid.UUID `json:"accountId"`
	Holder    string    `json:"holder"`
	Currency  string    `json:"currency"`
	BIC       string    `json:"bic"`
}

// PaymentQR renders a PNG QR code another user can scan to fill in a
// transfer to this account.
func (s *AccountService) PaymentQR(key string, accountID uuid.UUID) ([]byte, error) {
	u, err := s.user(key)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.FindAccount(u, accountID); err != nil {
		return nil, err
	}

	content, err := json.Marshal(PaymentDetails{
		AccountID: accountID,
		Holder:    u.Name,
		Currency:  s.bank.Currency,
		BIC:       s.bank.BIC,
	})
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(string(content), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(qrImageSize)); err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *AccountService) user(key string) (models.User, error) {
	u, ok := s.ledger.Users().Get(key)
	if !ok {
		return models.User{}, fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key))
	}
	return u, nil
}
