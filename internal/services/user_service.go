package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tinybank/backend/internal/audit"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/logger"
	"github.com/tinybank/backend/internal/models"
	"go.uber.org/zap"
)

type UserService struct {
	ledger *ledger.Ledger
	audit  *audit.Logger
	log    *zap.Logger
}

func NewUserService(l *ledger.Ledger, auditLogger *audit.Logger, log *zap.Logger) *UserService {
	return &UserService{
		ledger: l,
		audit:  auditLogger,
		log:    log.Named("users"),
	}
}

// CreateUser registers a new active user without accounts.
func (s *UserService) CreateUser(ctx context.Context, name, key string, birthdate time.Time) (models.User, error) {
	u := ledger.NewUser(name, key, birthdate)
	if !s.ledger.Users().Insert(u) {
		return models.User{}, fmt.Errorf("%w: key=%s", ledger.ErrUserAlreadyExists, logger.MaskKey(key))
	}

	s.log.Info("user created", zap.String("user", logger.MaskKey(key)), zap.Stringer("user_id", u.ID))
	s.audit.LogUser(logger.MaskKey(key), "CREATED")
	return u, nil
}

// DeactivateUser marks the user inactive. Deactivating twice is not an error.
func (s *UserService) DeactivateUser(ctx context.Context, key string) (models.User, error) {
	u, err := s.ledger.Users().Update(key, func(u models.User) (models.User, error) {
		return ledger.Deactivate(u), nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("user deactivated", zap.String("user", logger.MaskKey(key)))
	s.audit.LogUser(logger.MaskKey(key), "DEACTIVATED")
	return u, nil
}

func (s *UserService) GetUser(key string) (models.User, error) {
	u, ok := s.ledger.Users().Get(key)
	if !ok {
		return models.User{}, fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key))
	}
	return u, nil
}
