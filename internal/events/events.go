// Package events publishes ledger mutations to an external broker. Publishing
// happens after a mutation has been applied and never rolls it back.
package events

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinybank/backend/internal/config"
	"go.uber.org/zap"
)

type EventType string

const (
	EventDeposit    EventType = "DEPOSIT"
	EventWithdrawal EventType = "WITHDRAWAL"
	EventTransfer   EventType = "TRANSFER"
)

// LedgerEvent is the payload published for every successful mutation.
type LedgerEvent struct {
	Type                  EventType       `json:"type"`
	TransactionID         uuid.UUID       `json:"transactionId"`
	AccountID             uuid.UUID       `json:"accountId"`
	CounterpartyAccountID *uuid.UUID      `json:"counterpartyAccountId,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	BalanceAfter          decimal.Decimal `json:"balanceAfter"`
	OccurredAt            time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured or
// the configured one is unreachable at startup.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LedgerEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

// Connect builds the publisher selected by cfg.Driver. Broker failures at
// startup degrade to a NopPublisher instead of failing the server.
func Connect(cfg config.EventsConfig, rdb *redis.Client, log *zap.Logger) Publisher {
	switch cfg.Driver {
	case config.EventsDriverRedis:
		if rdb == nil {
			log.Warn("events driver is redis but redis is unavailable, events disabled")
			return NopPublisher{}
		}
		log.Info("publishing ledger events to redis", zap.String("list", cfg.RedisList))
		return NewRedisPublisher(rdb, cfg.RedisList)

	case config.EventsDriverAMQP:
		p, err := NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
		if err != nil {
			log.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
			return NopPublisher{}
		}
		log.Info("publishing ledger events to rabbitmq", zap.String("exchange", cfg.Exchange))
		return p

	default:
		return NopPublisher{}
	}
}
