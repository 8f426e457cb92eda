package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repositories bundles the tx-scoped repositories handed to an atomic unit.
type Repositories struct {
	Transactions  ITransactionRepository
	Subscriptions ISubscriptionRepository
	Payments      ISubscriptionPaymentRepository
	Plans         IPlanRepository
	Instruments   IInstrumentRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Transactions:  NewTransactionRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Payments:      NewSubscriptionPaymentRepository(db),
		Plans:         NewPlanRepository(db),
		Instruments:   NewInstrumentRepository(db),
	}
}

// TxManager runs a function as one atomic unit of work: every write inside the
// closure commits together or rolls back together. The gateway call happens
// inside the closure too, so an adapter fault unwinds the PROCESSING write.
type TxManager interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// IsUniqueViolation reports whether err is a store-level uniqueness rejection
// (SQLSTATE 23505), the backstop that closes the idempotency-key race.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
