package earnings

import (
	"context"

	"fixify/internal/domain"

	"github.com/shopspring/decimal"
)

type Repository interface {
	ListByProvider(ctx context.Context, providerID int64) ([]domain.ProviderEarning, error)
	ListAll(ctx context.Context) ([]domain.ProviderEarning, error)
	Withdraw(ctx context.Context, providerID int64, amount decimal.Decimal) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, providerID int64) ([]domain.Withdrawal, error)
}
