package repository

import (
	"context"
	"fmt"
	"time"

	"fixify/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EarningsRepository is the provider earnings ledger.
type EarningsRepository struct {
	db *gorm.DB
}

func NewEarningsRepository(db *gorm.DB) *EarningsRepository {
	return &EarningsRepository{db: db}
}

type earningModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	ProviderID       int64     `gorm:"column:provider_id;not null;index"`
	ServiceRequestID int64     `gorm:"column:service_request_id;not null;uniqueIndex"`
	ServiceName      string    `gorm:"column:service_name;not null;index"`
	TotalAmount      float64   `gorm:"column:total_amount;not null"`
	Commission       float64   `gorm:"column:commission;not null"`
	ProviderEarnings float64   `gorm:"column:provider_earnings;not null"`
	Balance          float64   `gorm:"column:balance;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
}

func (earningModel) TableName() string { return "provider_earnings" }

type withdrawalModel struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProviderID       int64     `gorm:"column:provider_id;not null;index"`
	Amount           float64   `gorm:"column:amount;not null"`
	RemainingBalance float64   `gorm:"column:remaining_balance;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (withdrawalModel) TableName() string { return "withdrawals" }

func (w *withdrawalModel) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func toDomainEarning(m earningModel) domain.ProviderEarning {
	return domain.ProviderEarning{
		ID:               m.ID,
		ProviderID:       m.ProviderID,
		ServiceRequestID: m.ServiceRequestID,
		ServiceName:      m.ServiceName,
		TotalAmount:      m.TotalAmount,
		Commission:       m.Commission,
		ProviderEarnings: m.ProviderEarnings,
		Balance:          m.Balance,
		CreatedAt:        m.CreatedAt,
	}
}

func toDomainEarnings(rows []earningModel) []domain.ProviderEarning {
	out := make([]domain.ProviderEarning, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainEarning(m))
	}
	return out
}

func toDomainWithdrawal(m withdrawalModel) domain.Withdrawal {
	return domain.Withdrawal{
		ID:               m.ID.String(),
		ProviderID:       m.ProviderID,
		Amount:           m.Amount,
		RemainingBalance: m.RemainingBalance,
		CreatedAt:        m.CreatedAt,
	}
}

// insertEarning appends a ledger entry using the caller's transaction.
func insertEarning(tx *gorm.DB, e *domain.ProviderEarning) error {
	m := earningModel{
		ProviderID:       e.ProviderID,
		ServiceRequestID: e.ServiceRequestID,
		ServiceName:      e.ServiceName,
		TotalAmount:      e.TotalAmount,
		Commission:       e.Commission,
		ProviderEarnings: e.ProviderEarnings,
		Balance:          e.ProviderEarnings,
	}
	if err := tx.Create(&m).Error; err != nil {
		return err
	}
	*e = toDomainEarning(m)
	return nil
}

// ListByProvider returns a provider's entries oldest first.
func (r *EarningsRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.ProviderEarning, error) {
	var rows []earningModel
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainEarnings(rows), nil
}

func (r *EarningsRepository) ListAll(ctx context.Context) ([]domain.ProviderEarning, error) {
	var rows []earningModel
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEarnings(rows), nil
}

func (r *EarningsRepository) GetByRequestID(ctx context.Context, requestID int64) (*domain.ProviderEarning, error) {
	var m earningModel
	if err := r.db.WithContext(ctx).Where("service_request_id = ?", requestID).First(&m).Error; err != nil {
		return nil, translate(err, "earnings entry")
	}
	e := toDomainEarning(m)
	return &e, nil
}

// Withdraw takes amount out of the provider's entries, oldest first. The
// provider's rows stay locked for the whole transaction and every decrement
// is conditional on the balance it was computed from, so two withdrawals for
// the same provider can never spend the same money.
func (r *EarningsRepository) Withdraw(ctx context.Context, providerID int64, amount decimal.Decimal) (*domain.Withdrawal, error) {
	var out withdrawalModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []earningModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("provider_id = ?", providerID).
			Order("created_at asc, id asc").
			Find(&rows).Error
		if err != nil {
			return err
		}

		entries := toDomainEarnings(rows)
		deductions, err := domain.AllocateWithdrawal(entries, amount)
		if err != nil {
			return err
		}

		byID := make(map[int64]float64, len(rows))
		for _, m := range rows {
			byID[m.ID] = m.Balance
		}

		for _, d := range deductions {
			res := tx.Model(&earningModel{}).
				Where("id = ? AND balance = ?", d.EntryID, byID[d.EntryID]).
				Update("balance", d.NewBalance.InexactFloat64())
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("%w: balance changed during withdrawal, retry", domain.ErrConflict)
			}
		}

		out = withdrawalModel{
			ProviderID:       providerID,
			Amount:           amount.InexactFloat64(),
			RemainingBalance: domain.TotalBalance(entries).Sub(amount).InexactFloat64(),
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, err
	}

	w := toDomainWithdrawal(out)
	return &w, nil
}

func (r *EarningsRepository) ListWithdrawals(ctx context.Context, providerID int64) ([]domain.Withdrawal, error) {
	var rows []withdrawalModel
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Withdrawal, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainWithdrawal(m))
	}
	return out, nil
}
