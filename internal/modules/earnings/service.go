package earnings

import (
	"context"
	"log"

	"fixify/internal/domain"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary totals a provider's entries. Services are listed in the order
// they were first paid.
func (s *Service) Summary(ctx context.Context, caller *domain.User) (*Summary, error) {
	if !caller.IsApprovedProvider() {
		return nil, ErrNotProvider
	}

	entries, err := s.repo.ListByProvider(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	type acc struct{ earnings, balance decimal.Decimal }
	var order []string
	per := map[string]*acc{}
	total, balance := decimal.Zero, decimal.Zero

	for _, e := range entries {
		earned := decimal.NewFromFloat(e.ProviderEarnings)
		left := decimal.NewFromFloat(e.Balance)
		total = total.Add(earned)
		balance = balance.Add(left)

		a, ok := per[e.ServiceName]
		if !ok {
			a = &acc{}
			per[e.ServiceName] = a
			order = append(order, e.ServiceName)
		}
		a.earnings = a.earnings.Add(earned)
		a.balance = a.balance.Add(left)
	}

	out := &Summary{
		TotalEarnings:      total.InexactFloat64(),
		Balance:            balance.InexactFloat64(),
		EarningsPerService: make([]ServiceEarnings, 0, len(order)),
	}
	for _, name := range order {
		out.EarningsPerService = append(out.EarningsPerService, ServiceEarnings{
			ServiceName: name,
			Earnings:    per[name].earnings.InexactFloat64(),
			Balance:     per[name].balance.InexactFloat64(),
		})
	}
	return out, nil
}

// Withdraw pays out amount from the provider's balance, oldest entries first.
func (s *Service) Withdraw(ctx context.Context, caller *domain.User, amount float64) (*WithdrawResult, error) {
	if !caller.IsApprovedProvider() {
		return nil, ErrNotProvider
	}

	amt := decimal.NewFromFloat(amount)
	if !amt.IsPositive() {
		return nil, ErrInvalidAmount
	}

	w, err := s.repo.Withdraw(ctx, caller.ID, amt)
	if err != nil {
		return nil, err
	}

	log.Printf("withdrawal: provider_id=%d amount=%.2f remaining=%.2f withdrawal_id=%s",
		caller.ID, w.Amount, w.RemainingBalance, w.ID)

	return &WithdrawResult{
		Message:          "Withdrawal successful",
		WithdrawnAmount:  w.Amount,
		RemainingBalance: w.RemainingBalance,
		Withdrawal:       w,
	}, nil
}

func (s *Service) Withdrawals(ctx context.Context, caller *domain.User) ([]domain.Withdrawal, error) {
	if !caller.IsApprovedProvider() {
		return nil, ErrNotProvider
	}
	return s.repo.ListWithdrawals(ctx, caller.ID)
}

// Report aggregates every ledger entry across providers.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct{ total, commission, earnings decimal.Decimal }
	var order []string
	per := map[string]*acc{}
	revenue, commission := decimal.Zero, decimal.Zero

	for _, e := range entries {
		t := decimal.NewFromFloat(e.TotalAmount)
		c := decimal.NewFromFloat(e.Commission)
		revenue = revenue.Add(t)
		commission = commission.Add(c)

		a, ok := per[e.ServiceName]
		if !ok {
			a = &acc{}
			per[e.ServiceName] = a
			order = append(order, e.ServiceName)
		}
		a.total = a.total.Add(t)
		a.commission = a.commission.Add(c)
		a.earnings = a.earnings.Add(decimal.NewFromFloat(e.ProviderEarnings))
	}

	out := &Report{
		TotalRevenue:      revenue.InexactFloat64(),
		TotalCommission:   commission.InexactFloat64(),
		EarningsBreakdown: make([]ServiceRevenue, 0, len(order)),
	}
	for _, name := range order {
		a := per[name]
		out.EarningsBreakdown = append(out.EarningsBreakdown, ServiceRevenue{
			ServiceName:      name,
			TotalAmount:      a.total.InexactFloat64(),
			Commission:       a.commission.InexactFloat64(),
			ProviderEarnings: a.earnings.InexactFloat64(),
		})
	}
	return out, nil
}
