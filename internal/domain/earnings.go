package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRate is the platform share of every settled request.
var CommissionRate = decimal.RequireFromString("0.10")

// MaxCharge bounds a single labour or parts charge.
const MaxCharge = 1_000_000_000.0

// ProviderEarning is one ledger entry, written exactly once per paid request.
type ProviderEarning struct {
	ID               int64     `json:"id"`
	ProviderID       int64     `json:"providerId"`
	ServiceRequestID int64     `json:"serviceRequestId"`
	ServiceName      string    `json:"serviceName"`
	TotalAmount      float64   `json:"totalAmount"`
	Commission       float64   `json:"commission"`
	ProviderEarnings float64   `json:"providerEarnings"`
	Balance          float64   `json:"balance"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Split divides a settled total into the platform commission and the
// provider's share. The commission is rounded to cents and the provider gets
// the remainder, so the two always add up to total.
func Split(total decimal.Decimal) (commission, earnings decimal.Decimal) {
	commission = total.Mul(CommissionRate).Round(2)
	earnings = total.Sub(commission)
	return commission, earnings
}

// NewSettlement builds the ledger entry for a paid request.
func NewSettlement(r *ServiceRequest) (*ProviderEarning, error) {
	if r.ProviderID == nil {
		return nil, fmt.Errorf("%w: request %d has no provider", ErrInvalidState, r.ID)
	}
	if math.IsInf(r.TotalAmount, 0) || math.IsNaN(r.TotalAmount) || r.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: request %d has an invalid total", ErrInvalidState, r.ID)
	}
	total := decimal.NewFromFloat(r.TotalAmount)
	commission, earnings := Split(total)

	return &ProviderEarning{
		ProviderID:       *r.ProviderID,
		ServiceRequestID: r.ID,
		ServiceName:      r.ServiceName,
		TotalAmount:      total.InexactFloat64(),
		Commission:       commission.InexactFloat64(),
		ProviderEarnings: earnings.InexactFloat64(),
		Balance:          earnings.InexactFloat64(),
	}, nil
}

// Deduction is the amount taken from a single ledger entry by a withdrawal.
type Deduction struct {
	EntryID    int64
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// TotalBalance sums the unwithdrawn balance of entries.
func TotalBalance(entries []ProviderEarning) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.Balance))
	}
	return sum
}

// AllocateWithdrawal takes amount from entries in the order given, draining
// each positive balance before moving to the next.
func AllocateWithdrawal(entries []ProviderEarning, amount decimal.Decimal) ([]Deduction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", ErrValidation)
	}
	if amount.GreaterThan(TotalBalance(entries)) {
		return nil, fmt.Errorf("%w: insufficient balance", ErrValidation)
	}

	remaining := amount
	var out []Deduction
	for _, e := range entries {
		if !remaining.IsPositive() {
			break
		}
		balance := decimal.NewFromFloat(e.Balance)
		if !balance.IsPositive() {
			continue
		}
		take := decimal.Min(balance, remaining)
		out = append(out, Deduction{
			EntryID:    e.ID,
			Amount:     take,
			NewBalance: balance.Sub(take),
		})
		remaining = remaining.Sub(take)
	}
	return out, nil
}

// Withdrawal records one successful payout request by a provider.
type Withdrawal struct {
	ID               string    `json:"id"`
	ProviderID       int64     `json:"providerId"`
	Amount           float64   `json:"amount"`
	RemainingBalance float64   `json:"remainingBalance"`
	CreatedAt        time.Time `json:"createdAt"`
}
