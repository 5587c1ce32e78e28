package earnings

import "fixify/internal/domain"

type WithdrawRequest struct {
	Amount *float64 `json:"amount"`
}

type ServiceEarnings struct {
	ServiceName string  `json:"serviceName"`
	Earnings    float64 `json:"earnings"`
	Balance     float64 `json:"balance"`
}

// Summary is a provider's view of the ledger.
type Summary struct {
	TotalEarnings      float64           `json:"totalEarnings"`
	Balance            float64           `json:"balance"`
	EarningsPerService []ServiceEarnings `json:"earningsPerService"`
}

type WithdrawResult struct {
	Message          string             `json:"message"`
	WithdrawnAmount  float64            `json:"withdrawnAmount"`
	RemainingBalance float64            `json:"remainingBalance"`
	Withdrawal       *domain.Withdrawal `json:"withdrawal"`
}

type ServiceRevenue struct {
	ServiceName      string  `json:"serviceName"`
	TotalAmount      float64 `json:"totalAmount"`
	Commission       float64 `json:"commission"`
	ProviderEarnings float64 `json:"providerEarnings"`
}

// Report is the platform-wide revenue view for admins.
type Report struct {
	TotalRevenue      float64          `json:"totalRevenue"`
	TotalCommission   float64          `json:"totalCommission"`
	EarningsBreakdown []ServiceRevenue `json:"earningsBreakdown"`
}
