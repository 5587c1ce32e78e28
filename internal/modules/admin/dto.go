package admin

import "fixify/internal/domain"

type VerifyProviderRequest struct {
	ProviderID int64  `json:"providerId" validate:"required,gt=0"`
	Status     string `json:"status" validate:"required,oneof=Approved Rejected"`
}

type ProviderFilter struct {
	Status string `form:"status"`
}

// Stats is the dashboard overview.
type Stats struct {
	Users            map[domain.UserRole]int64      `json:"users"`
	Requests         map[domain.RequestStatus]int64 `json:"requests"`
	PendingProviders int64                          `json:"pendingProviders"`
	TotalRevenue     float64                        `json:"totalRevenue"`
	TotalCommission  float64                        `json:"totalCommission"`
}
