package domain

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestAccepted  RequestStatus = "Accepted"
	RequestCompleted RequestStatus = "Completed"
	RequestPaid      RequestStatus = "Paid"
)

// next holds the only legal forward step from each status.
var next = map[RequestStatus]RequestStatus{
	RequestPending:   RequestAccepted,
	RequestAccepted:  RequestCompleted,
	RequestCompleted: RequestPaid,
}

// CanTransition reports whether a request may move from one status to another.
// Status never regresses and never skips a step.
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	n, ok := next[s]
	return ok && n == to
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestCompleted, RequestPaid:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

type ServiceRequest struct {
	ID               int64         `json:"id"`
	ClientID         int64         `json:"clientId"`
	ServiceName      string        `json:"serviceName"`
	Status           RequestStatus `json:"status"`
	ProviderID       *int64        `json:"providerId"`
	Location         string        `json:"location"`
	Phone            string        `json:"phone"`
	LabourCharge     float64       `json:"labourCharge"`
	PartsCharge      float64       `json:"partsCharge"`
	TotalAmount      float64       `json:"totalAmount"`
	Commission       float64       `json:"commission"`
	ProviderEarnings float64       `json:"providerEarnings"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	Rating           *int          `json:"rating"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`

	Client   *UserContact `json:"client,omitempty"`
	Provider *UserContact `json:"provider,omitempty"`
}

func (r *ServiceRequest) IsOwnedBy(u *User) bool {
	return r != nil && u != nil && r.ClientID == u.ID
}

func (r *ServiceRequest) IsAssignedTo(u *User) bool {
	return r != nil && u != nil && r.ProviderID != nil && *r.ProviderID == u.ID
}

func (r *ServiceRequest) IsPaid() bool {
	return r.Status == RequestPaid || r.PaymentStatus == PaymentPaid
}

const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}
