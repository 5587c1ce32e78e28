package servicerequest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"fixify/internal/domain"
)

type CreateRequest struct {
	ServiceName string `json:"serviceName"`
	Location    string `json:"location"`
	Phone       string `json:"phone"`
}

// Charge is an amount of money sent by a provider. Numbers and numeric
// strings are accepted; anything else, including null, reads as 0.
type Charge float64

func (c *Charge) UnmarshalJSON(b []byte) error {
	*c = 0
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		*c = Charge(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			*c = Charge(f)
		}
	}
	return nil
}

// inRange reports whether c is a finite amount no larger than MaxCharge.
func (c Charge) inRange() bool {
	f := float64(c)
	return !math.IsNaN(f) && f <= domain.MaxCharge
}

type CompleteRequest struct {
	LabourCharge Charge `json:"labourCharge"`
	PartsCharge  Charge `json:"partsCharge"`
}

type RateRequest struct {
	Rating *int `json:"rating"`
}

type Bill struct {
	RequestID     int64                `json:"requestId"`
	ServiceName   string               `json:"serviceName"`
	Status        domain.RequestStatus `json:"status"`
	ProviderName  string               `json:"provider"`
	ProviderPhone string               `json:"providerPhone"`
	LabourCharge  float64              `json:"labourCharge"`
	PartsCharge   float64              `json:"partsCharge"`
	TotalAmount   float64              `json:"totalAmount"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}

type PayResult struct {
	Request *domain.ServiceRequest  `json:"request"`
	Earning *domain.ProviderEarning `json:"earning"`
}
