package repository

import (
	"context"
	"strings"
	"time"

	"fixify/internal/domain"

	"gorm.io/gorm"
)

type ServiceRequestRepository struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

type serviceRequestModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	ClientID         int64     `gorm:"column:client_id;not null;index"`
	ServiceName      string    `gorm:"column:service_name;not null;index"`
	Status           string    `gorm:"column:status;not null;index"`
	ProviderID       *int64    `gorm:"column:provider_id;index"`
	Location         string    `gorm:"column:location;not null"`
	Phone            string    `gorm:"column:phone;not null"`
	LabourCharge     float64   `gorm:"column:labour_charge;not null"`
	PartsCharge      float64   `gorm:"column:parts_charge;not null"`
	TotalAmount      float64   `gorm:"column:total_amount;not null"`
	Commission       float64   `gorm:"column:commission;not null"`
	ProviderEarnings float64   `gorm:"column:provider_earnings;not null"`
	PaymentStatus    string    `gorm:"column:payment_status;not null"`
	Rating           *int      `gorm:"column:rating"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`

	Client   *userModel `gorm:"foreignKey:ClientID"`
	Provider *userModel `gorm:"foreignKey:ProviderID"`
}

func (serviceRequestModel) TableName() string { return "service_requests" }

func contactOf(m *userModel) *domain.UserContact {
	if m == nil {
		return nil
	}
	return toDomainUser(*m).Contact()
}

func toDomainRequest(m serviceRequestModel) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:               m.ID,
		ClientID:         m.ClientID,
		ServiceName:      m.ServiceName,
		Status:           domain.RequestStatus(m.Status),
		ProviderID:       m.ProviderID,
		Location:         m.Location,
		Phone:            m.Phone,
		LabourCharge:     m.LabourCharge,
		PartsCharge:      m.PartsCharge,
		TotalAmount:      m.TotalAmount,
		Commission:       m.Commission,
		ProviderEarnings: m.ProviderEarnings,
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		Rating:           m.Rating,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Client:           contactOf(m.Client),
		Provider:         contactOf(m.Provider),
	}
}

func toDomainRequests(rows []serviceRequestModel) []domain.ServiceRequest {
	out := make([]domain.ServiceRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRequest(m))
	}
	return out
}

func (r *ServiceRequestRepository) withContacts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Client").Preload("Provider")
}

func (r *ServiceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	m := serviceRequestModel{
		ClientID:      req.ClientID,
		ServiceName:   req.ServiceName,
		Status:        string(domain.RequestPending),
		Location:      req.Location,
		Phone:         req.Phone,
		PaymentStatus: string(domain.PaymentPending),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "service request")
	}
	*req = *toDomainRequest(m)
	return nil
}

func (r *ServiceRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	var m serviceRequestModel
	if err := r.withContacts(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "service request")
	}
	return toDomainRequest(m), nil
}

// ListPendingForServices returns unclaimed pending requests for any of the
// given service names, newest first.
func (r *ServiceRequestRepository) ListPendingForServices(ctx context.Context, serviceNames []string) ([]domain.ServiceRequest, error) {
	if len(serviceNames) == 0 {
		return []domain.ServiceRequest{}, nil
	}
	lowered := make([]string, 0, len(serviceNames))
	for _, n := range serviceNames {
		lowered = append(lowered, strings.ToLower(n))
	}

	var rows []serviceRequestModel
	err := r.withContacts(ctx).
		Where("status = ? AND provider_id IS NULL", string(domain.RequestPending)).
		Where("LOWER(service_name) IN ?", lowered).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

func (r *ServiceRequestRepository) ListByProvider(ctx context.Context, providerID int64, status domain.RequestStatus) ([]domain.ServiceRequest, error) {
	var rows []serviceRequestModel
	err := r.withContacts(ctx).
		Where("provider_id = ? AND status = ?", providerID, string(status)).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

func (r *ServiceRequestRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.ServiceRequest, error) {
	var rows []serviceRequestModel
	err := r.withContacts(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// List returns every request, or only those in status when it is set.
func (r *ServiceRequestRepository) List(ctx context.Context, status domain.RequestStatus) ([]domain.ServiceRequest, error) {
	q := r.withContacts(ctx)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var rows []serviceRequestModel
	if err := q.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// Accept claims a request for providerID. It reports false when the request
// was no longer pending and unclaimed at the moment of the update.
func (r *ServiceRequestRepository) Accept(ctx context.Context, id, providerID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&serviceRequestModel{}).
		Where("id = ? AND status = ? AND provider_id IS NULL", id, string(domain.RequestPending)).
		Updates(map[string]any{
			"status":      string(domain.RequestAccepted),
			"provider_id": providerID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Complete stores the final charges. It only matches a request that is
// accepted by providerID.
func (r *ServiceRequestRepository) Complete(ctx context.Context, id, providerID int64, labour, parts, total float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&serviceRequestModel{}).
		Where("id = ? AND provider_id = ? AND status = ?", id, providerID, string(domain.RequestAccepted)).
		Updates(map[string]any{
			"status":        string(domain.RequestCompleted),
			"labour_charge": labour,
			"parts_charge":  parts,
			"total_amount":  total,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Settle marks a completed request paid and records its ledger entry in one
// transaction. It reports false, and writes nothing, when the request was
// not completed and unpaid at the moment of the update.
func (r *ServiceRequestRepository) Settle(ctx context.Context, id int64, entry *domain.ProviderEarning) (bool, error) {
	settled := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&serviceRequestModel{}).
			Where("id = ? AND status = ? AND payment_status = ?",
				id, string(domain.RequestCompleted), string(domain.PaymentPending)).
			Updates(map[string]any{
				"status":            string(domain.RequestPaid),
				"payment_status":    string(domain.PaymentPaid),
				"commission":        entry.Commission,
				"provider_earnings": entry.ProviderEarnings,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := insertEarning(tx, entry); err != nil {
			return err
		}
		settled = true
		return nil
	})
	if err != nil {
		return false, translate(err, "earnings entry")
	}
	return settled, nil
}

// Rate sets the rating of a paid request owned by clientID, once.
func (r *ServiceRequestRepository) Rate(ctx context.Context, id, clientID int64, rating int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&serviceRequestModel{}).
		Where("id = ? AND client_id = ? AND status = ? AND rating IS NULL", id, clientID, string(domain.RequestPaid)).
		Update("rating", rating)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ServiceRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&serviceRequestModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.RequestStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.RequestStatus(row.Status)] = row.Count
	}
	return out, nil
}
