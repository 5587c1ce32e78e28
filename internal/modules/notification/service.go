package notification

import (
	"context"
	"fmt"
	"log"

	"fixify/internal/domain"
)

type Service struct {
	repo   Repository
	pusher Pusher
}

// NewService wires persistence and live push. pusher may be nil.
func NewService(repo Repository, pusher Pusher) *Service {
	return &Service{repo: repo, pusher: pusher}
}

func (s *Service) notify(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification_failed user_id=%d type=%s error=%q", n.UserID, n.Type, err.Error())
		return err
	}
	if s.pusher != nil {
		s.pusher.SendToUser(n.UserID, &Event{Type: EventNotification, Payload: n})
	}
	return nil
}

func requestRef(r *domain.ServiceRequest) *int64 {
	id := r.ID
	return &id
}

// RequestCreated tells every matching provider about a new job.
func (s *Service) RequestCreated(ctx context.Context, r *domain.ServiceRequest, providerIDs []int64) error {
	var firstErr error
	for _, id := range providerIDs {
		err := s.notify(ctx, &domain.Notification{
			UserID:    id,
			Type:      domain.NotifRequestCreated,
			Title:     "New service request",
			Message:   fmt.Sprintf("A client needs %s at %s.", r.ServiceName, r.Location),
			RequestID: requestRef(r),
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Service) RequestAccepted(ctx context.Context, r *domain.ServiceRequest) error {
	msg := fmt.Sprintf("Your %s request was accepted.", r.ServiceName)
	if r.Provider != nil {
		msg = fmt.Sprintf("%s accepted your %s request.", r.Provider.Name, r.ServiceName)
	}
	return s.notify(ctx, &domain.Notification{
		UserID:    r.ClientID,
		Type:      domain.NotifRequestAccepted,
		Title:     "Request accepted",
		Message:   msg,
		RequestID: requestRef(r),
	})
}

func (s *Service) RequestCompleted(ctx context.Context, r *domain.ServiceRequest) error {
	return s.notify(ctx, &domain.Notification{
		UserID:    r.ClientID,
		Type:      domain.NotifRequestCompleted,
		Title:     "Job completed",
		Message:   fmt.Sprintf("Your %s job is done. Total due: %.2f.", r.ServiceName, r.TotalAmount),
		RequestID: requestRef(r),
	})
}

func (s *Service) RequestPaid(ctx context.Context, r *domain.ServiceRequest) error {
	if r.ProviderID == nil {
		return nil
	}
	return s.notify(ctx, &domain.Notification{
		UserID:    *r.ProviderID,
		Type:      domain.NotifRequestPaid,
		Title:     "Payment received",
		Message:   fmt.Sprintf("You earned %.2f for %s.", r.ProviderEarnings, r.ServiceName),
		RequestID: requestRef(r),
	})
}

func (s *Service) RequestRated(ctx context.Context, r *domain.ServiceRequest) error {
	if r.ProviderID == nil || r.Rating == nil {
		return nil
	}
	return s.notify(ctx, &domain.Notification{
		UserID:    *r.ProviderID,
		Type:      domain.NotifRequestRated,
		Title:     "New rating",
		Message:   fmt.Sprintf("A client rated your %s job %d/5.", r.ServiceName, *r.Rating),
		RequestID: requestRef(r),
	})
}

func (s *Service) ProviderVerified(ctx context.Context, provider *domain.User) error {
	n := &domain.Notification{UserID: provider.ID}
	switch provider.VerificationStatus {
	case domain.VerificationApproved:
		n.Type = domain.NotifVerificationApproved
		n.Title = "Account approved"
		n.Message = "You can now accept service requests."
	case domain.VerificationRejected:
		n.Type = domain.NotifVerificationRejected
		n.Title = "Account rejected"
		n.Message = "Your provider application was rejected."
	default:
		return nil
	}
	return s.notify(ctx, n)
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, userID, id int64) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}
