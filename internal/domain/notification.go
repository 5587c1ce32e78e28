package domain

import "time"

type NotificationType string

const (
	NotifRequestCreated       NotificationType = "request_created"
	NotifRequestAccepted      NotificationType = "request_accepted"
	NotifRequestCompleted     NotificationType = "request_completed"
	NotifRequestPaid          NotificationType = "request_paid"
	NotifRequestRated         NotificationType = "request_rated"
	NotifVerificationApproved NotificationType = "verification_approved"
	NotifVerificationRejected NotificationType = "verification_rejected"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	RequestID *int64           `json:"requestId,omitempty"`
	IsRead    bool             `json:"isRead"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
