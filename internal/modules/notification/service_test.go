package notification

import (
	"context"
	"errors"
	"testing"

	"fixify/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type recordingPusher struct {
	sent map[int64][]*Event
}

func (p *recordingPusher) SendToUser(userID int64, e *Event) {
	if p.sent == nil {
		p.sent = map[int64][]*Event{}
	}
	p.sent[userID] = append(p.sent[userID], e)
}

func TestService_RequestCreated_FansOut(t *testing.T) {
	repo := new(MockRepository)
	pusher := &recordingPusher{}
	svc := NewService(repo, pusher)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifRequestCreated && *n.RequestID == 10
	})).Return(nil).Times(2)

	r := &domain.ServiceRequest{ID: 10, ServiceName: "Plumbing", Location: "X"}
	require.NoError(t, svc.RequestCreated(context.Background(), r, []int64{3, 4}))

	repo.AssertExpectations(t)
	assert.Len(t, pusher.sent[3], 1)
	assert.Len(t, pusher.sent[4], 1)
	assert.Equal(t, EventNotification, pusher.sent[3][0].Type)
}

func TestService_RequestPaid_GoesToProvider(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	providerID := int64(7)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == providerID && n.Type == domain.NotifRequestPaid
	})).Return(nil).Once()

	r := &domain.ServiceRequest{ID: 1, ClientID: 2, ProviderID: &providerID, ProviderEarnings: 135}
	require.NoError(t, svc.RequestPaid(context.Background(), r))
	repo.AssertExpectations(t)
}

func TestService_NotPushedWhenStoreFails(t *testing.T) {
	repo := new(MockRepository)
	pusher := &recordingPusher{}
	svc := NewService(repo, pusher)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err := svc.RequestAccepted(context.Background(), &domain.ServiceRequest{ID: 1, ClientID: 2})
	assert.Error(t, err)
	assert.Empty(t, pusher.sent)
}

func TestService_ProviderVerified(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifVerificationRejected
	})).Return(nil).Once()

	p := &domain.User{ID: 5, Role: domain.RoleProvider, VerificationStatus: domain.VerificationRejected}
	require.NoError(t, svc.ProviderVerified(context.Background(), p))

	pending := &domain.User{ID: 5, Role: domain.RoleProvider, VerificationStatus: domain.VerificationPending}
	require.NoError(t, svc.ProviderVerified(context.Background(), pending))
	repo.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("ListByUser", mock.Anything, int64(1), true, 20).
		Return([]domain.Notification{{ID: 1}}, nil)
	repo.On("CountUnread", mock.Anything, int64(1)).Return(int64(1), nil)

	list, unread, err := svc.List(context.Background(), 1, true, 20)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), unread)
}
