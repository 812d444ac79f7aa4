package membership

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RecordPayment(ctx context.Context, userID int64, amount float64, newExpiry time.Time) (string, error) {
	args := m.Called(ctx, userID, amount, newExpiry)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ApproveUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) SweepExpired(ctx context.Context) ([]*models.ExpiredMember, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ExpiredMember), args.Error(1)
}

func (m *RepoMock) ListPayments(ctx context.Context, userID int64, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *RepoMock) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMembership_RecordPayment(t *testing.T) {
	const uid = "a0000000-0000-0000-0000-000000000001"
	user := &models.User{ID: 42, UID: uid}

	tests := []struct {
		name       string
		amount     float64
		setupMocks func(repo *RepoMock, cache *CacheMock)
		wantErr    error
	}{
		{
			name:   "success payment",
			amount: 500,
			setupMocks: func(repo *RepoMock, cache *CacheMock) {
				repo.On("GetUserByUID", mock.Anything, uid).Return(user, nil).Once()
				repo.On("RecordPayment", mock.Anything, int64(42), 500.0, mock.Anything).
					Return("receipt-1", nil).Once()
				cache.On("Invalidate", "profile:42").Return(nil).Once()
			},
		},
		{
			name:       "zero amount rejected",
			amount:     0,
			setupMocks: func(repo *RepoMock, cache *CacheMock) {},
			wantErr:    ErrInvalidAmount,
		},
		{
			name:       "negative amount rejected",
			amount:     -10,
			setupMocks: func(repo *RepoMock, cache *CacheMock) {},
			wantErr:    ErrInvalidAmount,
		},
		{
			name:   "storage error wrapped as payment failure",
			amount: 500,
			setupMocks: func(repo *RepoMock, cache *CacheMock) {
				repo.On("GetUserByUID", mock.Anything, uid).Return(user, nil).Once()
				repo.On("RecordPayment", mock.Anything, int64(42), 500.0, mock.Anything).
					Return("", errors.New("tx aborted")).Once()
			},
			wantErr: ErrPaymentFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := New(repo, cache, NewNoopLogger())

			res, err := svc.RecordPayment(context.Background(), uid, tt.amount)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "receipt-1", res.Receipt)
				// Политика продления: шесть месяцев от момента платежа.
				wantExpiry := time.Now().AddDate(0, 6, 0)
				assert.WithinDuration(t, wantExpiry, res.NewExpiryDate, time.Minute)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestMembership_Approve(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ApproveUser", mock.Anything, int64(7)).Return(nil).Twice()
	cache.On("Invalidate", "profile:7").Return(nil).Twice()
	svc := New(repo, cache, NewNoopLogger())

	// Повторное одобрение не является ошибкой.
	assert.NoError(t, svc.Approve(context.Background(), 7))
	assert.NoError(t, svc.Approve(context.Background(), 7))
	repo.AssertExpectations(t)
}

func TestMembership_Sweep(t *testing.T) {
	swept := []*models.ExpiredMember{
		{ID: 1, Username: "anbu", Email: "anbu@example.com"},
		{ID: 2, Username: "kavya", Email: "kavya@example.com"},
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("SweepExpired", mock.Anything).Return(swept, nil).Once()
	cache.On("Invalidate", "profile:1").Return(nil).Once()
	cache.On("Invalidate", "profile:2").Return(nil).Once()
	svc := New(repo, cache, NewNoopLogger())

	got, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestMembership_GetMembershipStatus(t *testing.T) {
	const uid = "b0000000-0000-0000-0000-000000000002"
	past := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 1, 0)

	tests := []struct {
		name string
		user *models.User
		want string
	}{
		{
			name: "неодобренная анкета — Pending",
			user: &models.User{UID: uid, IsApproved: false},
			want: models.StatusPending,
		},
		{
			name: "активная анкета — Active",
			user: &models.User{UID: uid, IsApproved: true, Status: models.StatusActive, ExpiryDate: &future},
			want: models.StatusActive,
		},
		{
			name: "просроченная активная читается как Expired",
			user: &models.User{UID: uid, IsApproved: true, Status: models.StatusActive, ExpiryDate: &past},
			want: models.StatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetUserByUID", mock.Anything, uid).Return(tt.user, nil).Once()
			svc := New(repo, new(CacheMock), NewNoopLogger())

			got, err := svc.GetMembershipStatus(context.Background(), uid)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
