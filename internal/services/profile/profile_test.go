package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
	"github.com/kalyanamapp/matrimony-backend/internal/search"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *RepoMock) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *RepoMock) AddProfileView(ctx context.Context, actorID, targetID int64) error {
	return m.Called(ctx, actorID, targetID).Error(0)
}

func (m *RepoMock) ToggleShortlist(ctx context.Context, actorID, targetID int64) (bool, error) {
	args := m.Called(ctx, actorID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) AddInterest(ctx context.Context, actorID, targetID int64) (bool, error) {
	args := m.Called(ctx, actorID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) ListShortlisted(ctx context.Context, actorID int64, limit, offset int) (int, []search.ProfileRow, error) {
	args := m.Called(ctx, actorID, limit, offset)
	rows, _ := args.Get(1).([]search.ProfileRow)
	return args.Int(0), rows, args.Error(2)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const actorUID = "e0000000-0000-0000-0000-000000000005"

var actor = &models.User{ID: 5, UID: actorUID, Gender: "Male"}

func targetUser() *models.User {
	future := time.Now().AddDate(0, 3, 0)
	return &models.User{
		ID:         10,
		Username:   "priya",
		Gender:     "Female",
		DOB:        time.Now().AddDate(-26, 0, 0),
		Religion:   "Hindu",
		IsApproved: true,
		Status:     models.StatusActive,
		ExpiryDate: &future,
	}
}

func TestProfile_GetProfile_RecordsView(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(actor, nil).Once()
	cache.On("Get", "profile:10", mock.Anything).Return(false, nil).Once()
	repo.On("GetUser", mock.Anything, int64(10)).Return(targetUser(), nil).Once()
	cache.On("Set", "profile:10", mock.Anything, cacheTTL).Return(nil).Once()
	repo.On("AddProfileView", mock.Anything, int64(5), int64(10)).Return(nil).Once()
	svc := New(repo, cache, NewNoopLogger())

	detail, err := svc.GetProfile(context.Background(), actorUID, 10)
	require.NoError(t, err)
	assert.Equal(t, "priya", detail.Username)
	assert.Equal(t, 26, detail.Age)
	assert.Equal(t, models.StatusActive, detail.Status)
	assert.Equal(t, "/static/images/profile-placeholder.png", detail.PhotoURL)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProfile_GetProfile_SelfViewNotRecorded(t *testing.T) {
	self := &models.User{ID: 10, UID: actorUID}
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(self, nil).Once()
	cache.On("Get", "profile:10", mock.Anything).Return(false, nil).Once()
	repo.On("GetUser", mock.Anything, int64(10)).Return(targetUser(), nil).Once()
	cache.On("Set", "profile:10", mock.Anything, cacheTTL).Return(nil).Once()
	svc := New(repo, cache, NewNoopLogger())

	_, err := svc.GetProfile(context.Background(), actorUID, 10)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "AddProfileView", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_GetProfile_ViewFailureDoesNotBlock(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(actor, nil).Once()
	cache.On("Get", "profile:10", mock.Anything).Return(false, nil).Once()
	repo.On("GetUser", mock.Anything, int64(10)).Return(targetUser(), nil).Once()
	cache.On("Set", "profile:10", mock.Anything, cacheTTL).Return(nil).Once()
	repo.On("AddProfileView", mock.Anything, int64(5), int64(10)).
		Return(assert.AnError).Once()
	svc := New(repo, cache, NewNoopLogger())

	detail, err := svc.GetProfile(context.Background(), actorUID, 10)
	require.NoError(t, err)
	assert.NotNil(t, detail)
}

func TestProfile_GetProfile_CacheHitSkipsStorage(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(actor, nil).Once()
	cache.On("Get", "profile:10", mock.Anything).Return(true, nil).Once()
	repo.On("AddProfileView", mock.Anything, int64(5), int64(10)).Return(nil).Once()
	svc := New(repo, cache, NewNoopLogger())

	_, err := svc.GetProfile(context.Background(), actorUID, 10)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestProfile_ToggleShortlist(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(actor, nil).Twice()
	repo.On("ToggleShortlist", mock.Anything, int64(5), int64(10)).Return(true, nil).Once()
	repo.On("ToggleShortlist", mock.Anything, int64(5), int64(10)).Return(false, nil).Once()
	svc := New(repo, new(CacheMock), NewNoopLogger())

	added, err := svc.ToggleShortlist(context.Background(), actorUID, 10)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.ToggleShortlist(context.Background(), actorUID, 10)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestProfile_ExpressInterest_Idempotent(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(actor, nil).Twice()
	repo.On("AddInterest", mock.Anything, int64(5), int64(10)).Return(true, nil).Once()
	repo.On("AddInterest", mock.Anything, int64(5), int64(10)).Return(false, nil).Once()
	svc := New(repo, new(CacheMock), NewNoopLogger())

	created, err := svc.ExpressInterest(context.Background(), actorUID, 10)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.ExpressInterest(context.Background(), actorUID, 10)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestProfile_Shortlisted(t *testing.T) {
	rows := []search.ProfileRow{
		{ID: 1, DOB: time.Now().AddDate(-25, 0, 0), CreatedAt: time.Now()},
		{ID: 2, DOB: time.Now().AddDate(-30, 0, 0), CreatedAt: time.Now()},
	}
	repo := new(RepoMock)
	repo.On("GetUserByUID", mock.Anything, actorUID).Return(actor, nil).Once()
	repo.On("ListShortlisted", mock.Anything, int64(5), 20, 0).Return(2, rows, nil).Once()
	svc := New(repo, new(CacheMock), NewNoopLogger())

	page, err := svc.Shortlisted(context.Background(), actorUID, search.Pages{})
	require.NoError(t, err)
	assert.Len(t, page.Profiles, 2)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}
