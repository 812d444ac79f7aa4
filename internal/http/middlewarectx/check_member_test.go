package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

type MembershipServiceMock struct {
	mock.Mock
}

func (m *MembershipServiceMock) GetMembershipStatus(ctx context.Context, userUID string) (string, error) {
	args := m.Called(ctx, userUID)
	return args.String(0), args.Error(1)
}

func TestMembershipStatusMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		userUID        string
		mockStatus     string
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "нет UID в контексте",
			userUID:        "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "ошибка при получении статуса",
			userUID:        "uid-1",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantCalled:     false,
		},
		{
			name:           "статус Pending не допускается",
			userUID:        "uid-1",
			mockStatus:     models.StatusPending,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "статус Expired не допускается",
			userUID:        "uid-1",
			mockStatus:     models.StatusExpired,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "активное членство пропускается дальше",
			userUID:        "uid-1",
			mockStatus:     models.StatusActive,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(MembershipServiceMock)
			if tt.userUID != "" {
				members.On("GetMembershipStatus", mock.Anything, tt.userUID).
					Return(tt.mockStatus, tt.mockErr).Once()
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.MembershipStatusMiddleware(logger, members)(next)

			req := httptest.NewRequest(http.MethodGet, "/profiles", nil)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			members.AssertExpectations(t)
		})
	}
}
