package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
)

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
	lastReq     *createBooking.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.lastReq = req
	return m.executeFunc(ctx, req)
}

func doRequest(t *testing.T, uc *mockUseCase, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, time.UTC, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), "user-1", role))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	return rec
}

const validBody = `{"spaceId":"court-1","date":"2025-10-15","startTime":"10:00","durationHours":2,"paymentMethod":"card","cardToken":"tokn_test"}`

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{
			Booking: &domain.Booking{
				ID:            7,
				UserID:        req.UserID,
				SpaceID:       req.SpaceID,
				StartTime:     time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
				EndTime:       time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
				DurationHours: 2,
				TotalAmount:   60,
				Status:        domain.StatusConfirmed,
				PaymentMethod: domain.PaymentCard,
			},
			ChargeID: ptr.Ptr("chrg_test"),
		}, nil
	}}

	rec := doRequest(t, uc, "customer", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Booking.ID)
	assert.Equal(t, "10:00", resp.Booking.StartTime)
	assert.Equal(t, "12:00", resp.Booking.EndTime)
	assert.Equal(t, 60.0, resp.Booking.TotalAmount)
	assert.Equal(t, "chrg_test", *resp.ChargeID)

	assert.Equal(t, "user-1", uc.lastReq.UserID)
	assert.False(t, uc.lastReq.IsAdmin)
	assert.Equal(t, "10:00", uc.lastReq.StartTime.String())
}

func TestHandle_UserIDOverrideOnlyForAdmin(t *testing.T) {
	body := `{"userId":"someone-else","spaceId":"court-1","date":"2025-10-15","startTime":"10:00","durationHours":1,"paymentMethod":"cash"}`
	ok := func(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{Booking: &domain.Booking{ID: 1, UserID: req.UserID}}, nil
	}

	uc := &mockUseCase{executeFunc: ok}
	doRequest(t, uc, "customer", body)
	assert.Equal(t, "user-1", uc.lastReq.UserID)

	uc = &mockUseCase{executeFunc: ok}
	doRequest(t, uc, middleware.RoleAdmin, body)
	assert.Equal(t, "someone-else", uc.lastReq.UserID)
	assert.True(t, uc.lastReq.IsAdmin)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"malformed json", `{"spaceId":`, nil, http.StatusBadRequest, ""},
		{"unknown field", `{"court":"x"}`, nil, http.StatusBadRequest, ""},
		{"bad payment method", strings.Replace(validBody, `"card"`, `"bitcoin"`, 1), nil, http.StatusBadRequest, ""},
		{"bad date", strings.Replace(validBody, "2025-10-15", "15.10.2025", 1), nil, http.StatusBadRequest, ""},
		{"bad time", strings.Replace(validBody, "10:00", "25:99", 1), nil, http.StatusBadRequest, ""},
		{"policy", validBody, &createBooking.PolicyError{Reason: availability.ReasonPastClosing}, http.StatusUnprocessableEntity, "past_closing"},
		{"conflict", validBody, createBooking.ErrSlotNotAvailable, http.StatusConflict, ""},
		{"not found", validBody, createBooking.ErrResourceNotFound, http.StatusNotFound, ""},
		{"inactive", validBody, createBooking.ErrResourceInactive, http.StatusUnprocessableEntity, ""},
		{"invalid input", validBody, createBooking.ErrInvalidInput, http.StatusBadRequest, ""},
		{"internal", validBody, errors.New("db down"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{executeFunc: func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
				return nil, tt.err
			}}

			rec := doRequest(t, uc, "customer", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandle_Unauthenticated(t *testing.T) {
	h := NewHandler(&mockUseCase{}, time.UTC, logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
