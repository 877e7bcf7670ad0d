package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/dthlogistics/release-portal/internal/release"
	"github.com/dthlogistics/release-portal/internal/repository"
	mock_server "github.com/dthlogistics/release-portal/internal/server/mocks"
)

func newTestServer(t *testing.T) (*Server, *mock_server.MockLoadService, *mock_server.MockUserRepo, *mock_server.MockDocumentGenerator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := mock_server.NewMockLoadService(ctrl)
	mockUsers := mock_server.NewMockUserRepo(ctrl)
	mockDocs := mock_server.NewMockDocumentGenerator(ctrl)
	server := New(mockService, mockUsers, mockDocs, "UTC", zap.NewNop())
	return server, mockService, mockUsers, mockDocs
}

func testLoad() *repository.Load {
	return &repository.Load{
		ID:                42,
		LoadID:            "DTH-1A2B3C",
		PickupLocation:    "Manheim Pennsylvania",
		VehicleYear:       "2022",
		VehicleMake:       "Ford",
		VehicleModel:      "F-150",
		VinLast6:          "A12345",
		CarrierName:       "Roadrunner Transport",
		DriverName:        "Mike Stone",
		TruckPlate:        "TRK-001",
		TrailerPlate:      "TRL-002",
		PIN:               "482913",
		VerificationToken: "7f9c2f40-61a5-4ffb-9f0d-3d3a7b1c2e90",
		Status:            repository.StatusValid,
	}
}

func TestHandleCreateLoad(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(service *mock_server.MockLoadService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful creation",
			body: `{"pickupLocation":"Manheim Pennsylvania","vehicleMake":"Ford"}`,
			setupMocks: func(service *mock_server.MockLoadService) {
				service.EXPECT().
					CreateLoad(gomock.Any(), gomock.Any(), gomock.Nil()).
					DoAndReturn(func(_ context.Context, payload release.LoadPayload, _ *repository.User) (*repository.Load, error) {
						assert.Equal(t, "Manheim Pennsylvania", payload.PickupLocation)
						assert.Equal(t, "Ford", payload.VehicleMake)
						return testLoad(), nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"Load created successfully"`,
		},
		{
			name:           "malformed body",
			body:           `{not json`,
			setupMocks:     func(*mock_server.MockLoadService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Invalid request body"`,
		},
		{
			name: "validation failure surfaces the message",
			body: `{}`,
			setupMocks: func(service *mock_server.MockLoadService) {
				service.EXPECT().
					CreateLoad(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, &release.Error{
						Kind:    release.KindValidation,
						Status:  http.StatusBadRequest,
						Message: "pickupLocation is required",
					})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"pickupLocation is required"`,
		},
		{
			name: "untyped errors stay generic",
			body: `{"pickupLocation":"Adesa Boston"}`,
			setupMocks: func(service *mock_server.MockLoadService) {
				service.EXPECT().
					CreateLoad(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, errors.New("pq: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"Internal server error"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockService, _, _ := newTestServer(t)
			tc.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/loads", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			server.handleCreateLoad(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleVerifyGet(t *testing.T) {
	t.Run("sanitizes the dealer payload", func(t *testing.T) {
		server, mockService, _, _ := newTestServer(t)

		load := testLoad()
		createdBy := int64(7)
		load.CreatedBy = &createdBy
		dispatcherEmail := "dispatcher@dthlogistics.com"
		mockService.EXPECT().
			GetLoadByToken(gomock.Any(), load.VerificationToken).
			Return(&repository.LoadWithDispatcher{Load: *load, DispatcherEmail: &dispatcherEmail}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/verify/"+load.VerificationToken, nil)
		req = mux.SetURLVars(req, map[string]string{"token": load.VerificationToken})
		rr := httptest.NewRecorder()

		server.handleVerifyGet(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `"loadId":"DTH-1A2B3C"`)
		assert.Contains(t, body, `"pin":"482913"`)
		assert.Contains(t, body, `"status":"VALID"`)

		// Internal identity must never reach the dealer page.
		assert.NotContains(t, body, `"id":42`)
		assert.NotContains(t, body, "dispatcher@dthlogistics.com")
		assert.NotContains(t, body, `"createdBy"`)
	})

	t.Run("invalid token", func(t *testing.T) {
		server, mockService, _, _ := newTestServer(t)

		mockService.EXPECT().
			GetLoadByToken(gomock.Any(), "bogus").
			Return(nil, &release.Error{
				Kind:    release.KindNotFound,
				Status:  http.StatusNotFound,
				Message: "Invalid verification link",
			})

		req := httptest.NewRequest(http.MethodGet, "/api/verify/bogus", nil)
		req = mux.SetURLVars(req, map[string]string{"token": "bogus"})
		rr := httptest.NewRecorder()

		server.handleVerifyGet(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid verification link"}`, rr.Body.String())
	})
}

func TestHandleVerifyConfirm(t *testing.T) {
	token := "7f9c2f40-61a5-4ffb-9f0d-3d3a7b1c2e90"

	tests := []struct {
		name           string
		body           string
		setupMocks     func(service *mock_server.MockLoadService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful confirmation",
			body: `{"pin":"482913","confirmedBy":"Front Desk"}`,
			setupMocks: func(service *mock_server.MockLoadService) {
				service.EXPECT().
					ConfirmRelease(gomock.Any(), release.ConfirmRequest{
						Token:       token,
						PIN:         "482913",
						ConfirmedBy: "Front Desk",
					}).
					DoAndReturn(func(_ context.Context, _ release.ConfirmRequest) (*repository.Load, error) {
						load := testLoad()
						load.Status = repository.StatusUsed
						return load, nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"VEHICLE RELEASE CONFIRMED"`,
		},
		{
			name: "wrong pin",
			body: `{"pin":"000000"}`,
			setupMocks: func(service *mock_server.MockLoadService) {
				service.EXPECT().
					ConfirmRelease(gomock.Any(), gomock.Any()).
					Return(nil, &release.Error{
						Kind:    release.KindInvalidPin,
						Status:  http.StatusBadRequest,
						Message: "INVALID PIN",
					})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"INVALID PIN"`,
		},
		{
			name: "replayed confirmation",
			body: `{"pin":"482913"}`,
			setupMocks: func(service *mock_server.MockLoadService) {
				service.EXPECT().
					ConfirmRelease(gomock.Any(), gomock.Any()).
					Return(nil, &release.Error{
						Kind:    release.KindAlreadyUsed,
						Status:  http.StatusBadRequest,
						Message: "ALREADY USED",
					})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"ALREADY USED"`,
		},
		{
			name:           "malformed body",
			body:           `{`,
			setupMocks:     func(*mock_server.MockLoadService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Invalid request body"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockService, _, _ := newTestServer(t)
			tc.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/verify/"+token+"/confirm", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			req = mux.SetURLVars(req, map[string]string{"token": token})
			rr := httptest.NewRecorder()

			server.handleVerifyConfirm(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleUpdateStatus(t *testing.T) {
	t.Run("requires a status", func(t *testing.T) {
		server, _, _, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodPatch, "/api/loads/42/status", bytes.NewBufferString(`{}`))
		req = mux.SetURLVars(req, map[string]string{"id": "42"})
		rr := httptest.NewRecorder()

		server.handleUpdateStatus(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Status is required"}`, rr.Body.String())
	})

	t.Run("forwards to the service", func(t *testing.T) {
		server, mockService, _, _ := newTestServer(t)

		load := testLoad()
		load.Status = repository.StatusVoid
		mockService.EXPECT().
			UpdateStatus(gomock.Any(), int64(42), repository.StatusVoid).
			Return(load, nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/loads/42/status", bytes.NewBufferString(`{"status":"VOID"}`))
		req = mux.SetURLVars(req, map[string]string{"id": "42"})
		rr := httptest.NewRecorder()

		server.handleUpdateStatus(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"message":"Status updated to VOID"`)
	})
}

func TestHandleLoadDocument(t *testing.T) {
	server, mockService, _, mockDocs := newTestServer(t)

	load := testLoad()
	mockService.EXPECT().
		GetLoadByID(gomock.Any(), int64(42)).
		Return(&release.LoadDetails{Load: load}, nil)
	mockDocs.EXPECT().
		Generate(load, "UTC").
		Return([]byte("VEHICLE RELEASE AUTHORIZATION"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/loads/42/document", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rr := httptest.NewRecorder()

	server.handleLoadDocument(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "attachment; filename=DTH_Release_DTH-1A2B3C.txt", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "VEHICLE RELEASE AUTHORIZATION", rr.Body.String())
}

func TestBasicAuthMiddleware(t *testing.T) {
	t.Run("rejects missing credentials", func(t *testing.T) {
		server, _, _, _ := newTestServer(t)

		handler := server.basicAuthMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run without credentials")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/loads", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, `Basic realm="Restricted"`, rr.Header().Get("WWW-Authenticate"))
	})

	t.Run("stores the authenticated user in context", func(t *testing.T) {
		server, _, mockUsers, _ := newTestServer(t)

		user := &repository.User{ID: 7, Username: "dispatch", Email: "dispatch@dthlogistics.com"}
		mockUsers.EXPECT().
			Validate(gomock.Any(), "dispatch", "secret").
			Return(user, nil)

		var seen *repository.User
		handler := server.basicAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = currentUser(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/loads", nil)
		req.SetBasicAuth("dispatch", "secret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, user, seen)
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		server, _, mockUsers, _ := newTestServer(t)

		mockUsers.EXPECT().
			Validate(gomock.Any(), "dispatch", "wrong").
			Return(nil, repository.ErrUserNotFound)

		handler := server.basicAuthMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run with bad credentials")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/loads", nil)
		req.SetBasicAuth("dispatch", "wrong")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDealerViewShape(t *testing.T) {
	load := testLoad()
	start := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	load.PickupWindowStart = &start

	view := newDealerView(load)
	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "DTH-1A2B3C", decoded["loadId"])
	assert.NotContains(t, decoded, "id")
	assert.NotContains(t, decoded, "verificationToken")
	assert.NotContains(t, decoded, "createdBy")
}
