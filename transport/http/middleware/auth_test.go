package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/jwt"
	jwtMocks "github.com/lucasaveiro/service-scheduler/infras/jwt/mocks"
	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	"github.com/lucasaveiro/service-scheduler/permissions"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	validToken = "valid-token"
	apiKey     = "internal-key"
)

var testPermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/public/{businessId}", Method: http.MethodGet, Skip: true},
		{Path: "/v1/bookings/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleAdmin, constant.RoleBusinessOwner}},
	},
}

type seen struct {
	userID     string
	businessID string
}

func newRouter(t *testing.T, jwtService jwt.JWT, got *seen) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	authRole := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), testPermissions, cfg)

	capture := func(w http.ResponseWriter, r *http.Request) {
		got.userID, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		got.businessID, _ = r.Context().Value(constant.ContextKeyBusinessID).(string)

		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authRole.APIKey)
		r.Use(authRole.Auth)
		r.Use(authRole.RBAC)

		r.Route("/v1", func(r chi.Router) {
			r.Get("/public/{businessId}", capture)
			r.Get("/bookings/{id}", capture)
			r.Delete("/bookings/{id}", capture)
		})
	})

	return r
}

func TestAuthRole(t *testing.T) {
	ownerClaims := &jwt.Claims{UserID: "user-1", Email: "owner@example.com", Role: constant.RoleBusinessOwner, BusinessID: "biz-1"}
	staffClaims := &jwt.Claims{UserID: "user-2", Email: "staff@example.com", Role: constant.RoleStaff}

	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
		wantSeen  seen
	}{
		{
			name:     "protected route without header",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "claims without email are rejected",
			method:  http.MethodGet,
			path:    "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(&jwt.Claims{UserID: "user-1"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "valid token fills the context",
			method:  http.MethodGet,
			path:    "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(ownerClaims, nil)
			},
			wantCode: http.StatusOK,
			wantSeen: seen{userID: "user-1", businessID: "biz-1"},
		},
		{
			name:    "role not allowed",
			method:  http.MethodDelete,
			path:    "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(staffClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "role allowed",
			method:  http.MethodDelete,
			path:    "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(ownerClaims, nil)
			},
			wantCode: http.StatusOK,
			wantSeen: seen{userID: "user-1", businessID: "biz-1"},
		},
		{
			name:     "public route is anonymous",
			method:   http.MethodGet,
			path:     "/v1/public/biz-1",
			wantCode: http.StatusOK,
		},
		{
			name:    "public route still identifies a signed-in caller",
			method:  http.MethodGet,
			path:    "/v1/public/biz-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(ownerClaims, nil)
			},
			wantCode: http.StatusOK,
			wantSeen: seen{userID: "user-1", businessID: "biz-1"},
		},
		{
			name:    "public route ignores a bad token",
			method:  http.MethodGet,
			path:    "/v1/public/biz-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer " + validToken},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(validToken, jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "internal api key skips authentication",
			method:   http.MethodDelete,
			path:     "/v1/bookings/b-1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: apiKey},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key is forbidden",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "nope"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			var got seen

			handler := newRouter(t, jwtService, &got)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantSeen, got)
		})
	}
}
