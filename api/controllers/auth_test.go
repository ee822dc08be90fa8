package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/masjid-digital/admin-backend/internal/auth"
	"github.com/masjid-digital/admin-backend/internal/users"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.resp, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := stubAuthService{resp: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: users.UserResponse{
			ID:    uuid.New(),
			Name:  "Bendahara",
			Email: "bendahara@masjid.test",
			Role:  enums.UserRoleAdmin,
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"bendahara@masjid.test","password":"Secret#1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			AccessToken  string             `json:"access_token"`
			RefreshToken string             `json:"refresh_token"`
			User         users.UserResponse `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload got %+v", envelope.Data)
	}
	if envelope.Data.User.Email != "bendahara@masjid.test" {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginInvalidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"password":"Secret#1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(stubAuthService{}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"bendahara@masjid.test","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
