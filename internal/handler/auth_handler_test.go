package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garagelog/garagelog-backend/internal/identity"
	"github.com/garagelog/garagelog-backend/internal/service"
	"github.com/garagelog/garagelog-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newAuthHandler(verifier *testutil.MockVerifier, userRepo *testutil.MockUserRepository) *AuthHandler {
	return NewAuthHandler(service.NewAuthService(verifier, userRepo))
}

func postAuth(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/firebase", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Authenticate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func TestAuthenticate_Success(t *testing.T) {
	verifier := testutil.NewMockVerifier()
	verifier.Subjects["valid"] = &identity.Subject{
		UID:   "uid-1",
		Email: "driver@example.com",
		Name:  "Test Driver",
	}
	h := newAuthHandler(verifier, testutil.NewMockUserRepository())

	rec := postAuth(t, h, `{"token": "valid"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Message != "Authenticated with Firebase" {
		t.Errorf("Unexpected message %q", response.Message)
	}
	if response.User == nil || response.User.FirebaseUID != "uid-1" {
		t.Errorf("Expected user with uid-1, got %+v", response.User)
	}
	if response.User.Email != "driver@example.com" {
		t.Errorf("Expected email driver@example.com, got %s", response.User.Email)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	h := newAuthHandler(testutil.NewMockVerifier(), testutil.NewMockUserRepository())

	rec := postAuth(t, h, `{"token": "forged"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Error != "Invalid Firebase token" {
		t.Errorf("Unexpected error %q", response.Error)
	}
}

func TestAuthenticate_SameSubjectCreatesOneUser(t *testing.T) {
	verifier := testutil.NewMockVerifier()
	verifier.Subjects["t1"] = &identity.Subject{UID: "uid-1", Email: "a@example.com"}
	verifier.Subjects["t2"] = &identity.Subject{UID: "uid-1", Email: "a@example.com"}
	userRepo := testutil.NewMockUserRepository()
	h := newAuthHandler(verifier, userRepo)

	first := postAuth(t, h, `{"token": "t1"}`)
	second := postAuth(t, h, `{"token": "t2"}`)

	var a, b AuthResponse
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("Failed to unmarshal first response: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("Failed to unmarshal second response: %v", err)
	}

	if a.User.ID != b.User.ID {
		t.Errorf("Expected the same user row, got ids %d and %d", a.User.ID, b.User.ID)
	}
	if len(userRepo.Users) != 1 {
		t.Errorf("Expected exactly one user row, got %d", len(userRepo.Users))
	}
}
