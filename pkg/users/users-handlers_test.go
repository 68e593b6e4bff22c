package users

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/rest"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine, err := rest.New(rest.Config{Logger: logger})
	if err != nil {
		t.Fatalf("couldn't initialise the engine: %v", err)
	}

	RegisterHandlers(engine, newTestRepository(t), auth.NewTokenService("test-secret", time.Hour))
	return engine.Handler()
}

func TestLoginResponseShape(t *testing.T) {
	handler := newTestHandler(t)

	register := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"nombre": "Ada", "apellido": "Lovelace", "email": "ada@example.com", "password": "correct horse battery"}`))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, register)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d registering, got %d", http.StatusCreated, recorder.Code)
	}

	login := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "correct horse battery"}`))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, login)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d logging in, got %d", http.StatusOK, recorder.Code)
	}

	// the token and role ride at the top level of the response
	var response map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("couldn't decode the response: %v", err)
	}
	if success, _ := response["success"].(bool); !success {
		t.Error("expected a successful response")
	}
	if token, _ := response["token"].(string); token == "" {
		t.Error("expected a top level token")
	}
	if role, _ := response["role"].(string); role != string(auth.RoleLector) {
		t.Errorf("expected the %q role at the top level, got %q", auth.RoleLector, response["role"])
	}
	if _, nested := response["data"]; nested {
		t.Error("expected no nested data object")
	}

	wrong := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "incorrect horse"}`))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, wrong)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d with a wrong password, got %d", http.StatusUnauthorized, recorder.Code)
	}
}
