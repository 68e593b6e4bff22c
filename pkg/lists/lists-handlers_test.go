package lists

import (
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

var testTokenService = auth.NewTokenService("test-secret", time.Hour)

func newTestHandler(t *testing.T) (*Store, http.Handler) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine, err := rest.New(rest.Config{Logger: logger})
	if err != nil {
		t.Fatalf("couldn't initialise the engine: %v", err)
	}

	store := newTestStore(t)
	RegisterHandlers(engine, store, testTokenService)
	return store, engine.Handler()
}

func bearer(t *testing.T, userId string) string {
	t.Helper()
	token, err := testTokenService.Generate(userId, auth.RoleLector)
	if err != nil {
		t.Fatalf("couldn't generate a token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(handler http.Handler, method, path, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(""))
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestListOperationsForbiddenForNonOwners(t *testing.T) {
	store, handler := newTestHandler(t)
	seedUser(t, store.Connection, "owner")
	seedUser(t, store.Connection, "other")
	seedRecipe(t, store.Connection, "recipe-1")

	listId, err := store.Add("owner", ListData{Name: "Privada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := bearer(t, "other")
	if code := doRequest(handler, http.MethodDelete, "/lists/"+listId, other).Code; code != http.StatusForbidden {
		t.Errorf("expected %d deleting another user's list, got %d", http.StatusForbidden, code)
	}
	if code := doRequest(handler, http.MethodPost, "/lists/"+listId+"/recipes/recipe-1", other).Code; code != http.StatusForbidden {
		t.Errorf("expected %d toggling on another user's list, got %d", http.StatusForbidden, code)
	}

	// the owner passes both gates
	owner := bearer(t, "owner")
	if code := doRequest(handler, http.MethodPost, "/lists/"+listId+"/recipes/recipe-1", owner).Code; code != http.StatusOK {
		t.Errorf("expected the owner's toggle to succeed, got %d", code)
	}
	if code := doRequest(handler, http.MethodDelete, "/lists/"+listId, owner).Code; code != http.StatusOK {
		t.Errorf("expected the owner's delete to succeed, got %d", code)
	}

	if code := doRequest(handler, http.MethodDelete, "/lists/"+listId, "").Code; code != http.StatusForbidden {
		t.Errorf("expected %d without a token, got %d", http.StatusForbidden, code)
	}
}
