package users

import (
	"errors"
	"io"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/storage/sqlite"
)

func newTestRepository(t *testing.T) UserRepository {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	storage, err := sqlite.New(logger, ":memory:")
	if err != nil {
		t.Fatalf("couldn't initialise test storage: %v", err)
	}

	// a single connection keeps every query on the same in-memory database
	storage.Connection.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = storage.Close() })

	return NewRepository(storage.Connection)
}

var testRegistration = RegisterData{
	Name:     "Ada",
	Surname:  "Lovelace",
	Email:    "ada@example.com",
	Password: "correct horse battery",
}

func TestRegister(t *testing.T) {
	repository := newTestRepository(t)

	user, err := repository.Register(testRegistration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Id == "" {
		t.Error("expected a generated user id")
	}
	if user.Role != auth.RoleLector {
		t.Errorf("expected new users to start as %q, got %q", auth.RoleLector, user.Role)
	}

	// the stored credential is a hash, never the password itself
	_, hash, err := repository.GetByEmail(testRegistration.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == testRegistration.Password {
		t.Error("expected the password to be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(testRegistration.Password)) != nil {
		t.Error("expected the hash to verify against the original password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repository := newTestRepository(t)

	if _, err := repository.Register(testRegistration); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repository.Register(testRegistration); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected %v, got %v", ErrEmailTaken, err)
	}
}

func TestGetById(t *testing.T) {
	repository := newTestRepository(t)

	registered, err := repository.Register(testRegistration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repository.GetById(registered.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != testRegistration.Email || user.Name != testRegistration.Name {
		t.Errorf("expected the registered user's details, got %+v", user)
	}

	if _, err = repository.GetById("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected %v, got %v", ErrNotFound, err)
	}
}

func TestGetByEmailMissing(t *testing.T) {
	repository := newTestRepository(t)
	if _, _, err := repository.GetByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected %v, got %v", ErrNotFound, err)
	}
}

func TestRegisterDataValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(data *RegisterData)
	}{
		{"missing name", func(data *RegisterData) { data.Name = "" }},
		{"missing surname", func(data *RegisterData) { data.Surname = "" }},
		{"malformed email", func(data *RegisterData) { data.Email = "not-an-email" }},
		{"short password", func(data *RegisterData) { data.Password = "short" }},
	}

	if err := testRegistration.Validate(); err != nil {
		t.Fatalf("expected the base registration to validate, got %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var data = testRegistration
			tc.mutate(&data)
			if err := data.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
