package users

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
)

type UserRepository interface {
	Register(data RegisterData) (*User, error)
	GetByEmail(email string) (user User, passwordHash string, err error)
	GetById(id string) (User, error)
}

type userRepository struct {
	Connection *sql.DB
}

var (
	ErrEmailTaken = errors.New("email is already registered")
	ErrNotFound   = errors.New("user not found")
)

const bcryptCost = 10

func NewRepository(connection *sql.DB) UserRepository {
	return &userRepository{connection}
}

func (ur *userRepository) Register(data RegisterData) (user *User, err error) {

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("couldn't generate a unique user id for %q: %w", data.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("couldn't hash the password for %q: %w", data.Email, err)
	}

	var now = time.Now().UTC()

	_, err = ur.Connection.Exec(
		"INSERT INTO users(id, name, surname, email, password, role, created) VALUES(?, ?, ?, ?, ?, ?, ?)",
		id.String(), data.Name, data.Surname, data.Email, string(hash), auth.RoleLector, now)

	// detect email uniqueness violations which signal a previous registration
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrEmailTaken
		}
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't add user %q: %w", data.Email, err)
	}

	return &User{
		Id:      id.String(),
		Name:    data.Name,
		Surname: data.Surname,
		Email:   data.Email,
		Role:    auth.RoleLector,
		Created: now,
	}, nil
}

// GetByEmail returns the matching user along with its stored password hash, for credential checks.
func (ur *userRepository) GetByEmail(email string) (user User, passwordHash string, err error) {
	err = ur.Connection.QueryRow(
		"SELECT id, name, surname, email, password, role, created FROM users WHERE email = ?", email).Scan(
		&user.Id,
		&user.Name,
		&user.Surname,
		&user.Email,
		&passwordHash,
		&user.Role,
		&user.Created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	return user, passwordHash, err
}

// GetById either returns a user matching the id, or an error (along with an ignorable empty struct).
func (ur *userRepository) GetById(id string) (user User, err error) {
	err = ur.Connection.QueryRow(
		"SELECT id, name, surname, email, role, created FROM users WHERE id = ?", id).Scan(
		&user.Id,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.Role,
		&user.Created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}
