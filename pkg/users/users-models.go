package users

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
)

var nameRules = []validation.Rule{validation.Required, validation.Length(1, 50)}

type User struct {
	Id      string    `json:"id"`
	Name    string    `json:"nombre"`
	Surname string    `json:"apellido"`
	Email   string    `json:"email"`
	Role    auth.Role `json:"rol"`
	Created time.Time `json:"fecha_registro"`
}

type RegisterData struct {
	Name     string `json:"nombre"`
	Surname  string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (data RegisterData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Name, nameRules...),
		validation.Field(&data.Surname, nameRules...),
		validation.Field(&data.Email, validation.Required, is.Email),
		validation.Field(&data.Password, validation.Required, validation.Length(8, 72)),
	)
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (data LoginData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Email, validation.Required, is.Email),
		validation.Field(&data.Password, validation.Required),
	)
}
