package users

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
	JSON "github.com/AndrewStevenDJ/ChefSphere/pkg/json-utilities"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, ur UserRepository, ts auth.TokenService) {
	engine.Post("/auth/register", register(ur))
	engine.Post("/auth/login", login(ur, ts))
	engine.Get("/auth/me", me(ur), auth.Auth(ts))
}

func register(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		data, err := JSON.DecodeValidate[RegisterData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		newUser, err := ur.Register(data)
		switch {
		case errors.Is(err, ErrEmailTaken):
			JSON.Conflict(writer, "El email ya está registrado.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.Created(writer, struct {
				UserId string `json:"userId"`
			}{newUser.Id}, "Usuario registrado con éxito.")
		}
	}
}

func login(ur UserRepository, ts auth.TokenService) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		data, err := JSON.DecodeValidate[LoginData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		// the same response hides whether the email exists or the password mismatched
		user, hash, err := ur.GetByEmail(data.Email)
		if errors.Is(err, ErrNotFound) {
			JSON.Unauthorised(writer, "Credenciales inválidas.")
			return
		}
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(data.Password)) != nil {
			JSON.Unauthorised(writer, "Credenciales inválidas.")
			return
		}

		token, err := ts.Generate(user.Id, user.Role)
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		JSON.OkSession(writer, token, string(user.Role))
	}
}

func me(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		user, err := ur.GetById(identity.UserId)
		switch {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Usuario no encontrado.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.Ok(writer, user)
		}
	}
}
