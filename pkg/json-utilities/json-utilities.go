package json_utilities

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response shape: `{success, message?, data?, action?, pagination?}`;
// login responses additionally carry the token and role at the top level.
type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Action     string      `json:"action,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Token      string      `json:"token,omitempty"`
	Role       string      `json:"role,omitempty"`
}

func Ok(writer http.ResponseWriter, data interface{}) {
	encodeJSON(writer, http.StatusOK, envelope{Success: true, Data: data})
}

func OkMessage(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusOK, envelope{Success: true, Message: message})
}

// OkAction reports the outcome of a toggle or an upsert, ie. `added`, `removed`, `updated`.
func OkAction(writer http.ResponseWriter, action, message string) {
	encodeJSON(writer, http.StatusOK, envelope{Success: true, Action: action, Message: message})
}

// OkSession returns the credentials of a fresh login.
func OkSession(writer http.ResponseWriter, token, role string) {
	encodeJSON(writer, http.StatusOK, envelope{Success: true, Token: token, Role: role})
}

func Created(writer http.ResponseWriter, data interface{}, message string) {
	encodeJSON(writer, http.StatusCreated, envelope{Success: true, Data: data, Message: message})
}

func CreatedAction(writer http.ResponseWriter, action, message string) {
	encodeJSON(writer, http.StatusCreated, envelope{Success: true, Action: action, Message: message})
}

// Paginated returns a page of results along with its pagination metadata.
func Paginated(writer http.ResponseWriter, data interface{}, pagination interface{}) {
	encodeJSON(writer, http.StatusOK, envelope{Success: true, Data: data, Pagination: pagination})
}

func BadRequest(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusBadRequest, envelope{Message: message})
}

func Unauthorised(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusUnauthorized, envelope{Message: message})
}

func Forbidden(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusForbidden, envelope{Message: message})
}

func NotFound(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusNotFound, envelope{Message: message})
}

func Conflict(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusConflict, envelope{Message: message})
}

// InternalServerError deliberately omits the error's detail; causes are logged server side only.
func InternalServerError(writer http.ResponseWriter) {
	encodeJSON(writer, http.StatusInternalServerError, envelope{Message: "Error interno del servidor."})
}

func ValidationError(writer http.ResponseWriter, err error) {
	encodeJSON(writer, http.StatusBadRequest, envelope{Message: err.Error()})
}

func encodeJSON(writer http.ResponseWriter, status int, payload envelope) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
	}
}

// DecodeValidate parses a request's JSON body into a model and applies its validation rules.
func DecodeValidate[T Validator](request *http.Request) (data T, err error) {
	if err = json.NewDecoder(request.Body).Decode(&data); err != nil {
		return data, err
	}
	return data, data.Validate()
}

type Validator interface {
	Validate() error
}
