package comments

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type State string

const (
	StateVisible  State = "Visible"
	StateDeleted  State = "Eliminado"
	StateReported State = "Reportado"
)

// Comment is the reader facing view of a thread entry, carrying the author's
// display name alongside the raw identifiers.
type Comment struct {
	Id            string    `json:"id"`
	RecipeId      string    `json:"id_receta"`
	UserId        string    `json:"id_usuario"`
	AuthorName    string    `json:"autor_nombre"`
	AuthorSurname string    `json:"autor_apellido"`
	Text          string    `json:"texto"`
	ParentId      *string   `json:"id_comentario_padre"`
	State         State     `json:"estado"`
	Date          time.Time `json:"fecha"`
}

// CommentData describes a new comment; a parent id threads it under an
// existing comment on the same recipe.
type CommentData struct {
	Text     string `json:"texto"`
	ParentId string `json:"id_comentario_padre"`
}

func (data CommentData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Text, validation.Required, validation.Length(1, 2000)),
	)
}

// ReportData carries the reason a reader flags a comment for moderation.
type ReportData struct {
	Reason string `json:"motivo"`
}

func (data ReportData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Reason, validation.Required, validation.Length(1, 500)),
	)
}
