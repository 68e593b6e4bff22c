package lists

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// List is a personal, named collection of recipes.
type List struct {
	Id          string    `json:"id"`
	Name        string    `json:"nombre_lista"`
	Description string    `json:"descripcion"`
	Recipes     int       `json:"total_recetas"`
	Created     time.Time `json:"fecha_creacion"`
}

type ListData struct {
	Name        string `json:"nombre_lista"`
	Description string `json:"descripcion"`
}

func (data ListData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&data.Description, validation.Length(0, 500)),
	)
}
