package recipes

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/ntime"
)

// Status tracks a recipe through the editorial workflow; values match the
// store's CHECK constraint.
type Status string

const (
	StatusInReview  Status = "En_Revision"
	StatusPublished Status = "Publicada"
	StatusRejected  Status = "Rechazada"
	StatusDraft     Status = "Borrador"
	StatusDeleted   Status = "Eliminada"
)

// reviewOutcomes are the only statuses an administrator may assign during a review.
var reviewOutcomes = []interface{}{StatusPublished, StatusRejected}

type Recipe struct {
	Id          string           `json:"id"`
	Title       string           `json:"titulo"`
	Description string           `json:"descripcion"`
	Servings    int              `json:"porciones"`
	Difficulty  string           `json:"dificultad"`
	PrepTime    int              `json:"tiempo_preparacion"`
	Status      Status           `json:"estado"`
	Likes       int              `json:"me_gusta"`
	Saves       int              `json:"guardados"`
	Views       int              `json:"vistas"`
	Created     time.Time        `json:"fecha_creacion"`
	Published   ntime.NTime      `json:"fecha_publicacion"`
	Steps       []StepData       `json:"pasos"`
	Ingredients []IngredientData `json:"ingredientes"`
}

type StepData struct {
	Number      int    `json:"numero"`
	Description string `json:"descripcion"`
	Duration    int    `json:"duracion"`
	ImageURL    string `json:"imagen_url,omitempty"`
}

func (data StepData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Description, validation.Required),
	)
}

type IngredientData struct {
	Name     string  `json:"nombre"`
	Unit     string  `json:"unidad"`
	Quantity float64 `json:"cantidad"`
	Notes    string  `json:"notas,omitempty"`
}

func (data IngredientData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Name, validation.Required),
		validation.Field(&data.Unit, validation.Required),
		validation.Field(&data.Quantity, validation.Required, validation.Min(0.0)),
	)
}

// RecipeData is shared by creation and update, which both carry the full
// set of steps, ingredients and categories.
type RecipeData struct {
	Title       string           `json:"titulo"`
	Description string           `json:"descripcion"`
	Servings    int              `json:"porciones"`
	Difficulty  string           `json:"dificultad"`
	PrepTime    int              `json:"tiempo_preparacion"`
	Steps       []StepData       `json:"pasos"`
	Ingredients []IngredientData `json:"ingredientes"`
	Categories  []string         `json:"categorias"`
}

func (data RecipeData) Validate() error {
	// step numbers are stored verbatim; neither order nor contiguity is enforced
	return validation.ValidateStruct(&data,
		validation.Field(&data.Title, validation.Required),
		validation.Field(&data.Servings, validation.Required, validation.Min(1)),
		validation.Field(&data.Difficulty, validation.Required),
		validation.Field(&data.PrepTime, validation.Min(0)),
		validation.Field(&data.Steps, validation.Required),
		validation.Field(&data.Ingredients, validation.Required),
	)
}

// StatusData carries an administrator's review verdict.
type StatusData struct {
	NewStatus Status `json:"nuevo_estado"`
	Notes     string `json:"notas_revisor"`
}

func (data StatusData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.NewStatus, validation.Required, validation.In(reviewOutcomes...)),
	)
}

type RateData struct {
	Score int `json:"puntuacion"`
}

func (data RateData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Score, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// Listing

type RecipePreview struct {
	Id            string `json:"id"`
	Title         string `json:"titulo"`
	Difficulty    string `json:"dificultad"`
	Servings      int    `json:"porciones"`
	Likes         int    `json:"me_gusta"`
	AuthorName    string `json:"autor_nombre"`
	AuthorSurname string `json:"autor_apellido"`
}

type Pagination struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

var (
	errInvalidPagination = errors.New("invalid pagination parameters")
	errInvalidMaxTime    = errors.New("invalid maximum preparation time")
)

// ListingFilters gathers the optional `/recipes` query parameters; zero values
// mean the filter wasn't supplied.
type ListingFilters struct {
	Difficulty string
	MaxTime    int
	Category   string
	Search     string
	Popular    bool
	Page       int
	Limit      int
}

// ParseFilters validates pagination and collects the optional filters from the query string.
func ParseFilters(query url.Values) (filters ListingFilters, err error) {

	filters.Page, filters.Limit = 1, 20
	if raw := query.Get("page"); raw != "" {
		if filters.Page, err = strconv.Atoi(raw); err != nil || filters.Page < 1 {
			return filters, errInvalidPagination
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if filters.Limit, err = strconv.Atoi(raw); err != nil || filters.Limit < 1 {
			return filters, errInvalidPagination
		}
	}

	if raw := query.Get("tiempo_max"); raw != "" {
		if filters.MaxTime, err = strconv.Atoi(raw); err != nil || filters.MaxTime < 1 {
			return filters, errInvalidMaxTime
		}
	}

	filters.Difficulty = query.Get("dificultad")
	filters.Category = query.Get("categoria")
	filters.Search = query.Get("busqueda")
	filters.Popular = query.Get("popularidad") == "true"
	return filters, nil
}
