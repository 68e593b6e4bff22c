package recipes

import (
	"net/url"
	"testing"
)

func TestParseFiltersDefaults(t *testing.T) {
	filters, err := ParseFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Page != 1 || filters.Limit != 20 {
		t.Errorf("expected page 1 and limit 20, got %d and %d", filters.Page, filters.Limit)
	}
	if filters.Popular || filters.MaxTime != 0 {
		t.Errorf("expected zero valued optional filters, got %+v", filters)
	}
}

func TestParseFilters(t *testing.T) {
	cases := []struct {
		name    string
		query   url.Values
		want    ListingFilters
		wantErr bool
	}{
		{
			name:  "pagination",
			query: url.Values{"page": {"3"}, "limit": {"5"}},
			want:  ListingFilters{Page: 3, Limit: 5},
		},
		{
			name:  "full filter set",
			query: url.Values{"dificultad": {"Media"}, "categoria": {"cat-1"}, "busqueda": {"paella"}, "tiempo_max": {"45"}, "popularidad": {"true"}},
			want:  ListingFilters{Difficulty: "Media", Category: "cat-1", Search: "paella", MaxTime: 45, Popular: true, Page: 1, Limit: 20},
		},
		{
			name:  "popularity flag requires the exact value",
			query: url.Values{"popularidad": {"yes"}},
			want:  ListingFilters{Page: 1, Limit: 20},
		},
		{
			name:    "zero page",
			query:   url.Values{"page": {"0"}},
			wantErr: true,
		},
		{
			name:    "negative limit",
			query:   url.Values{"limit": {"-4"}},
			wantErr: true,
		},
		{
			name:    "non numeric page",
			query:   url.Values{"page": {"one"}},
			wantErr: true,
		},
		{
			name:    "non numeric max time",
			query:   url.Values{"tiempo_max": {"soon"}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filters, err := ParseFilters(tc.query)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filters != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, filters)
			}
		})
	}
}

func TestRecipeDataValidation(t *testing.T) {
	var valid = RecipeData{
		Title:      "Tortilla de patatas",
		Servings:   4,
		Difficulty: "Media",
		Steps:      []StepData{{Number: 1, Description: "Pelar las patatas"}},
		Ingredients: []IngredientData{
			{Name: "Patata", Unit: "g", Quantity: 500},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid data, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(data *RecipeData)
	}{
		{"missing title", func(data *RecipeData) { data.Title = "" }},
		{"zero servings", func(data *RecipeData) { data.Servings = 0 }},
		{"missing difficulty", func(data *RecipeData) { data.Difficulty = "" }},
		{"no steps", func(data *RecipeData) { data.Steps = nil }},
		{"no ingredients", func(data *RecipeData) { data.Ingredients = nil }},
		{"blank step description", func(data *RecipeData) { data.Steps[0].Description = "" }},
		{"blank ingredient name", func(data *RecipeData) { data.Ingredients[0].Name = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var data = valid
			data.Steps = []StepData{valid.Steps[0]}
			data.Ingredients = []IngredientData{valid.Ingredients[0]}
			tc.mutate(&data)
			if err := data.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestStatusDataValidation(t *testing.T) {
	if err := (StatusData{NewStatus: StatusPublished}).Validate(); err != nil {
		t.Errorf("expected publication verdict to validate, got %v", err)
	}
	if err := (StatusData{NewStatus: StatusRejected, Notes: "needs work"}).Validate(); err != nil {
		t.Errorf("expected rejection verdict to validate, got %v", err)
	}
	for _, status := range []Status{StatusDraft, StatusDeleted, StatusInReview, Status("Aprobada")} {
		if err := (StatusData{NewStatus: status}).Validate(); err == nil {
			t.Errorf("expected %q to be rejected as a review outcome", status)
		}
	}
}

func TestRateDataValidation(t *testing.T) {
	for _, score := range []int{1, 3, 5} {
		if err := (RateData{Score: score}).Validate(); err != nil {
			t.Errorf("expected score %d to validate, got %v", score, err)
		}
	}
	for _, score := range []int{0, -1, 6} {
		if err := (RateData{Score: score}).Validate(); err == nil {
			t.Errorf("expected score %d to be rejected", score)
		}
	}
}
