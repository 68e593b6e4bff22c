package recipes

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mattn/go-sqlite3"
)

type RecipeRepository interface {
	GetRecipes(filters ListingFilters) ([]RecipePreview, Pagination, error)
	GetRecipe(recipeId, viewerId string) (*Recipe, error)
	AddRecipe(data RecipeData, authorId string) (string, error)
	UpdateRecipe(recipeId string, data RecipeData) error
	CanEdit(recipeId, userId string) bool
	IsPrincipalAuthor(recipeId, userId string) bool
	SetStatus(recipeId, adminId string, data StatusData) error
	SoftDelete(recipeId string) error
	Restore(recipeId string) error

	ToggleLike(recipeId, userId string) (string, error)
	ToggleFavorite(recipeId, userId string) (string, error)
	Rate(recipeId, userId string, score int) (string, error)
}

type Store struct {
	Connection *sql.DB
}

var (
	ErrNotFound      = errors.New("recipe not found")
	ErrDuplicateStep = errors.New("duplicate step number")
)

// viewCooldown bounds repeat view counting for the same viewer identity.
const viewCooldown = 24 * time.Hour

func NewStore(connection *sql.DB) *Store {
	return &Store{connection}
}

// GetRecipes composes one conjunctive predicate from the supplied filters and runs
// both the count query and the page fetch against it, so pagination metadata always
// matches the returned rows.
func (rs *Store) GetRecipes(filters ListingFilters) ([]RecipePreview, Pagination, error) {

	var pagination = Pagination{Page: filters.Page, Limit: filters.Limit}

	var where = []string{"recipes.status = ?", "NOT recipes.deleted"}
	var params = []any{StatusPublished}
	var joins []string
	var orderBy = "recipes.published DESC"

	if filters.Difficulty != "" {
		where = append(where, "recipes.difficulty = ?")
		params = append(params, filters.Difficulty)
	}

	if filters.MaxTime > 0 {
		where = append(where, "recipes.prep_time <= ?")
		params = append(params, filters.MaxTime)
	}

	if filters.Category != "" {
		joins = append(joins, "JOIN recipe_categories ON recipes.id = recipe_categories.recipe")
		where = append(where, "recipe_categories.category = ?")
		params = append(params, filters.Category)
	}

	if filters.Search != "" {
		// sqlite's LIKE is case insensitive for ASCII
		where = append(where, "(recipes.title LIKE ? OR recipes.description LIKE ?)")
		var pattern = fmt.Sprintf("%%%s%%", filters.Search)
		params = append(params, pattern, pattern)
	}

	if filters.Popular {
		orderBy = "recipes.likes DESC"
	}

	var joinClause = strings.Join(joins, " ")
	var whereClause = "WHERE " + strings.Join(where, " AND ")

	if err := rs.Connection.QueryRow(
		fmt.Sprintf("SELECT count(recipes.id) FROM recipes %s %s", joinClause, whereClause),
		params...,
	).Scan(&pagination.Total); err != nil {
		return nil, pagination, err
	}
	pagination.TotalPages = (pagination.Total + filters.Limit - 1) / filters.Limit

	rows, err := rs.Connection.Query(
		fmt.Sprintf(`
			SELECT recipes.id, recipes.title, recipes.difficulty, recipes.servings, recipes.likes,
			       users.name, users.surname
			FROM recipes
			JOIN recipe_authors ON recipes.id = recipe_authors.recipe AND recipe_authors.role = 'Principal'
			JOIN users ON recipe_authors.user = users.id
			%s %s
			ORDER BY %s
			LIMIT ? OFFSET ?`, joinClause, whereClause, orderBy),
		append(params, filters.Limit, (filters.Page-1)*filters.Limit)...,
	)
	if err != nil {
		return nil, pagination, err
	}
	defer closeRows(rows)

	// initialise an empty slice to avoid null serialisation
	var previews = make([]RecipePreview, 0, filters.Limit)
	for rows.Next() {
		var preview RecipePreview
		if err = rows.Scan(&preview.Id, &preview.Title, &preview.Difficulty, &preview.Servings,
			&preview.Likes, &preview.AuthorName, &preview.AuthorSurname); err != nil {
			return previews, pagination, err
		}
		previews = append(previews, preview)
	}

	return previews, pagination, rows.Err()
}

// GetRecipe fetches a published recipe with its steps and ingredients, counting
// a view unless the same viewer identity was seen within the cooldown window.
func (rs *Store) GetRecipe(recipeId, viewerId string) (*Recipe, error) {

	var recipe Recipe
	if err := rs.Connection.QueryRow(`
		SELECT id, title, coalesce(description, ''), servings, difficulty, prep_time, status,
		       likes, saves, views, created, published
		FROM recipes WHERE id = ? AND status = ? AND NOT deleted`,
		recipeId, StatusPublished).Scan(
		&recipe.Id,
		&recipe.Title,
		&recipe.Description,
		&recipe.Servings,
		&recipe.Difficulty,
		&recipe.PrepTime,
		&recipe.Status,
		&recipe.Likes,
		&recipe.Saves,
		&recipe.Views,
		&recipe.Created,
		&recipe.Published,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	counted, err := rs.recordView(recipeId, viewerId)
	if err != nil {
		return nil, err
	}
	if counted {
		recipe.Views++
	}

	if recipe.Steps, err = rs.getSteps(recipeId); err != nil {
		return nil, err
	}
	if recipe.Ingredients, err = rs.getIngredients(recipeId); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// recordView registers a view and bumps the denormalised counter within one
// transaction; repeat views inside the cooldown window are ignored.
func (rs *Store) recordView(recipeId, viewerId string) (counted bool, err error) {
	tx, err := rs.Connection.Begin()
	if err != nil {
		return false, err
	}

	// rolling back after a transaction commit results in a safe NOP
	defer func() { _ = tx.Rollback() }()

	var seen bool
	err = tx.QueryRow(
		"SELECT TRUE FROM recipe_views WHERE recipe = ? AND viewer = ? AND date > ?",
		recipeId, viewerId, time.Now().UTC().Add(-viewCooldown),
	).Scan(&seen)

	if err == nil && seen {
		return false, tx.Commit()
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	if _, err = tx.Exec(
		"INSERT INTO recipe_views (recipe, viewer, date) VALUES (?, ?, ?)",
		recipeId, viewerId, time.Now().UTC()); err != nil {
		return false, err
	}
	if _, err = tx.Exec(
		"UPDATE recipes SET views = views + 1 WHERE id = ?", recipeId); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (rs *Store) getSteps(recipeId string) ([]StepData, error) {
	var steps = make([]StepData, 0)
	rows, err := rs.Connection.Query(`
		SELECT number, description, coalesce(duration, 0), coalesce(image_url, '')
		FROM steps WHERE recipe = ? ORDER BY number ASC`, recipeId)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	for rows.Next() {
		var step StepData
		if err = rows.Scan(&step.Number, &step.Description, &step.Duration, &step.ImageURL); err != nil {
			return steps, err
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (rs *Store) getIngredients(recipeId string) ([]IngredientData, error) {
	var ingredients = make([]IngredientData, 0)
	rows, err := rs.Connection.Query(`
		SELECT ingredients.name, recipe_ingredients.unit, recipe_ingredients.quantity,
		       coalesce(recipe_ingredients.notes, '')
		FROM recipe_ingredients
		JOIN ingredients ON recipe_ingredients.ingredient = ingredients.id
		WHERE recipe_ingredients.recipe = ?`, recipeId)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	for rows.Next() {
		var ingredient IngredientData
		if err = rows.Scan(&ingredient.Name, &ingredient.Unit, &ingredient.Quantity, &ingredient.Notes); err != nil {
			return ingredients, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, rows.Err()
}

// AddRecipe persists the recipe, its principal author, steps, category links and
// ingredients as a single transaction; any failure rolls the whole batch back.
func (rs *Store) AddRecipe(data RecipeData, authorId string) (string, error) {

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("couldn't generate a unique recipe id: %w", err)
	}

	tx, err := rs.Connection.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`
		INSERT INTO recipes (id, title, description, servings, difficulty, prep_time, status, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), data.Title, data.Description, data.Servings, data.Difficulty, data.PrepTime,
		StatusInReview, time.Now().UTC()); err != nil {
		return "", err
	}

	if _, err = tx.Exec(`
		INSERT INTO recipe_authors (recipe, user, role, can_edit) VALUES (?, ?, 'Principal', TRUE)`,
		id.String(), authorId); err != nil {
		return "", err
	}

	if err = insertDetails(tx, id.String(), data); err != nil {
		return "", err
	}

	return id.String(), tx.Commit()
}

// UpdateRecipe overwrites the recipe's metadata and fully replaces its steps,
// ingredients and category links, resetting the status to pending review.
func (rs *Store) UpdateRecipe(recipeId string, data RecipeData) error {

	tx, err := rs.Connection.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		UPDATE recipes SET title = ?, description = ?, servings = ?, difficulty = ?, prep_time = ?, status = ?
		WHERE id = ?`,
		data.Title, data.Description, data.Servings, data.Difficulty, data.PrepTime,
		StatusInReview, recipeId)
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err != nil {
		return err
	} else if updated == 0 {
		return ErrNotFound
	}

	// full replace semantics: discard previous children before reinsertion
	for _, table := range []string{"steps", "recipe_ingredients", "recipe_categories"} {
		if _, err = tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE recipe = ?", table), recipeId); err != nil {
			return err
		}
	}

	if err = insertDetails(tx, recipeId, data); err != nil {
		return err
	}

	return tx.Commit()
}

// insertDetails writes steps, category links and ingredients for a recipe inside
// the caller's transaction; ingredient base names are resolved or lazily created.
func insertDetails(tx *sql.Tx, recipeId string, data RecipeData) error {

	for _, step := range data.Steps {
		// step numbers are persisted verbatim, as supplied by the caller
		_, err := tx.Exec(`
			INSERT INTO steps (recipe, number, description, duration, image_url) VALUES (?, ?, ?, ?, ?)`,
			recipeId, step.Number, step.Description, step.Duration, nullable(step.ImageURL))

		// detect primary key collisions which signal a repeated step number
		if sqliteErr, ok := err.(sqlite3.Error); ok {
			if sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
				return ErrDuplicateStep
			}
		}
		if err != nil {
			return err
		}
	}

	for _, categoryId := range data.Categories {
		if _, err := tx.Exec(
			"INSERT INTO recipe_categories (recipe, category) VALUES (?, ?)",
			recipeId, categoryId); err != nil {
			return err
		}
	}

	for _, ingredient := range data.Ingredients {
		baseId, err := resolveIngredient(tx, ingredient.Name)
		if err != nil {
			return err
		}
		if _, err = tx.Exec(`
			INSERT INTO recipe_ingredients (recipe, ingredient, unit, quantity, notes) VALUES (?, ?, ?, ?, ?)`,
			recipeId, baseId, ingredient.Unit, ingredient.Quantity, nullable(ingredient.Notes)); err != nil {
			return err
		}
	}

	return nil
}

// resolveIngredient finds the deduplicated base ingredient by exact name, creating
// it on first reference. Two concurrent transactions racing on a brand new name are
// arbitrated by the UNIQUE constraint: the loser's transaction fails and rolls back.
func resolveIngredient(tx *sql.Tx, name string) (string, error) {

	var baseId string
	var err = tx.QueryRow("SELECT id FROM ingredients WHERE name = ?", name).Scan(&baseId)
	if err == nil {
		return baseId, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("couldn't generate a unique ingredient id for %q: %w", name, err)
	}
	if _, err = tx.Exec("INSERT INTO ingredients (id, name) VALUES (?, ?)", id.String(), name); err != nil {
		return "", err
	}
	return id.String(), nil
}

// CanEdit verifies whether the user is the recipe's principal author or holds an
// explicit edit permission as a collaborator.
func (rs *Store) CanEdit(recipeId, userId string) bool {
	var role string
	var canEdit bool
	var err = rs.Connection.QueryRow(
		"SELECT role, can_edit FROM recipe_authors WHERE recipe = ? AND user = ?",
		recipeId, userId,
	).Scan(&role, &canEdit)
	return err == nil && (role == "Principal" || canEdit)
}

// IsPrincipalAuthor verifies the strongest form of recipe ownership.
func (rs *Store) IsPrincipalAuthor(recipeId, userId string) (exists bool) {
	var err = rs.Connection.QueryRow(
		"SELECT TRUE FROM recipe_authors WHERE recipe = ? AND user = ? AND role = 'Principal'",
		recipeId, userId,
	).Scan(&exists)
	return err == nil && exists
}

// SetStatus applies an administrator's verdict and appends the review audit row,
// atomically; publication also stamps the publication date.
func (rs *Store) SetStatus(recipeId, adminId string, data StatusData) error {

	tx, err := rs.Connection.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var res sql.Result
	if data.NewStatus == StatusPublished {
		res, err = tx.Exec("UPDATE recipes SET status = ?, published = ? WHERE id = ?",
			data.NewStatus, time.Now().UTC(), recipeId)
	} else {
		res, err = tx.Exec("UPDATE recipes SET status = ? WHERE id = ?", data.NewStatus, recipeId)
	}
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err != nil {
		return err
	} else if updated == 0 {
		return ErrNotFound
	}

	reviewId, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("couldn't generate a unique review id: %w", err)
	}
	if _, err = tx.Exec(`
		INSERT INTO reviews (id, recipe, admin, outcome, notes, date) VALUES (?, ?, ?, ?, ?, ?)`,
		reviewId.String(), recipeId, adminId, data.NewStatus, data.Notes, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

// SoftDelete flags the recipe as removed without deleting any row.
func (rs *Store) SoftDelete(recipeId string) error {
	return rs.setDeleted(recipeId, true, StatusDeleted)
}

// Restore clears the removal flag; the recipe returns as a draft, which demands a
// new review before publication.
func (rs *Store) Restore(recipeId string) error {
	return rs.setDeleted(recipeId, false, StatusDraft)
}

func (rs *Store) setDeleted(recipeId string, deleted bool, status Status) error {
	res, err := rs.Connection.Exec(
		"UPDATE recipes SET deleted = ?, status = ? WHERE id = ?", deleted, status, recipeId)
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err != nil {
		return err
	} else if updated == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func closeRows(rows *sql.Rows) {
	_ = rows.Close()
}
