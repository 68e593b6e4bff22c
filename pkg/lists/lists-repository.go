package lists

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/recipes"
)

type ListRepository interface {
	Add(userId string, data ListData) (string, error)
	GetByUser(userId string) ([]List, error)
	Owns(listId, userId string) bool
	Delete(listId string) error
	ToggleRecipe(listId, recipeId string) (string, error)
}

type Store struct {
	Connection *sql.DB
}

var (
	ErrNotFound = errors.New("list not found")
)

// membershipConfig reuses the recipe interaction toggle; list memberships carry
// no denormalised counter and no timestamp.
var membershipConfig = recipes.ToggleConfig{
	LinkTable:     "list_recipes",
	SubjectColumn: "list",
	ObjectColumn:  "recipe",
}

func NewStore(connection *sql.DB) *Store {
	return &Store{connection}
}

func (ls *Store) Add(userId string, data ListData) (string, error) {

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("couldn't generate a unique list id: %w", err)
	}

	if _, err = ls.Connection.Exec(
		"INSERT INTO lists (id, user, name, description, created) VALUES (?, ?, ?, ?, ?)",
		id.String(), userId, data.Name, data.Description, time.Now().UTC()); err != nil {
		return "", err
	}

	return id.String(), nil
}

// GetByUser returns the user's lists, newest first, with their recipe counts.
func (ls *Store) GetByUser(userId string) ([]List, error) {

	rows, err := ls.Connection.Query(`
		SELECT lists.id, lists.name, coalesce(lists.description, ''),
		       count(list_recipes.recipe), lists.created
		FROM lists
		LEFT JOIN list_recipes ON lists.id = list_recipes.list
		WHERE lists.user = ?
		GROUP BY lists.id
		ORDER BY lists.created DESC`, userId)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var userLists = make([]List, 0)
	for rows.Next() {
		var list List
		if err = rows.Scan(&list.Id, &list.Name, &list.Description, &list.Recipes, &list.Created); err != nil {
			return userLists, err
		}
		userLists = append(userLists, list)
	}

	return userLists, rows.Err()
}

// Owns reports whether the list exists and belongs to the user; callers can't
// distinguish the two cases, which avoids leaking other users' list ids.
func (ls *Store) Owns(listId, userId string) (owned bool) {
	var err = ls.Connection.QueryRow(
		"SELECT TRUE FROM lists WHERE id = ? AND user = ?", listId, userId,
	).Scan(&owned)
	return err == nil && owned
}

// Delete removes the list and its memberships in one transaction.
func (ls *Store) Delete(listId string) error {

	tx, err := ls.Connection.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec("DELETE FROM list_recipes WHERE list = ?", listId); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM lists WHERE id = ?", listId)
	if err != nil {
		return err
	}
	if deleted, err := res.RowsAffected(); err != nil {
		return err
	} else if deleted == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ToggleRecipe flips the recipe's membership in the list and reports the
// resulting action.
func (ls *Store) ToggleRecipe(listId, recipeId string) (string, error) {
	return recipes.ToggleLink(ls.Connection, membershipConfig, listId, recipeId)
}
