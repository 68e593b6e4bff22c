package recipes

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// ToggleConfig describes a user-to-recipe link table whose membership a toggle
// flips. When CounterColumn is set the matching denormalised counter on the
// recipes table moves with the membership; when DateColumn is set insertions
// are timestamped.
type ToggleConfig struct {
	LinkTable     string
	SubjectColumn string
	ObjectColumn  string
	CounterColumn string
	DateColumn    string
}

var likesConfig = ToggleConfig{
	LinkTable:     "likes",
	SubjectColumn: "user",
	ObjectColumn:  "recipe",
	CounterColumn: "likes",
	DateColumn:    "date",
}

var favouritesConfig = ToggleConfig{
	LinkTable:     "favorites",
	SubjectColumn: "user",
	ObjectColumn:  "recipe",
	CounterColumn: "saves",
	DateColumn:    "date",
}

// ToggleLink flips the subject's membership in the configured link table within
// one transaction and reports the resulting action. Counters never drop below
// zero, even when a membership row survives without its counterpart increment.
func ToggleLink(connection *sql.DB, config ToggleConfig, subjectId, objectId string) (string, error) {

	tx, err := connection.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.QueryRow(
		fmt.Sprintf("SELECT TRUE FROM %s WHERE %s = ? AND %s = ?",
			config.LinkTable, config.SubjectColumn, config.ObjectColumn),
		subjectId, objectId,
	).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	var action string
	if exists {
		action = ActionRemoved
		if _, err = tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?",
				config.LinkTable, config.SubjectColumn, config.ObjectColumn),
			subjectId, objectId); err != nil {
			return "", err
		}
		if config.CounterColumn != "" {
			if _, err = tx.Exec(
				fmt.Sprintf("UPDATE recipes SET %s = %s - 1 WHERE id = ? AND %s > 0",
					config.CounterColumn, config.CounterColumn, config.CounterColumn),
				objectId); err != nil {
				return "", err
			}
		}
	} else {
		action = ActionAdded
		if config.DateColumn != "" {
			_, err = tx.Exec(
				fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)",
					config.LinkTable, config.SubjectColumn, config.ObjectColumn, config.DateColumn),
				subjectId, objectId, time.Now().UTC())
		} else {
			_, err = tx.Exec(
				fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)",
					config.LinkTable, config.SubjectColumn, config.ObjectColumn),
				subjectId, objectId)
		}
		if err != nil {
			return "", err
		}
		if config.CounterColumn != "" {
			if _, err = tx.Exec(
				fmt.Sprintf("UPDATE recipes SET %s = %s + 1 WHERE id = ?",
					config.CounterColumn, config.CounterColumn),
				objectId); err != nil {
				return "", err
			}
		}
	}

	return action, tx.Commit()
}

func (rs *Store) ToggleLike(recipeId, userId string) (string, error) {
	return ToggleLink(rs.Connection, likesConfig, userId, recipeId)
}

func (rs *Store) ToggleFavorite(recipeId, userId string) (string, error) {
	return ToggleLink(rs.Connection, favouritesConfig, userId, recipeId)
}

// Rate records the user's score for a recipe, overwriting a previous one, and
// reports whether the rating was created or updated.
func (rs *Store) Rate(recipeId, userId string, score int) (string, error) {

	tx, err := rs.Connection.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		"UPDATE ratings SET score = ?, date = ? WHERE recipe = ? AND user = ?",
		score, time.Now().UTC(), recipeId, userId)
	if err != nil {
		return "", err
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return "", err
	}

	var action = ActionUpdated
	if updated == 0 {
		action = ActionCreated
		if _, err = tx.Exec(
			"INSERT INTO ratings (recipe, user, score, date) VALUES (?, ?, ?, ?)",
			recipeId, userId, score, time.Now().UTC()); err != nil {
			return "", err
		}
	}

	return action, tx.Commit()
}
