package comments

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Add(recipeId, userId string, data CommentData) (string, error)
	ListVisible(recipeId string) ([]Comment, error)
	GetOwner(commentId string) (string, error)
	SoftDelete(commentId string) error
	Report(commentId, userId, reason string) error
	Restore(commentId string) error
}

type Store struct {
	Connection *sql.DB
}

var (
	ErrNotFound      = errors.New("comment not found")
	ErrParentMissing = errors.New("parent comment not found on the recipe")
)

func NewStore(connection *sql.DB) *Store {
	return &Store{connection}
}

// Add persists a comment, optionally threaded under a parent; the parent must
// belong to the same recipe.
func (cs *Store) Add(recipeId, userId string, data CommentData) (string, error) {

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("couldn't generate a unique comment id: %w", err)
	}

	var parent any
	if data.ParentId != "" {
		var sameRecipe bool
		err = cs.Connection.QueryRow(
			"SELECT TRUE FROM comments WHERE id = ? AND recipe = ?",
			data.ParentId, recipeId,
		).Scan(&sameRecipe)
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrParentMissing
		}
		if err != nil {
			return "", err
		}
		parent = data.ParentId
	}

	if _, err = cs.Connection.Exec(`
		INSERT INTO comments (id, recipe, user, text, parent, state, date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), recipeId, userId, data.Text, parent, StateVisible, time.Now().UTC()); err != nil {
		return "", err
	}

	return id.String(), nil
}

// ListVisible returns the recipe's visible comments, oldest first, so clients
// can rebuild threads from the parent references.
func (cs *Store) ListVisible(recipeId string) ([]Comment, error) {

	rows, err := cs.Connection.Query(`
		SELECT comments.id, comments.recipe, comments.user, users.name, users.surname,
		       comments.text, comments.parent, comments.state, comments.date
		FROM comments
		JOIN users ON comments.user = users.id
		WHERE comments.recipe = ? AND comments.state = ?
		ORDER BY comments.date ASC`, recipeId, StateVisible)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var list = make([]Comment, 0)
	for rows.Next() {
		var comment Comment
		if err = rows.Scan(&comment.Id, &comment.RecipeId, &comment.UserId,
			&comment.AuthorName, &comment.AuthorSurname, &comment.Text,
			&comment.ParentId, &comment.State, &comment.Date); err != nil {
			return list, err
		}
		list = append(list, comment)
	}

	return list, rows.Err()
}

// GetOwner reports who wrote the comment, for authorisation checks.
func (cs *Store) GetOwner(commentId string) (string, error) {
	var owner string
	var err = cs.Connection.QueryRow("SELECT user FROM comments WHERE id = ?", commentId).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return owner, err
}

// SoftDelete hides the comment from listings without removing the row, which
// preserves replies threaded under it.
func (cs *Store) SoftDelete(commentId string) error {
	return cs.setState(commentId, StateDeleted)
}

// Report files a moderation report and flags the comment, atomically.
func (cs *Store) Report(commentId, userId, reason string) error {

	tx, err := cs.Connection.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	reportId, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("couldn't generate a unique report id: %w", err)
	}

	res, err := tx.Exec(
		"UPDATE comments SET reports = reports + 1, state = ? WHERE id = ?",
		StateReported, commentId)
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err != nil {
		return err
	} else if updated == 0 {
		return ErrNotFound
	}

	if _, err = tx.Exec(
		"INSERT INTO comment_reports (id, comment, user, reason, date) VALUES (?, ?, ?, ?, ?)",
		reportId.String(), commentId, userId, reason, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

// Restore clears a moderated comment back to visibility and resets its report
// tally.
func (cs *Store) Restore(commentId string) error {
	res, err := cs.Connection.Exec(
		"UPDATE comments SET state = ?, reports = 0 WHERE id = ?", StateVisible, commentId)
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

func (cs *Store) setState(commentId string, state State) error {
	res, err := cs.Connection.Exec("UPDATE comments SET state = ? WHERE id = ?", state, commentId)
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
