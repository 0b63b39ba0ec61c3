package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comment-feed-api/internal/database"
	"github.com/comment-feed-api/internal/models"
	"github.com/lib/pq"
)

const commentColumns = `id, author, text, created_at, updated_at, likes, image`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// List returns all comments ordered by date, newest first
func (r *commentRepo) List(ctx context.Context) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := r.StreamAll(ctx, func(c *models.Comment) error {
		comments = append(comments, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Create inserts a new comment and stores the assigned id on it
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (author, text, created_at, updated_at, likes, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	comment.Date = comment.Date.UTC()
	return r.db.QueryRowContext(ctx, query,
		comment.Author, comment.Text, comment.Date,
		nullTime(comment.UpdatedAt), comment.Likes, comment.Image,
	).Scan(&comment.ID)
}

// Update writes every mutable column. created_at is never touched.
func (r *commentRepo) Update(ctx context.Context, comment *models.Comment) (bool, error) {
	query := `
		UPDATE comments
		SET author = $1, text = $2, updated_at = $3, likes = $4, image = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		comment.Author, comment.Text, nullTime(comment.UpdatedAt),
		comment.Likes, comment.Image, comment.ID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete hard-deletes a comment
func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReplaceAll wipes the table and inserts comments in slice order inside one
// transaction. PostgreSQL uses COPY; other drivers use a prepared INSERT.
func (r *commentRepo) ReplaceAll(ctx context.Context, comments []*models.Comment) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments`); err != nil {
		return 0, fmt.Errorf("failed to clear comments: %w", err)
	}

	var stmt *sql.Stmt
	if r.db.IsPostgres() {
		stmt, err = tx.PrepareContext(ctx, pq.CopyIn("comments",
			"author", "text", "created_at", "updated_at", "likes", "image",
		))
	} else {
		stmt, err = tx.PrepareContext(ctx, `
			INSERT INTO comments (author, text, created_at, updated_at, likes, image)
			VALUES ($1, $2, $3, $4, $5, $6)
		`)
	}
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, comment := range comments {
		_, err := stmt.ExecContext(ctx,
			comment.Author, comment.Text, comment.Date.UTC(),
			nullTime(comment.UpdatedAt), comment.Likes, comment.Image,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert comment %d: %w", i, err)
		}
	}

	if r.db.IsPostgres() {
		// flush the COPY buffer
		if _, err := stmt.ExecContext(ctx); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(comments), nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

// StreamAll walks every comment, newest first
func (r *commentRepo) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return err
		}
		if err := callback(comment); err != nil {
			return err
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		comment   models.Comment
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&comment.ID, &comment.Author, &comment.Text, &comment.Date,
		&updatedAt, &comment.Likes, &comment.Image,
	)
	if err != nil {
		return nil, err
	}
	comment.Date = comment.Date.UTC()
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		comment.UpdatedAt = &t
	}
	return &comment, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
