package reviews

import (
	"context"
	"errors"
	"fmt"

	"yelpcamp/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists reviews. A review is attached to its campground through the
// campground's review list, which Create and Delete keep in step.
type Store interface {
	Create(ctx context.Context, campgroundID int64, review *Review) error
	GetByID(ctx context.Context, reviewID int64) (*Review, error)
	ListByCampground(ctx context.Context, campgroundID int64) ([]Review, error)
	Delete(ctx context.Context, campgroundID, reviewID int64) error
	// DeleteMany removes the given reviews. Ids that no longer exist are
	// ignored.
	DeleteMany(ctx context.Context, reviewIDs []int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, campgroundID int64, review *Review) error {
	authorID, ok := review.Author.ID()
	if !ok {
		return errors.New("review has no author")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO reviews (rating, body, author_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, review.Rating, review.Body, authorID).Scan(&review.ID, &review.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE campgrounds SET review_ids = array_append(review_ids, $2), updated_at = NOW()
			WHERE id = $1
		`, campgroundID, review.ID)
		if err != nil {
			return fmt.Errorf("attach review: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrCampgroundNotFound
		}
		return nil
	})
}

func (r *Repository) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		review   Review
		authorID int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, rating, body, author_id, created_at FROM reviews WHERE id = $1
	`, reviewID).Scan(&review.ID, &review.Rating, &review.Body, &authorID, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	review.Author = users.RefID(authorID)
	return &review, nil
}

func (r *Repository) ListByCampground(ctx context.Context, campgroundID int64) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campgrounds WHERE id = $1)`, campgroundID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCampgroundNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.rating, r.body, r.created_at, u.id, u.username, u.email
		FROM campgrounds c
		JOIN reviews r ON r.id = ANY (c.review_ids)
		JOIN users u ON u.id = r.author_id
		WHERE c.id = $1
		ORDER BY r.created_at DESC
	`, campgroundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var (
			review Review
			author users.User
		)
		if err := rows.Scan(
			&review.ID,
			&review.Rating,
			&review.Body,
			&review.CreatedAt,
			&author.ID,
			&author.Username,
			&author.Email,
		); err != nil {
			return nil, err
		}
		review.Author = users.RefUser(&author)
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, campgroundID, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE campgrounds SET review_ids = array_remove(review_ids, $2), updated_at = NOW()
			WHERE id = $1 AND $2 = ANY (review_ids)
		`, campgroundID, reviewID)
		if err != nil {
			return fmt.Errorf("detach review: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return nil
	})
}

func (r *Repository) DeleteMany(ctx context.Context, reviewIDs []int64) error {
	if len(reviewIDs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = ANY ($1)`, reviewIDs); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}
