package campgrounds

import (
	"context"
	"errors"
	"fmt"

	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/images"
	"yelpcamp/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, c *Campground) error
	GetByID(ctx context.Context, campgroundID int64) (*Campground, error)
	List(ctx context.Context, p params.Pagination) ([]Campground, int, error)
	Update(ctx context.Context, c *Campground) error
	// Delete removes the campground and returns the removed record so the
	// caller can clean up what it referenced.
	Delete(ctx context.Context, campgroundID int64) (*Campground, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Campground) error {
	authorID, ok := c.Author.ID()
	if !ok {
		return errors.New("campground has no author")
	}
	if c.Images == nil {
		c.Images = []images.Image{}
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO campgrounds (title, price, description, location, longitude, latitude, images, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, review_ids, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		c.Title,
		c.Price,
		c.Description,
		c.Location,
		c.Geometry.Longitude,
		c.Geometry.Latitude,
		c.Images,
		authorID,
	).Scan(&c.ID, &c.ReviewIDs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert campground: %w", err)
	}
	return nil
}

const selectCampground = `
	SELECT c.id, c.title, c.price, c.description, c.location, c.longitude, c.latitude,
	       c.images, c.review_ids, c.created_at, c.updated_at,
	       u.id, u.username, u.email
	FROM campgrounds c
	JOIN users u ON u.id = c.author_id
`

func scanCampground(row pgx.Row) (*Campground, error) {
	var (
		c      Campground
		author users.User
	)
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Price,
		&c.Description,
		&c.Location,
		&c.Geometry.Longitude,
		&c.Geometry.Latitude,
		&c.Images,
		&c.ReviewIDs,
		&c.CreatedAt,
		&c.UpdatedAt,
		&author.ID,
		&author.Username,
		&author.Email,
	)
	if err != nil {
		return nil, err
	}
	c.Author = users.RefUser(&author)
	return &c, nil
}

func (r *Repository) GetByID(ctx context.Context, campgroundID int64) (*Campground, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c, err := scanCampground(r.db.QueryRow(ctx, selectCampground+` WHERE c.id = $1`, campgroundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context, p params.Pagination) ([]Campground, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM campgrounds`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, selectCampground+` ORDER BY c.created_at DESC, c.id DESC LIMIT $1 OFFSET $2`, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Campground{}
	for rows.Next() {
		c, err := scanCampground(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *c)
	}
	return list, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, c *Campground) error {
	if c.Images == nil {
		c.Images = []images.Image{}
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE campgrounds
		SET title = $2, price = $3, description = $4, location = $5,
		    longitude = $6, latitude = $7, images = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		c.ID,
		c.Title,
		c.Price,
		c.Description,
		c.Location,
		c.Geometry.Longitude,
		c.Geometry.Latitude,
		c.Images,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update campground: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, campgroundID int64) (*Campground, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		c        Campground
		authorID int64
	)
	err := r.db.QueryRow(ctx, `
		DELETE FROM campgrounds WHERE id = $1
		RETURNING id, title, price, description, location, longitude, latitude,
		          images, author_id, review_ids, created_at, updated_at
	`, campgroundID).Scan(
		&c.ID,
		&c.Title,
		&c.Price,
		&c.Description,
		&c.Location,
		&c.Geometry.Longitude,
		&c.Geometry.Latitude,
		&c.Images,
		&authorID,
		&c.ReviewIDs,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete campground: %w", err)
	}
	c.Author = users.RefID(authorID)
	return &c, nil
}
