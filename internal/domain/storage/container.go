package storage

import (
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	Users       users.Store
	Campgrounds campgrounds.Store
	Reviews     reviews.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Users:       users.NewRepository(db),
		Campgrounds: campgrounds.NewRepository(db),
		Reviews:     reviews.NewRepository(db),
	}
}
