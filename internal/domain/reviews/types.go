package reviews

import (
	"errors"
	"time"

	"yelpcamp/internal/domain/users"
)

var (
	ErrNotFound           = errors.New("review not found")
	ErrCampgroundNotFound = errors.New("campground not found")
	QueryTimeoutDuration  = time.Second * 5
)

type Review struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"` // 1-5
	Body      string    `json:"body"`
	Author    users.Ref `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
