package campgrounds

import (
	"errors"
	"time"

	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
)

var (
	ErrNotFound          = errors.New("campground not found")
	QueryTimeoutDuration = time.Second * 5
)

type Campground struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Geometry    geocode.Point  `json:"geometry"`
	Images      []images.Image `json:"images"`
	Author      users.Ref      `json:"author"`
	ReviewIDs   []int64        `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// RemoveImages drops the images whose storage key is listed and returns
// the dropped ones.
func (c *Campground) RemoveImages(storageKeys []string) []images.Image {
	if len(storageKeys) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(storageKeys))
	for _, k := range storageKeys {
		if k != "" {
			drop[k] = struct{}{}
		}
	}

	var kept, removed []images.Image
	for _, img := range c.Images {
		if _, ok := drop[img.StorageKey]; ok {
			removed = append(removed, img)
			continue
		}
		kept = append(kept, img)
	}
	if kept == nil {
		kept = []images.Image{}
	}
	c.Images = kept
	return removed
}
