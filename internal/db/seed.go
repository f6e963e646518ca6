package db

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"

	"github.com/jackc/pgx/v5/pgxpool"
)

var descriptors = []string{
	"Forest", "Ancient", "Silent", "Roaring", "Canyon", "Dusty",
	"Redwood", "Maple", "Sunny", "Shady", "Hidden", "Misty",
}

var places = []string{
	"Creek", "Valley", "Hollow", "Grove", "Pond", "Hill",
	"Meadow", "River", "Camp", "Ridge", "Trail", "Peak",
}

type city struct {
	name     string
	division string
	point    geocode.Point
}

var cities = []city{
	{"Denver", "Colorado", geocode.Point{Longitude: -104.9903, Latitude: 39.7392}},
	{"Boulder", "Colorado", geocode.Point{Longitude: -105.2705, Latitude: 40.0150}},
	{"Moab", "Utah", geocode.Point{Longitude: -109.5498, Latitude: 38.5733}},
	{"Flagstaff", "Arizona", geocode.Point{Longitude: -111.6513, Latitude: 35.1983}},
	{"Bend", "Oregon", geocode.Point{Longitude: -121.3153, Latitude: 44.0582}},
	{"Bozeman", "Montana", geocode.Point{Longitude: -111.0429, Latitude: 45.6770}},
	{"Asheville", "North Carolina", geocode.Point{Longitude: -82.5515, Latitude: 35.5951}},
	{"Burlington", "Vermont", geocode.Point{Longitude: -73.2121, Latitude: 44.4759}},
	{"Jackson", "Wyoming", geocode.Point{Longitude: -110.7624, Latitude: 43.4799}},
	{"Sedona", "Arizona", geocode.Point{Longitude: -111.7610, Latitude: 34.8697}},
	{"Lake Tahoe", "California", geocode.Point{Longitude: -120.0324, Latitude: 39.0968}},
	{"Duluth", "Minnesota", geocode.Point{Longitude: -92.1005, Latitude: 46.7867}},
}

// Placeholder images are not owned by this deployment's image store, so they
// carry no storage key and are never destroyed.
var seedImages = []images.Image{
	{URL: "https://res.cloudinary.com/duzj5bpxt/image/upload/v1757431255/YelpCamp/duzcur3mbeckzsl9wwfp.jpg"},
	{URL: "https://res.cloudinary.com/duzj5bpxt/image/upload/v1757431257/YelpCamp/xs9oamfr9lf3oowyxe5u.jpg"},
}

const seedDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

// Wipe removes every campground and review. Users are kept.
func Wipe(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `TRUNCATE reviews, campgrounds RESTART IDENTITY`); err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	return nil
}

// Seed inserts count random campgrounds authored by author.
func Seed(ctx context.Context, store *storage.Container, author *users.User, count int, rng *rand.Rand) ([]*campgrounds.Campground, error) {
	out := make([]*campgrounds.Campground, 0, count)
	for i := 0; i < count; i++ {
		c := generateCampground(author, rng)
		if err := store.Campgrounds.Create(ctx, c); err != nil {
			return out, fmt.Errorf("seed campground %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func generateCampground(author *users.User, rng *rand.Rand) *campgrounds.Campground {
	place := cities[rng.IntN(len(cities))]

	return &campgrounds.Campground{
		Title:       descriptors[rng.IntN(len(descriptors))] + " " + places[rng.IntN(len(places))],
		Price:       math.Round((rng.Float64()*20+10)*100) / 100,
		Description: seedDescription,
		Location:    place.name + ", " + place.division,
		Geometry:    place.point,
		Images:      append([]images.Image(nil), seedImages...),
		Author:      users.RefUser(author),
	}
}
