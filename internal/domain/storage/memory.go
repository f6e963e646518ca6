package storage

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/images"
	"yelpcamp/internal/params"
)

// NewMemoryContainer returns stores kept in process memory. They follow the
// same contracts as the Postgres repositories and back local runs without a
// database as well as the handler tests.
func NewMemoryContainer() *Container {
	m := &memory{
		users:       make(map[int64]users.User),
		campgrounds: make(map[int64]campgrounds.Campground),
		reviews:     make(map[int64]reviews.Review),
	}
	return &Container{
		Users:       memoryUsers{m},
		Campgrounds: memoryCampgrounds{m},
		Reviews:     memoryReviews{m},
	}
}

type memory struct {
	sync.RWMutex
	seq         int64
	users       map[int64]users.User
	campgrounds map[int64]campgrounds.Campground
	reviews     map[int64]reviews.Review
}

func (m *memory) nextID() int64 {
	m.seq++
	return m.seq
}

type memoryUsers struct{ *memory }

func (s memoryUsers) Create(ctx context.Context, user *users.User) error {
	s.Lock()
	defer s.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return users.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return users.ErrDuplicateUsername
		}
	}
	user.ID = s.nextID()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s memoryUsers) GetByID(ctx context.Context, userID int64) (*users.User, error) {
	s.RLock()
	defer s.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

func (s memoryUsers) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	s.RLock()
	defer s.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, users.ErrNotFound
}

type memoryCampgrounds struct{ *memory }

func cloneCampground(c campgrounds.Campground) campgrounds.Campground {
	c.Images = slices.Clone(c.Images)
	if c.Images == nil {
		c.Images = []images.Image{}
	}
	c.ReviewIDs = slices.Clone(c.ReviewIDs)
	if id, ok := c.Author.ID(); ok {
		c.Author = users.RefID(id)
	}
	return c
}

// expand returns a copy of a stored campground with its author resolved,
// matching what the Postgres repository scans.
func (s memoryCampgrounds) expand(c campgrounds.Campground) campgrounds.Campground {
	c = cloneCampground(c)
	if id, ok := c.Author.ID(); ok {
		if u, ok := s.users[id]; ok {
			c.Author = users.RefUser(&u)
		}
	}
	return c
}

func (s memoryCampgrounds) Create(ctx context.Context, c *campgrounds.Campground) error {
	s.Lock()
	defer s.Unlock()

	c.ID = s.nextID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if c.ReviewIDs == nil {
		c.ReviewIDs = []int64{}
	}
	s.campgrounds[c.ID] = cloneCampground(*c)
	return nil
}

func (s memoryCampgrounds) GetByID(ctx context.Context, campgroundID int64) (*campgrounds.Campground, error) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return nil, campgrounds.ErrNotFound
	}
	c = s.expand(c)
	return &c, nil
}

func (s memoryCampgrounds) List(ctx context.Context, p params.Pagination) ([]campgrounds.Campground, int, error) {
	s.RLock()
	defer s.RUnlock()

	all := make([]campgrounds.Campground, 0, len(s.campgrounds))
	for _, c := range s.campgrounds {
		all = append(all, s.expand(c))
	}
	slices.SortFunc(all, func(a, b campgrounds.Campground) int {
		return cmp.Compare(b.ID, a.ID)
	})

	total := len(all)
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)
	return all[start:end], total, nil
}

func (s memoryCampgrounds) Update(ctx context.Context, c *campgrounds.Campground) error {
	s.Lock()
	defer s.Unlock()

	cur, ok := s.campgrounds[c.ID]
	if !ok {
		return campgrounds.ErrNotFound
	}
	cur.Title = c.Title
	cur.Price = c.Price
	cur.Description = c.Description
	cur.Location = c.Location
	cur.Geometry = c.Geometry
	cur.Images = slices.Clone(c.Images)
	cur.UpdatedAt = time.Now()
	s.campgrounds[c.ID] = cur

	c.UpdatedAt = cur.UpdatedAt
	return nil
}

func (s memoryCampgrounds) Delete(ctx context.Context, campgroundID int64) (*campgrounds.Campground, error) {
	s.Lock()
	defer s.Unlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return nil, campgrounds.ErrNotFound
	}
	delete(s.campgrounds, campgroundID)
	c = cloneCampground(c)
	return &c, nil
}

type memoryReviews struct{ *memory }

func (s memoryReviews) Create(ctx context.Context, campgroundID int64, review *reviews.Review) error {
	s.Lock()
	defer s.Unlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return reviews.ErrCampgroundNotFound
	}
	authorID, _ := review.Author.ID()

	review.ID = s.nextID()
	review.CreatedAt = time.Now()
	s.reviews[review.ID] = reviews.Review{
		ID:        review.ID,
		Rating:    review.Rating,
		Body:      review.Body,
		Author:    users.RefID(authorID),
		CreatedAt: review.CreatedAt,
	}

	c.ReviewIDs = append(slices.Clone(c.ReviewIDs), review.ID)
	s.campgrounds[campgroundID] = c
	return nil
}

func (s memoryReviews) GetByID(ctx context.Context, reviewID int64) (*reviews.Review, error) {
	s.RLock()
	defer s.RUnlock()

	r, ok := s.reviews[reviewID]
	if !ok {
		return nil, reviews.ErrNotFound
	}
	return &r, nil
}

func (s memoryReviews) ListByCampground(ctx context.Context, campgroundID int64) ([]reviews.Review, error) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return nil, reviews.ErrCampgroundNotFound
	}

	list := []reviews.Review{}
	for _, id := range c.ReviewIDs {
		r, ok := s.reviews[id]
		if !ok {
			continue
		}
		if authorID, ok := r.Author.ID(); ok {
			if u, ok := s.users[authorID]; ok {
				r.Author = users.RefUser(&u)
			}
		}
		list = append(list, r)
	}
	slices.Reverse(list)
	return list, nil
}

func (s memoryReviews) Delete(ctx context.Context, campgroundID, reviewID int64) error {
	s.Lock()
	defer s.Unlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return reviews.ErrNotFound
	}
	i := slices.Index(c.ReviewIDs, reviewID)
	if i < 0 {
		return reviews.ErrNotFound
	}
	c.ReviewIDs = slices.Delete(slices.Clone(c.ReviewIDs), i, i+1)
	s.campgrounds[campgroundID] = c
	delete(s.reviews, reviewID)
	return nil
}

func (s memoryReviews) DeleteMany(ctx context.Context, reviewIDs []int64) error {
	s.Lock()
	defer s.Unlock()

	for _, id := range reviewIDs {
		delete(s.reviews, id)
	}
	return nil
}
