package campgrounds_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenImages struct{ calls int }

func (b *brokenImages) Upload(ctx context.Context, file io.Reader) (images.Image, error) {
	return images.Image{}, images.ErrUpstream
}

func (b *brokenImages) Destroy(ctx context.Context, keys ...string) error {
	b.calls++
	return errors.Join(images.ErrUpstream, errors.New("cdn is down"))
}

type fixture struct {
	store *storage.Container
	imgs  *images.Memory
	camp  *campgrounds.Campground
	rev   []int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	store := storage.NewMemoryContainer()
	imgs := images.NewMemory("http://cdn.test")

	alice := &users.User{Email: "a@x.com", Username: "alice"}
	require.NoError(t, store.Users.Create(ctx, alice))
	bob := &users.User{Email: "b@x.com", Username: "bob"}
	require.NoError(t, store.Users.Create(ctx, bob))

	img1, err := imgs.Upload(ctx, strings.NewReader("one"))
	require.NoError(t, err)
	img2, err := imgs.Upload(ctx, strings.NewReader("two"))
	require.NoError(t, err)

	camp := &campgrounds.Campground{
		Title:       "Pine Grove",
		Price:       15,
		Description: "Quiet spot",
		Location:    "Denver, CO",
		Images:      []images.Image{img1, img2},
		Author:      users.RefUser(alice),
	}
	require.NoError(t, store.Campgrounds.Create(ctx, camp))

	var ids []int64
	for _, author := range []*users.User{alice, bob} {
		r := &reviews.Review{Rating: 4, Body: "nice", Author: users.RefID(author.ID)}
		require.NoError(t, store.Reviews.Create(ctx, camp.ID, r))
		ids = append(ids, r.ID)
	}

	return fixture{store: store, imgs: imgs, camp: camp, rev: ids}
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := campgrounds.NewService(f.store.Campgrounds, f.store.Reviews, f.imgs, zap.NewNop().Sugar())

	require.NoError(t, svc.Delete(ctx, f.camp.ID))

	_, err := f.store.Campgrounds.GetByID(ctx, f.camp.ID)
	assert.ErrorIs(t, err, campgrounds.ErrNotFound)

	for _, id := range f.rev {
		_, err := f.store.Reviews.GetByID(ctx, id)
		assert.ErrorIs(t, err, reviews.ErrNotFound, "review %d must not outlive its campground", id)
	}
	assert.Equal(t, 0, f.imgs.Len())
}

func TestDeleteMissingCampground(t *testing.T) {
	f := setup(t)
	svc := campgrounds.NewService(f.store.Campgrounds, f.store.Reviews, f.imgs, zap.NewNop().Sugar())

	err := svc.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, campgrounds.ErrNotFound)
	assert.Equal(t, 2, f.imgs.Len())
}

func TestCascadeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	svc := campgrounds.NewService(f.store.Campgrounds, f.store.Reviews, f.imgs, zap.NewNop().Sugar())

	removed, err := f.store.Campgrounds.Delete(ctx, f.camp.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, f.rev, removed.ReviewIDs)

	require.NoError(t, svc.Cascade(ctx, removed))
	require.NoError(t, svc.Cascade(ctx, removed))
}

func TestImageFailureIsLoggedNotReturned(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	core, logs := observer.New(zapcore.ErrorLevel)
	broken := &brokenImages{}
	svc := campgrounds.NewService(f.store.Campgrounds, f.store.Reviews, broken, zap.New(core).Sugar())

	require.NoError(t, svc.Delete(ctx, f.camp.ID))
	assert.Equal(t, 1, broken.calls)

	entries := logs.FilterMessage("failed to delete campground images").All()
	require.Len(t, entries, 1)
	assert.Equal(t, f.camp.ID, entries[0].ContextMap()["campground_id"])

	for _, id := range f.rev {
		_, err := f.store.Reviews.GetByID(ctx, id)
		assert.ErrorIs(t, err, reviews.ErrNotFound)
	}
}

func TestRemoveImages(t *testing.T) {
	c := &campgrounds.Campground{Images: []images.Image{
		{URL: "u1", StorageKey: "k1"},
		{URL: "u2", StorageKey: "k2"},
		{URL: "u3", StorageKey: "k3"},
	}}

	removed := c.RemoveImages([]string{"k2", "unknown"})
	assert.Equal(t, []images.Image{{URL: "u2", StorageKey: "k2"}}, removed)
	assert.Equal(t, []string{"k1", "k3"}, images.Keys(c.Images))

	assert.Nil(t, c.RemoveImages(nil))
}
