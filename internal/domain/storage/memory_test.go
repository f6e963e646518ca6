package storage

import (
	"context"
	"testing"

	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCampgroundsExpandAuthor(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryContainer()

	alice := &users.User{Email: "a@x.com", Username: "alice"}
	require.NoError(t, store.Users.Create(ctx, alice))

	camp := &campgrounds.Campground{
		Title:    "Pine Grove",
		Price:    15,
		Location: "Denver, CO",
		Author:   users.RefID(alice.ID),
	}
	require.NoError(t, store.Campgrounds.Create(ctx, camp))

	got, err := store.Campgrounds.GetByID(ctx, camp.ID)
	require.NoError(t, err)
	require.True(t, got.Author.Expanded())
	assert.Equal(t, "alice", got.Author.User().Username)
	assert.True(t, got.Author.Is(alice.ID))

	list, total, err := store.Campgrounds.List(ctx, params.ParsePagination(nil))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.True(t, list[0].Author.Expanded())
	assert.Equal(t, "alice", list[0].Author.User().Username)
}

func TestMemoryCampgroundsKeepAuthorReference(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryContainer()

	alice := &users.User{Email: "a@x.com", Username: "alice"}
	require.NoError(t, store.Users.Create(ctx, alice))

	camp := &campgrounds.Campground{Title: "Pine Grove", Author: users.RefUser(alice)}
	require.NoError(t, store.Campgrounds.Create(ctx, camp))

	// renaming the returned user must not leak into the stored record
	got, err := store.Campgrounds.GetByID(ctx, camp.ID)
	require.NoError(t, err)
	got.Author.User().Username = "mallory"

	again, err := store.Campgrounds.GetByID(ctx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Author.User().Username)
}
