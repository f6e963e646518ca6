package db

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/images"
	"yelpcamp/internal/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryContainer()

	author := &users.User{Email: "seed@x.com", Username: "seeder"}
	require.NoError(t, store.Users.Create(ctx, author))

	seeded, err := Seed(ctx, store, author, 50, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.Len(t, seeded, 50)

	for _, c := range seeded {
		words := strings.SplitN(c.Title, " ", 2)
		require.Len(t, words, 2)
		assert.True(t, slices.Contains(descriptors, words[0]), c.Title)
		assert.True(t, slices.Contains(places, words[1]), c.Title)

		assert.GreaterOrEqual(t, c.Price, 10.0)
		assert.LessOrEqual(t, c.Price, 30.0)
		assert.Equal(t, c.Price, float64(int(c.Price*100+0.5))/100)

		assert.Len(t, c.Images, 2)
		assert.Empty(t, images.Keys(c.Images))
		assert.True(t, c.Author.Is(author.ID))
	}

	_, total, err := store.Campgrounds.List(ctx, params.Pagination{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}
