package images

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnail(t *testing.T) {
	img := Image{
		URL:        "https://res.cloudinary.com/demo/image/upload/v1757431255/YelpCamp/abc.jpg",
		StorageKey: "YelpCamp/abc",
	}

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_200,h_150,c_fill/v1757431255/YelpCamp/abc.jpg",
		img.Thumbnail(),
	)
}

func TestImageJSONIncludesThumbnail(t *testing.T) {
	img := Image{URL: "https://cdn.test/upload/a.jpg", StorageKey: "a"}

	raw, err := json.Marshal(img)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "https://cdn.test/upload/a.jpg", out["url"])
	assert.Equal(t, "a", out["storageKey"])
	assert.Equal(t, "https://cdn.test/upload/w_200,h_150,c_fill/a.jpg", out["thumbnail"])

	var back Image
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, img, back)
}

func TestKeysSkipsEmpty(t *testing.T) {
	keys := Keys([]Image{{StorageKey: "a"}, {URL: "x"}, {StorageKey: "b"}})
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestMemoryDestroyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("http://localhost")

	img, err := m.Upload(ctx, strings.NewReader("jpeg"))
	require.NoError(t, err)
	require.True(t, m.Has(img.StorageKey))

	require.NoError(t, m.Destroy(ctx, img.StorageKey))
	require.NoError(t, m.Destroy(ctx, img.StorageKey))
	assert.False(t, m.Has(img.StorageKey))
	assert.Equal(t, 0, m.Len())
}
