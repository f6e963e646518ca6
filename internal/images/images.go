package images

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ErrUpstream wraps every failure reported by the image CDN.
var ErrUpstream = errors.New("image storage service failed")

// Image is a stored image: its delivery URL and the key the CDN knows it by.
type Image struct {
	URL        string `json:"url"`
	StorageKey string `json:"storageKey"`
}

// Thumbnail returns a 200x150 cropped rendition served by the CDN.
func (i Image) Thumbnail() string {
	return strings.Replace(i.URL, "/upload", "/upload/w_200,h_150,c_fill", 1)
}

func (i Image) MarshalJSON() ([]byte, error) {
	type image Image
	return json.Marshal(struct {
		image
		Thumbnail string `json:"thumbnail"`
	}{image(i), i.Thumbnail()})
}

type Store interface {
	Upload(ctx context.Context, file io.Reader) (Image, error)
	// Destroy removes the given keys. Keys the CDN no longer knows are
	// treated as already removed.
	Destroy(ctx context.Context, storageKeys ...string) error
}

// Keys collects the storage keys of imgs.
func Keys(imgs []Image) []string {
	keys := make([]string, 0, len(imgs))
	for _, img := range imgs {
		if img.StorageKey != "" {
			keys = append(keys, img.StorageKey)
		}
	}
	return keys
}
