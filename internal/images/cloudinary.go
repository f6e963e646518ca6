package images

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cld *cloudinary.Cloudinary, folder string) *Cloudinary {
	if folder == "" {
		folder = "YelpCamp"
	}
	return &Cloudinary{cld: cld, folder: folder}
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader) (Image, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    c.folder,
		PublicID:  uuid.NewString(),
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return Image{}, fmt.Errorf("%w: upload: %v", ErrUpstream, err)
	}
	if resp.Error.Message != "" {
		return Image{}, fmt.Errorf("%w: upload: %s", ErrUpstream, resp.Error.Message)
	}

	return Image{URL: resp.SecureURL, StorageKey: resp.PublicID}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, storageKeys ...string) error {
	var errs error
	for _, key := range storageKeys {
		res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
		switch {
		case err != nil:
			errs = multierr.Append(errs, fmt.Errorf("destroy %s: %w", key, err))
		case res.Error.Message != "":
			errs = multierr.Append(errs, fmt.Errorf("destroy %s: %s", key, res.Error.Message))
		case res.Result != "ok" && res.Result != "not found":
			errs = multierr.Append(errs, fmt.Errorf("destroy %s: unexpected result %q", key, res.Result))
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, errs)
	}
	return nil
}
