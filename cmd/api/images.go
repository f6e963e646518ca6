package main

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"yelpcamp/internal/images"
	"yelpcamp/internal/validation"

	"github.com/gorilla/schema"
)

const (
	maxFormBytes = 15 * 1024 * 1024
	maxImages    = 7
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type campgroundForm struct {
	payload validation.Campground
	files   []*multipart.FileHeader
}

// parseCampgroundForm decodes and validates the campground fields of a
// multipart (or urlencoded) body and collects the attached image files.
func (app *application) parseCampgroundForm(w http.ResponseWriter, r *http.Request) (*campgroundForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, badRequest(fmt.Errorf("parse form: %w", err))
	}

	form := &campgroundForm{}
	if err := formDecoder.Decode(&form.payload, normalizeFormKeys(r.PostForm)); err != nil {
		return nil, formDecodeError(err)
	}

	if r.MultipartForm != nil {
		for _, key := range []string{"image", "image[]", "images"} {
			form.files = append(form.files, r.MultipartForm.File[key]...)
		}
	}

	var countErr error
	if len(form.files) > maxImages {
		countErr = validation.Errorf("image must contain less than or equal to %d items", maxImages)
	}

	if err := validation.Merge(validation.Struct(form.payload), countErr); err != nil {
		return nil, err
	}
	return form, nil
}

// normalizeFormKeys maps the key shapes browsers and form libraries send
// ("deleteImages[]", "campground[title]") onto plain field names.
func normalizeFormKeys(in url.Values) url.Values {
	out := make(url.Values, len(in))
	for key, vals := range in {
		key = strings.TrimSuffix(key, "[]")
		if open := strings.IndexByte(key, '['); open > 0 && strings.HasSuffix(key, "]") {
			key = key[open+1 : len(key)-1]
		}
		out[key] = append(out[key], vals...)
	}
	return out
}

func formDecodeError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return badRequest(err)
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := &validation.Error{}
	for _, key := range keys {
		var conv schema.ConversionError
		if errors.As(multi[key], &conv) {
			out.Violations = append(out.Violations, fmt.Sprintf("%s must be a number", key))
			continue
		}
		out.Violations = append(out.Violations, multi[key].Error())
	}
	return out
}

// uploadImages stores every file. When one upload fails the ones already
// stored are deleted again.
func (app *application) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]images.Image, error) {
	uploaded := make([]images.Image, 0, len(files))
	for _, fh := range files {
		img, err := app.uploadImage(ctx, fh)
		if err != nil {
			app.discardImages(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, img)
	}
	return uploaded, nil
}

func (app *application) uploadImage(ctx context.Context, fh *multipart.FileHeader) (images.Image, error) {
	file, err := fh.Open()
	if err != nil {
		return images.Image{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return app.images.Upload(ctx, file)
}
