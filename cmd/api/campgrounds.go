package main

import (
	"context"
	"net/http"

	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/images"
	"yelpcamp/internal/params"
)

type campgroundDetail struct {
	*campgrounds.Campground
	Reviews []reviews.Review `json:"reviews"`
}

// listCampgroundsHandler godoc
//
//	@Summary		Lists campgrounds
//	@Description	Newest first, paginated
//	@Tags			campgrounds
//	@Produce		json
//	@Param			page	query		int	false	"Page number"
//	@Param			limit	query		int	false	"Page size (max 50)"
//	@Success		200		{array}		campgrounds.Campground
//	@Failure		500		{object}	error
//	@Router			/campgrounds [get]
func (app *application) listCampgroundsHandler(w http.ResponseWriter, r *http.Request) error {
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Campgrounds.List(r.Context(), p)
	if err != nil {
		return err
	}
	p.ComputeMeta(total)

	return app.jsonResponse(w, r, http.StatusOK, envelope{
		"campgrounds": list,
		"pagination":  p,
	})
}

// createCampgroundHandler godoc
//
//	@Summary		Creates a campground
//	@Description	Geocodes the location and uploads up to 7 images
//	@Tags			campgrounds
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title		formData	string	true	"Title"
//	@Param			location	formData	string	true	"Location"
//	@Param			price		formData	number	true	"Price"
//	@Param			description	formData	string	true	"Description"
//	@Param			image		formData	[]file	false	"Images (up to 7 files)"
//	@Success		201			{object}	campgrounds.Campground
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		502			{object}	error
//	@Router			/campgrounds [post]
func (app *application) createCampgroundHandler(w http.ResponseWriter, r *http.Request) error {
	user := getUserFromContext(r)

	form, err := app.parseCampgroundForm(w, r)
	if err != nil {
		return err
	}

	point, err := app.geocoder.Forward(r.Context(), form.payload.Location)
	if err != nil {
		return err
	}

	imgs, err := app.uploadImages(r.Context(), form.files)
	if err != nil {
		return err
	}

	campground := &campgrounds.Campground{
		Title:       form.payload.Title,
		Price:       *form.payload.Price,
		Description: form.payload.Description,
		Location:    form.payload.Location,
		Geometry:    point,
		Images:      imgs,
		Author:      users.RefUser(user),
	}

	if err := app.store.Campgrounds.Create(r.Context(), campground); err != nil {
		app.discardImages(r.Context(), imgs)
		return err
	}

	app.logger.Infow("campground created", "campground_id", campground.ID, "user_id", user.ID)

	setMessage(r, "Campground created successfully!")
	return app.jsonResponse(w, r, http.StatusCreated, envelope{"campground": campground})
}

// getCampgroundHandler godoc
//
//	@Summary		Fetches a campground
//	@Description	Returns the campground with its author and reviews
//	@Tags			campgrounds
//	@Produce		json
//	@Param			id	path		int	true	"Campground ID"
//	@Success		200	{object}	campgroundDetail
//	@Failure		404	{object}	error
//	@Router			/campgrounds/{id} [get]
func (app *application) getCampgroundHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := routeID(r, "id", campgrounds.ErrNotFound)
	if err != nil {
		return err
	}

	campground, err := app.store.Campgrounds.GetByID(r.Context(), id)
	if err != nil {
		return err
	}

	list, err := app.store.Reviews.ListByCampground(r.Context(), id)
	if err != nil {
		return err
	}

	return app.jsonResponse(w, r, http.StatusOK, envelope{
		"campground": campgroundDetail{Campground: campground, Reviews: list},
	})
}

// updateCampgroundHandler godoc
//
//	@Summary		Updates a campground
//	@Description	Only the author may update. New images are appended; images listed in deleteImages are removed.
//	@Tags			campgrounds
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id				path		int			true	"Campground ID"
//	@Param			title			formData	string		true	"Title"
//	@Param			location		formData	string		true	"Location"
//	@Param			price			formData	number		true	"Price"
//	@Param			description		formData	string		true	"Description"
//	@Param			image			formData	[]file		false	"Images to add"
//	@Param			deleteImages	formData	[]string	false	"Storage keys of images to remove"
//	@Success		200				{object}	campgrounds.Campground
//	@Failure		400				{object}	error
//	@Failure		401				{object}	error
//	@Failure		403				{object}	error
//	@Failure		404				{object}	error
//	@Router			/campgrounds/{id} [put]
func (app *application) updateCampgroundHandler(w http.ResponseWriter, r *http.Request) error {
	campground := getRequestContext(r).campground

	form, err := app.parseCampgroundForm(w, r)
	if err != nil {
		return err
	}

	if form.payload.Location != campground.Location {
		point, err := app.geocoder.Forward(r.Context(), form.payload.Location)
		if err != nil {
			return err
		}
		campground.Geometry = point
	}

	added, err := app.uploadImages(r.Context(), form.files)
	if err != nil {
		return err
	}

	campground.Title = form.payload.Title
	campground.Price = *form.payload.Price
	campground.Description = form.payload.Description
	campground.Location = form.payload.Location
	campground.Images = append(campground.Images, added...)
	removed := campground.RemoveImages(form.payload.DeleteImages)

	if err := app.store.Campgrounds.Update(r.Context(), campground); err != nil {
		app.discardImages(r.Context(), added)
		return err
	}

	app.discardImages(r.Context(), removed)

	setMessage(r, "Campground updated successfully!")
	return app.jsonResponse(w, r, http.StatusOK, envelope{"campground": campground})
}

// deleteCampgroundHandler godoc
//
//	@Summary		Deletes a campground
//	@Description	Only the author may delete. Its reviews and stored images are deleted with it.
//	@Tags			campgrounds
//	@Produce		json
//	@Param			id	path		int	true	"Campground ID"
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	error
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Router			/campgrounds/{id} [delete]
func (app *application) deleteCampgroundHandler(w http.ResponseWriter, r *http.Request) error {
	campground := getRequestContext(r).campground

	if err := app.campgrounds.Delete(r.Context(), campground.ID); err != nil {
		return err
	}

	setMessage(r, "Campground and all its reviews deleted successfully!")
	return app.jsonResponse(w, r, http.StatusOK, nil)
}

// discardImages deletes stored images that are no longer referenced. A
// failure leaves orphaned files behind and is only logged.
func (app *application) discardImages(ctx context.Context, imgs []images.Image) {
	keys := images.Keys(imgs)
	if len(keys) == 0 {
		return
	}
	if err := app.images.Destroy(ctx, keys...); err != nil {
		app.logger.Errorw("failed to delete images", "keys", keys, "error", err)
	}
}
