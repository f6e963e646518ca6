package main

import (
	"net/http"

	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/validation"
)

// listReviewsHandler godoc
//
//	@Summary		Lists the reviews of a campground
//	@Tags			reviews
//	@Produce		json
//	@Param			id	path		int	true	"Campground ID"
//	@Success		200	{array}		reviews.Review
//	@Failure		404	{object}	error
//	@Router			/campgrounds/{id}/reviews [get]
func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := routeID(r, "id", campgrounds.ErrNotFound)
	if err != nil {
		return err
	}

	list, err := app.store.Reviews.ListByCampground(r.Context(), id)
	if err != nil {
		return err
	}

	return app.jsonResponse(w, r, http.StatusOK, envelope{"reviews": list})
}

// createReviewHandler godoc
//
//	@Summary		Reviews a campground
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Campground ID"
//	@Param			payload	body		validation.Review	true	"Rating and text"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		404		{object}	error
//	@Router			/campgrounds/{id}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) error {
	user := getUserFromContext(r)

	id, err := routeID(r, "id", campgrounds.ErrNotFound)
	if err != nil {
		return err
	}

	var payload validation.Review
	if err := readJSON(w, r, &payload); err != nil {
		return err
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	review := &reviews.Review{
		Rating: *payload.Rating,
		Body:   payload.Body,
		Author: users.RefUser(user),
	}
	if err := app.store.Reviews.Create(r.Context(), id, review); err != nil {
		return err
	}

	setMessage(r, "Review has been added")
	return app.jsonResponse(w, r, http.StatusCreated, envelope{"review": review})
}

// deleteReviewHandler godoc
//
//	@Summary		Deletes a review
//	@Description	Only the review author may delete it
//	@Tags			reviews
//	@Produce		json
//	@Param			id			path		int	true	"Campground ID"
//	@Param			reviewId	path		int	true	"Review ID"
//	@Success		200			{object}	map[string]string
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error
//	@Failure		404			{object}	error
//	@Router			/campgrounds/{id}/reviews/{reviewId} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) error {
	review := getRequestContext(r).review

	id, err := routeID(r, "id", campgrounds.ErrNotFound)
	if err != nil {
		return err
	}

	if err := app.store.Reviews.Delete(r.Context(), id, review.ID); err != nil {
		return err
	}

	setMessage(r, "Review deleted successfully!")
	return app.jsonResponse(w, r, http.StatusOK, nil)
}
