package main

import (
	"errors"
	"net/http"

	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/mailer"
	"yelpcamp/internal/validation"
)

type welcomeEmailData struct {
	Username       string
	CampgroundsURL string
}

// registerUserHandler godoc
//
//	@Summary		Registers a user
//	@Description	Creates an account, signs it in and sends a welcome email
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		validation.Register	true	"User credentials"
//	@Success		201		{object}	users.User			"User registered"
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/auth/register [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) error {
	var payload validation.Register
	if err := readJSON(w, r, &payload); err != nil {
		return err
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	user := &users.User{
		Username: payload.Username,
		Email:    payload.Email,
	}
	if err := user.Password.Set(payload.Password); err != nil {
		return err
	}

	if err := app.store.Users.Create(r.Context(), user); err != nil {
		return err
	}

	token, sess, err := app.authenticator.Issue(user.ID)
	if err != nil {
		return err
	}
	app.setAuthCookie(w, token, sess.ExpiresAt)

	data := welcomeEmailData{
		Username:       user.Username,
		CampgroundsURL: app.config.frontendURL + defaultRedirect,
	}
	app.background(func() {
		if err := app.mailer.Send(mailer.UserWelcomeTemplate, user.Username, user.Email, data); err != nil {
			app.logger.Errorw("error sending welcome email", "user_id", user.ID, "error", err)
			return
		}
		app.logger.Infow("welcome email sent", "user_id", user.ID)
	})

	setMessage(r, "Welcome to YelpCamp!")
	return app.jsonResponse(w, r, http.StatusCreated, envelope{"user": user})
}

// loginUserHandler godoc
//
//	@Summary		Signs a user in
//	@Description	Sets the session cookie and returns where the client should go next
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		validation.Login	true	"User credentials"
//	@Success		200		{object}	users.User			"Signed in"
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Router			/auth/login [post]
func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) error {
	var payload validation.Login
	if err := readJSON(w, r, &payload); err != nil {
		return err
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	user, err := app.store.Users.GetByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return errInvalidCredentials
		}
		return err
	}
	if err := user.Password.Compare(payload.Password); err != nil {
		return errInvalidCredentials
	}

	token, sess, err := app.authenticator.Issue(user.ID)
	if err != nil {
		return err
	}
	app.setAuthCookie(w, token, sess.ExpiresAt)

	redirectTo := app.takeReturnTo(w, r)

	setMessage(r, "Welcome Back!")
	return app.jsonResponse(w, r, http.StatusOK, envelope{
		"user":       user,
		"redirectTo": redirectTo,
	})
}

// logoutUserHandler godoc
//
//	@Summary		Signs the current user out
//	@Tags			authentication
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	error
//	@Router			/auth/logout [post]
func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) error {
	rc := getRequestContext(r)

	if err := app.revoker.Revoke(r.Context(), rc.session.TokenID, rc.session.ExpiresAt); err != nil {
		return err
	}
	app.clearAuthCookie(w)

	setMessage(r, "Goodbye!")
	return app.jsonResponse(w, r, http.StatusOK, nil)
}

// getCurrentUserHandler godoc
//
//	@Summary		Returns the signed in user
//	@Tags			authentication
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	error
//	@Router			/auth/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) error {
	rc := getRequestContext(r)
	if rc.authErr != nil {
		return rc.authErr
	}
	if rc.user == nil {
		return errNotAuthenticated
	}

	return app.jsonResponse(w, r, http.StatusOK, envelope{"user": rc.user})
}
