package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"yelpcamp/internal/auth"
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
	"yelpcamp/internal/validation"
)

var (
	errNotAuthenticated   = errors.New("Not authenticated")
	errInvalidCredentials = errors.New("invalid username or password")
	errForbidden          = errors.New("You do not have permission to do that!")
	errPageNotFound       = errors.New("Page Not Found")
)

// requestError marks a malformed request that never reached validation.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

// apiHandler is a handler that reports failure by returning an error.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts an apiHandler to net/http. Every returned error goes
// through handleError.
func (app *application) handle(h apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			app.handleError(w, r, err)
		}
	}
}

// handleError translates an error into the JSON error envelope.
func (app *application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *validation.Error
		reqErr *requestError
	)

	switch {
	case errors.As(err, &verr):
		app.badRequestResponse(w, r, verr)
	case errors.As(err, &reqErr):
		app.badRequestResponse(w, r, reqErr)
	case errors.Is(err, users.ErrDuplicateEmail),
		errors.Is(err, users.ErrDuplicateUsername),
		errors.Is(err, geocode.ErrNoMatch):
		app.badRequestResponse(w, r, err)

	case errors.Is(err, errNotAuthenticated),
		errors.Is(err, auth.ErrInvalidToken):
		app.unauthorizedErrorResponse(w, r, errNotAuthenticated)
	case errors.Is(err, errInvalidCredentials):
		app.unauthorizedErrorResponse(w, r, errInvalidCredentials)

	case errors.Is(err, errForbidden):
		app.forbiddenResponse(w, r)

	case errors.Is(err, campgrounds.ErrNotFound),
		errors.Is(err, reviews.ErrCampgroundNotFound):
		app.notFoundResponse(w, r, campgrounds.ErrNotFound)
	case errors.Is(err, reviews.ErrNotFound):
		app.notFoundResponse(w, r, reviews.ErrNotFound)
	case errors.Is(err, users.ErrNotFound):
		app.notFoundResponse(w, r, users.ErrNotFound)

	case errors.Is(err, geocode.ErrUpstream):
		app.badGatewayResponse(w, r, geocode.ErrUpstream, err)
	case errors.Is(err, images.ErrUpstream):
		app.badGatewayResponse(w, r, images.ErrUpstream, err)

	default:
		app.internalServerError(w, r, err)
	}
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, err.Error())
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusForbidden, errForbidden.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, err.Error())
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// badGatewayResponse reports a failed external service. Only the public
// cause is sent to the client; the full error goes to the log.
func (app *application) badGatewayResponse(w http.ResponseWriter, r *http.Request, public, err error) {
	app.logger.Errorw("upstream service error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadGateway, public.Error())
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter.String())
}
