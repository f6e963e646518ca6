package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"yelpcamp/internal/auth"
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"
)

// requestContext is created once per request and carries what earlier
// middleware learned about it: the signed in user, the resource an
// ownership check already loaded and a transient message for the response.
type requestContext struct {
	user    *users.User
	session *auth.Session
	// authErr is set when the session could not be resolved for a reason
	// other than a missing or invalid token.
	authErr error

	campground *campgrounds.Campground
	review     *reviews.Review

	message string
}

type requestKey string

const requestCtx requestKey = "request"

func withRequestContext(r *http.Request, rc *requestContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestCtx, rc))
}

func getRequestContext(r *http.Request) *requestContext {
	if rc, ok := r.Context().Value(requestCtx).(*requestContext); ok {
		return rc
	}
	return &requestContext{}
}

func getUserFromContext(r *http.Request) *users.User {
	return getRequestContext(r).user
}

func setMessage(r *http.Request, msg string) {
	getRequestContext(r).message = msg
}

const (
	accessTokenCookie = "access_token"
	sessionName       = "yelpcamp"
	returnToKey       = "returnTo"
	defaultRedirect   = "/campgrounds"
)

// paths that never become a post-login destination
var returnToExcluded = map[string]bool{
	"/":                  true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// rememberReturnTo stores the front-end path matching the rejected request
// so login can send the user back to it.
func (app *application) rememberReturnTo(w http.ResponseWriter, r *http.Request) {
	if returnToExcluded[r.URL.Path] {
		return
	}

	path := strings.TrimPrefix(r.URL.RequestURI(), "/api")
	if path == "" {
		path = "/"
	}

	// a cookie that fails to decode yields a fresh session
	sess, _ := app.sessions.Get(r, sessionName)
	sess.Values[returnToKey] = path
	if err := sess.Save(r, w); err != nil {
		app.logger.Warnw("failed to save session", "error", err)
	}
}

// takeReturnTo returns the remembered destination and removes it from the
// session, so it is used at most once.
func (app *application) takeReturnTo(w http.ResponseWriter, r *http.Request) string {
	sess, _ := app.sessions.Get(r, sessionName)

	path, ok := sess.Values[returnToKey].(string)
	if !ok {
		return defaultRedirect
	}

	delete(sess.Values, returnToKey)
	if err := sess.Save(r, w); err != nil {
		app.logger.Warnw("failed to save session", "error", err)
	}

	if path == "" {
		return defaultRedirect
	}
	return path
}

// setAuthCookie sets the access token as an HttpOnly cookie.
// Web browsers store/send it automatically; JS cannot read it.
func (app *application) setAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

func (app *application) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
