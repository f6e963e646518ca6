package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"yelpcamp/internal/auth"
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/reviews"
	"yelpcamp/internal/domain/users"

	"github.com/go-chi/chi/v5"
)

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing or malformed"))
				return
			}

			// check the credentials
			wantUser := app.config.auth.basic.user
			wantPass := app.config.auth.basic.pass

			if wantUser == "" ||
				subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) != 1 ||
				subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) != 1 {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestContextMiddleware attaches the per-request context and resolves the
// session cookie, if any, to a user. It never rejects a request; RequireUser
// does that for protected routes.
func (app *application) RequestContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := &requestContext{}

		if c, err := r.Cookie(accessTokenCookie); err == nil && c.Value != "" {
			user, sess, err := app.authenticate(r.Context(), c.Value)
			switch {
			case err == nil:
				rc.user = user
				rc.session = sess
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, users.ErrNotFound):
				// treated as signed out
			default:
				rc.authErr = err
			}
		}

		next.ServeHTTP(w, withRequestContext(r, rc))
	})
}

func (app *application) authenticate(ctx context.Context, token string) (*users.User, *auth.Session, error) {
	sess, err := app.authenticator.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := app.revoker.IsRevoked(ctx, sess.TokenID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, auth.ErrInvalidToken
	}

	user, err := app.store.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// RequireUser rejects requests without a valid session with 401 and
// remembers where the user was heading.
func (app *application) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := getRequestContext(r)
		if rc.user != nil {
			next.ServeHTTP(w, r)
			return
		}

		if rc.authErr != nil {
			app.internalServerError(w, r, rc.authErr)
			return
		}

		app.rememberReturnTo(w, r)
		app.unauthorizedErrorResponse(w, r, errNotAuthenticated)
	})
}

// RequireCampgroundAuthor lets the request through only when the signed in
// user authored the campground in the route. The loaded campground is kept
// on the request context.
func (app *application) RequireCampgroundAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := getRequestContext(r)

		id, err := routeID(r, "id", campgrounds.ErrNotFound)
		if err != nil {
			app.handleError(w, r, err)
			return
		}

		campground, err := app.store.Campgrounds.GetByID(r.Context(), id)
		if err != nil {
			app.handleError(w, r, err)
			return
		}

		if !campground.Author.Is(rc.user.ID) {
			app.forbiddenResponse(w, r)
			return
		}

		rc.campground = campground
		next.ServeHTTP(w, r)
	})
}

// RequireReviewAuthor lets the request through only when the signed in user
// authored the review in the route.
func (app *application) RequireReviewAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := getRequestContext(r)

		id, err := routeID(r, "reviewId", reviews.ErrNotFound)
		if err != nil {
			app.handleError(w, r, err)
			return
		}

		review, err := app.store.Reviews.GetByID(r.Context(), id)
		if err != nil {
			app.handleError(w, r, err)
			return
		}

		if !review.Author.Is(rc.user.ID) {
			app.forbiddenResponse(w, r)
			return
		}

		rc.review = review
		next.ServeHTTP(w, r)
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allow, retryAfter := app.rateLimiter.Allow(clientIP(r)); !allow {
			app.rateLimitExceededResponse(w, r, retryAfter)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP drops the port RemoteAddr carries when no proxy header set it.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// routeID parses a numeric route parameter. An id that cannot name a record
// is reported as notFound.
func routeID(r *http.Request, param string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}
