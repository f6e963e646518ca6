package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"yelpcamp/docs" //this is required to generate swagger docs
	"yelpcamp/internal/auth"
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
	"yelpcamp/internal/mailer"
	"yelpcamp/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	campgrounds   *campgrounds.Service
	logger        *zap.SugaredLogger
	images        images.Store
	geocoder      geocode.Geocoder
	mailer        mailer.Client
	authenticator auth.Authenticator
	revoker       auth.Revoker
	sessions      sessions.Store
	rateLimiter   ratelimiter.Limiter
	wg            sync.WaitGroup
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	frontendURL string
	auth        authConfig
	cloudinary  cloudinaryConfig
	mapboxToken string
	redisAddr   string
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic         basicConfig
	token         tokenConfig
	sessionSecret string
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type cloudinaryConfig struct {
	url    string
	folder string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.RequestContextMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.notFoundResponse(w, r, errPageNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.methodNotAllowedResponse(w, r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/api/swagger/doc.json")))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.handle(app.registerUserHandler))
			r.Post("/login", app.handle(app.loginUserHandler))
			r.With(app.RequireUser).Post("/logout", app.handle(app.logoutUserHandler))
			r.Get("/me", app.handle(app.getCurrentUserHandler))
		})

		r.Route("/campgrounds", func(r chi.Router) {
			r.Get("/", app.handle(app.listCampgroundsHandler))
			r.With(app.RequireUser).Post("/", app.handle(app.createCampgroundHandler))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.handle(app.getCampgroundHandler))
				r.With(app.RequireUser, app.RequireCampgroundAuthor).Put("/", app.handle(app.updateCampgroundHandler))
				r.With(app.RequireUser, app.RequireCampgroundAuthor).Delete("/", app.handle(app.deleteCampgroundHandler))

				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.handle(app.listReviewsHandler))
					r.With(app.RequireUser).Post("/", app.handle(app.createReviewHandler))
					r.With(app.RequireUser, app.RequireReviewAuthor).Delete("/{reviewId}", app.handle(app.deleteReviewHandler))
				})
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	if !app.waitBackground(5 * time.Second) {
		app.logger.Warnw("background jobs still running at shutdown")
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
