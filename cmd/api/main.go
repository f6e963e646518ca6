package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"yelpcamp/internal/auth"
	"yelpcamp/internal/db"
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
	"yelpcamp/internal/mailer"
	"yelpcamp/internal/ratelimiter"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %s\n", key, fallback)
		return fallback
	}
	return d
}

func loadConfig() config {
	return config{
		addr:        getEnv("ADDR", ":8080"),
		env:         getEnv("ENV", "development"),
		frontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		apiURL:      getEnv("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(getEnvInt("DB_MAX_OPEN_CONNS", 30)),
			maxIdleTime: getEnv("DB_MAX_IDLE_TIME", "15m"),
		},
		mail: mailConfig{
			fromEmail: getEnv("FROM_EMAIL", "noreply@yelpcamp.local"),
			smtp: smtpConfig{
				host:     os.Getenv("SMTP_HOST"),
				port:     getEnvInt("SMTP_PORT", 587),
				username: os.Getenv("SMTP_USERNAME"),
				password: os.Getenv("SMTP_PASSWORD"),
			},
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: getEnv("AUTH_TOKEN_SECRET", "development-token-secret"),
				exp:    getEnvDuration("AUTH_TOKEN_EXP", time.Hour*24*7), // 7 days
				iss:    "YelpCamp",
			},
			sessionSecret: getEnv("SESSION_SECRET", "development-session-secret"),
		},
		cloudinary: cloudinaryConfig{
			url:    os.Getenv("CLOUDINARY_URL"),
			folder: getEnv("CLOUDINARY_FOLDER", "YelpCamp"),
		},
		mapboxToken: os.Getenv("MAPBOX_TOKEN"),
		redisAddr:   os.Getenv("REDIS_ADDR"),
		rateLimiter: LoadRateLimiterConfig(),
	}
}

var version = "1.0.0"

//	@title			YelpCamp API
//	@description	API for YelpCamp, a campground listing application.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/api
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
//	@description

func main() {
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Infow("no .env file loaded", "error", err)
	}

	cfg := loadConfig()
	if cfg.env == "production" && (cfg.auth.token.secret == "development-token-secret" || cfg.auth.sessionSecret == "development-session-secret") {
		logger.Fatal("AUTH_TOKEN_SECRET and SESSION_SECRET must be set in production")
	}

	// Storage
	var store *storage.Container
	if cfg.db.addr != "" {
		pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
		if err != nil {
			logger.Fatal(err)
		}
		defer pool.Close()
		logger.Info("database connection pool established")

		if err := db.Migrate(context.Background(), pool); err != nil {
			logger.Fatal(err)
		}

		store = storage.NewContainer(pool)
		expvar.Publish("database", expvar.Func(func() any {
			return pool.Stat().TotalConns()
		}))
	} else {
		logger.Warn("DB_ADDR not set, using in-memory storage")
		store = storage.NewMemoryContainer()
	}

	// Images
	var imageStore images.Store
	if cfg.cloudinary.url != "" {
		cld, err := cloudinary.NewFromURL(cfg.cloudinary.url)
		if err != nil {
			logger.Fatal(err)
		}
		imageStore = images.NewCloudinary(cld, cfg.cloudinary.folder)
	} else {
		logger.Warn("CLOUDINARY_URL not set, keeping images in memory")
		imageStore = images.NewMemory("http://" + cfg.apiURL)
	}

	// Geocoding
	var geocoder geocode.Geocoder
	if cfg.mapboxToken != "" {
		geocoder = geocode.NewMapbox(cfg.mapboxToken)
	} else {
		logger.Warn("MAPBOX_TOKEN not set, every location resolves to a fixed point")
		geocoder = geocode.Fixed{Point: geocode.Point{Longitude: -104.9903, Latitude: 39.7392}}
	}

	// Token revocation
	var revoker auth.Revoker
	if cfg.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal(err)
		}
		defer rdb.Close()
		logger.Info("redis connection established")
		revoker = auth.NewRedisRevoker(rdb)
	} else {
		revoker = auth.NewMemoryRevoker()
	}

	// Mail
	var mail mailer.Client
	if cfg.mail.smtp.host != "" {
		mail, err = mailer.NewSMTPMailer(
			cfg.mail.smtp.host,
			cfg.mail.smtp.port,
			cfg.mail.smtp.username,
			cfg.mail.smtp.password,
			cfg.mail.fromEmail,
		)
		if err != nil {
			logger.Fatal(err)
		}
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	// Sessions
	sessionStore := sessions.NewCookieStore([]byte(cfg.auth.sessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   cfg.env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		campgrounds:   campgrounds.NewService(store.Campgrounds, store.Reviews, imageStore, logger),
		images:        imageStore,
		geocoder:      geocoder,
		mailer:        mail,
		authenticator: jwtAuthenticator,
		revoker:       revoker,
		sessions:      sessionStore,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		),
	}

	//Metrics collected http://localhost:8080/api/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
