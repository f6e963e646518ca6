package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"yelpcamp/internal/auth"
	"yelpcamp/internal/domain/campgrounds"
	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
	"yelpcamp/internal/ratelimiter"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingCampgrounds records every write that reaches the campground store.
type countingCampgrounds struct {
	campgrounds.Store
	writes atomic.Int32
}

func (c *countingCampgrounds) Create(ctx context.Context, cg *campgrounds.Campground) error {
	c.writes.Add(1)
	return c.Store.Create(ctx, cg)
}

func (c *countingCampgrounds) Update(ctx context.Context, cg *campgrounds.Campground) error {
	c.writes.Add(1)
	return c.Store.Update(ctx, cg)
}

func (c *countingCampgrounds) Delete(ctx context.Context, id int64) (*campgrounds.Campground, error) {
	c.writes.Add(1)
	return c.Store.Delete(ctx, id)
}

type sentMail struct {
	template string
	username string
	email    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(templateFile, username, email string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, sentMail{templateFile, username, email})
	return nil
}

func (m *recordingMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]sentMail(nil), m.sent...)
}

type testEnv struct {
	app         *application
	server      *httptest.Server
	store       *storage.Container
	campgrounds *countingCampgrounds
	images      *images.Memory
	mailer      *recordingMailer
}

func newTestApplication(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryContainer()
	counting := &countingCampgrounds{Store: store.Campgrounds}
	store.Campgrounds = counting

	imgs := images.NewMemory("https://res.cloudinary.com/test/image")
	mail := &recordingMailer{}
	logger := zap.NewNop().Sugar()

	app := &application{
		config: config{
			env:         "test",
			frontendURL: "http://localhost:5173",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "secret"},
			},
		},
		store:         store,
		campgrounds:   campgrounds.NewService(store.Campgrounds, store.Reviews, imgs, logger),
		logger:        logger,
		images:        imgs,
		geocoder:      geocode.Fixed{Point: geocode.Point{Longitude: -104.9903, Latitude: 39.7392}},
		mailer:        mail,
		authenticator: auth.NewJWTAuthenticator("test-secret", "YelpCamp", "YelpCamp", time.Hour),
		revoker:       auth.NewMemoryRevoker(),
		sessions:      sessions.NewCookieStore([]byte("test-session-secret")),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(1000, time.Minute),
	}

	srv := httptest.NewServer(app.mount())
	t.Cleanup(srv.Close)

	return &testEnv{
		app:         app,
		server:      srv,
		store:       store,
		campgrounds: counting,
		images:      imgs,
		mailer:      mail,
	}
}

// client returns a browser-like client that keeps cookies between calls.
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) do(t *testing.T, c *http.Client, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) sendJSON(t *testing.T, c *http.Client, method, path string, payload any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, c, method, path, bytes.NewReader(raw), "application/json")
}

// sendForm sends fields and image files as multipart/form-data.
func (e *testEnv) sendForm(t *testing.T, c *http.Client, method, path string, fields url.Values, files ...string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	for i, content := range files {
		fw, err := w.CreateFormFile("image", "photo"+string(rune('a'+i))+".jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return e.do(t, c, method, path, &buf, w.FormDataContentType())
}

// register signs up a user on c and returns its id.
func (e *testEnv) register(t *testing.T, c *http.Client, email, username, password string) int64 {
	t.Helper()

	resp := e.sendJSON(t, c, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[userResponse](t, resp)
	return body.User.ID
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type userResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo"`
	User       struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

type authorJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type campgroundJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Geometry    struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	} `json:"geometry"`
	Images []struct {
		URL        string `json:"url"`
		StorageKey string `json:"storageKey"`
		Thumbnail  string `json:"thumbnail"`
	} `json:"images"`
	Author  authorJSON   `json:"author"`
	Reviews []reviewJSON `json:"reviews"`
}

type reviewJSON struct {
	ID     int64      `json:"id"`
	Rating int        `json:"rating"`
	Body   string     `json:"body"`
	Author authorJSON `json:"author"`
}

type campgroundResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Campground campgroundJSON `json:"campground"`
}

type reviewResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Review  reviewJSON `json:"review"`
}

func pineGrove() url.Values {
	return url.Values{
		"title":       {"Pine Grove"},
		"location":    {"Denver, CO"},
		"price":       {"15"},
		"description": {"Quiet spot"},
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestApplication(t)

	resp := env.do(t, env.client(t), http.MethodGet, "/api/nowhere", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[errorResponse](t, resp)
	require.False(t, body.Success)
	require.Equal(t, "Page Not Found", body.Message)
	require.Equal(t, http.StatusNotFound, body.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	env := newTestApplication(t)

	resp := env.do(t, env.client(t), http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	require.Equal(t, true, body["success"])
	require.Equal(t, "ok", body["status"])
	require.Equal(t, version, body["version"])
}

func TestDebugVarsRequireBasicAuth(t *testing.T) {
	env := newTestApplication(t)
	c := env.client(t)

	resp := env.do(t, c, http.MethodGet, "/api/debug/vars", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/debug/vars", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "secret")
	ok, err := c.Do(req)
	require.NoError(t, err)
	defer ok.Body.Close()
	require.Equal(t, http.StatusOK, ok.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	env := newTestApplication(t)
	env.app.config.rateLimiter = ratelimiter.Config{Enabled: true}
	env.app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)
	srv := httptest.NewServer(env.app.mount())
	defer srv.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Get(srv.URL + "/api/health")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}
