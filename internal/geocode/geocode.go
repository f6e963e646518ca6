package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrUpstream wraps transport and service failures of the geocoder.
	ErrUpstream = errors.New("geocoding service failed")
	// ErrNoMatch is returned when the query resolves to no place.
	ErrNoMatch = errors.New("location could not be found")
)

// Point is a WGS84 coordinate.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Geocoder interface {
	Forward(ctx context.Context, query string) (Point, error)
}

const mapboxBaseURL = "https://api.mapbox.com"

// Mapbox resolves free-text locations with the Mapbox forward geocoding API.
type Mapbox struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewMapbox(token string) *Mapbox {
	return &Mapbox{
		token:   token,
		baseURL: mapboxBaseURL,
		client:  &http.Client{Timeout: 8 * time.Second},
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func (m *Mapbox) WithBaseURL(u string) *Mapbox {
	m.baseURL = strings.TrimRight(u, "/")
	return m
}

type mapboxResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
	} `json:"features"`
	Message string `json:"message"`
}

func (m *Mapbox) Forward(ctx context.Context, query string) (Point, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Point{}, ErrNoMatch
	}

	q := url.Values{}
	q.Set("access_token", m.token)
	q.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s", m.baseURL, url.PathEscape(query), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Point{}, err
	}

	res, err := m.client.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	var out mapboxResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Point{}, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	if res.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, res.StatusCode, out.Message)
	}

	if len(out.Features) == 0 || len(out.Features[0].Center) != 2 {
		return Point{}, ErrNoMatch
	}

	center := out.Features[0].Center
	return Point{Longitude: center[0], Latitude: center[1]}, nil
}

// Fixed answers every query with the same point. Used when no geocoding
// token is configured.
type Fixed struct {
	Point Point
}

func (f Fixed) Forward(ctx context.Context, query string) (Point, error) {
	if strings.TrimSpace(query) == "" {
		return Point{}, ErrNoMatch
	}
	return f.Point, nil
}
