// Package lookup provides UK postcode autocomplete and full address lookup.
//
// Autocomplete is served by the free postcodes.io API. Full address lookup
// requires an Ideal Postcodes API key and is unavailable without one.
// Responses are cached through internal/cache.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/doorstephq/doorstep/internal/cache"
	"github.com/doorstephq/doorstep/internal/metrics"
)

const (
	defaultIdealBaseURL   = "https://api.ideal-postcodes.co.uk/v1"
	defaultGeocodeBaseURL = "https://api.postcodes.io"
	defaultTimeout        = 10 * time.Second
)

// ErrUnavailable indicates the address lookup has no API key configured.
var ErrUnavailable = errors.New("address lookup requires an Ideal Postcodes API key")

// AddressSuggestion is a postcode autocomplete match.
type AddressSuggestion struct {
	Postcode  string  `json:"postcode"`
	District  string  `json:"district"`
	County    string  `json:"county"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is a full delivery-point address for a postcode.
type Address struct {
	Line1     string   `json:"line_1"`
	Line2     string   `json:"line_2"`
	Line3     string   `json:"line_3"`
	PostTown  string   `json:"post_town"`
	Postcode  string   `json:"postcode"`
	County    string   `json:"county"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Formatted string   `json:"formatted"`
}

// Service performs postcode and address lookups against the upstream APIs.
type Service struct {
	IdealBaseURL   string
	GeocodeBaseURL string
	APIKey         string
	HTTPClient     *http.Client
	Timeout        time.Duration

	store    cache.Cache
	cacheTTL time.Duration
}

// NewService returns a lookup service. An empty apiKey disables full address
// lookup but leaves autocomplete working. A nil store disables caching.
func NewService(baseURL, apiKey string, store cache.Cache, cacheTTL time.Duration) *Service {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultIdealBaseURL
	}

	return &Service{
		IdealBaseURL:   url,
		GeocodeBaseURL: defaultGeocodeBaseURL,
		APIKey:         strings.TrimSpace(apiKey),
		store:          store,
		cacheTTL:       cacheTTL,
	}
}

// Enabled reports whether full address lookup is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.APIKey != ""
}

func (s *Service) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// cacheGet fills dst from the cache. Cache errors are treated as misses.
func (s *Service) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.store == nil {
		return false
	}
	payload, err := s.store.Get(ctx, key)
	if err != nil {
		metrics.RecordLookupCache(false)
		return false
	}
	hit := json.Unmarshal(payload, dst) == nil
	metrics.RecordLookupCache(hit)
	return hit
}

// cachePut stores v under key. Failures are ignored; the cache is best-effort.
func (s *Service) cachePut(ctx context.Context, key string, v any) {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.store.Set(ctx, key, payload, s.cacheTTL) // nolint:errcheck // best-effort cache
}

// normalizePostcode uppercases and strips interior whitespace so cache keys
// and upstream queries agree on "sw1a1aa" vs "SW1A 1AA".
func normalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
}
