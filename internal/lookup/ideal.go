package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/doorstephq/doorstep/internal/ailink/driver"
)

type idealAddressesResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  []struct {
		Line1     string   `json:"line_1"`
		Line2     string   `json:"line_2"`
		Line3     string   `json:"line_3"`
		PostTown  string   `json:"post_town"`
		Postcode  string   `json:"postcode"`
		County    string   `json:"county"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"result"`
}

// LookupAddresses returns every delivery-point address for a full postcode.
// An unknown postcode returns an empty slice. Returns ErrUnavailable when no
// API key is configured.
func (s *Service) LookupAddresses(ctx context.Context, postcode string) ([]Address, error) {
	if s == nil {
		return nil, fmt.Errorf("lookup service not configured")
	}
	if !s.Enabled() {
		return nil, ErrUnavailable
	}
	normalized := normalizePostcode(postcode)
	if normalized == "" {
		return nil, fmt.Errorf("postcode is required")
	}

	cacheKey := "lookup:addresses:" + normalized
	var cached []Address
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	endpoint := fmt.Sprintf("%s/postcodes/%s?api_key=%s",
		s.IdealBaseURL, url.PathEscape(normalized), url.QueryEscape(s.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create address lookup request: %w", err)
	}

	resp, err := s.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("address lookup request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read address lookup response: %w", err)
	}

	// Ideal Postcodes reports an unknown postcode as 404; callers get an
	// empty result rather than an error.
	if resp.StatusCode == http.StatusNotFound {
		addresses := []Address{}
		s.cachePut(ctx, cacheKey, addresses)
		return addresses, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &driver.ProviderError{
			Provider:    "ideal_postcodes",
			StatusCode:  resp.StatusCode,
			Message:     idealErrorMessage(body, resp.StatusCode),
			RawResponse: body,
		}
	}

	var parsed idealAddressesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse address lookup response: %w", err)
	}

	addresses := make([]Address, 0, len(parsed.Result))
	for _, entry := range parsed.Result {
		addr := Address{
			Line1:     entry.Line1,
			Line2:     entry.Line2,
			Line3:     entry.Line3,
			PostTown:  entry.PostTown,
			Postcode:  entry.Postcode,
			County:    entry.County,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
		}
		addr.Formatted = formatAddress(addr)
		addresses = append(addresses, addr)
	}

	s.cachePut(ctx, cacheKey, addresses)
	return addresses, nil
}

func formatAddress(addr Address) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{addr.Line1, addr.Line2, addr.Line3, addr.PostTown, addr.Postcode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func idealErrorMessage(body []byte, statusCode int) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return fmt.Sprintf("address lookup returned status %d", statusCode)
}
