package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/doorstephq/doorstep/internal/ailink/driver"
)

type autocompleteResponse struct {
	Status int      `json:"status"`
	Result []string `json:"result"`
}

type bulkLookupRequest struct {
	Postcodes []string `json:"postcodes"`
}

type bulkLookupResponse struct {
	Status int `json:"status"`
	Result []struct {
		Query  string          `json:"query"`
		Result *postcodeRecord `json:"result"`
	} `json:"result"`
}

type postcodeRecord struct {
	Postcode      string  `json:"postcode"`
	AdminDistrict string  `json:"admin_district"`
	AdminCounty   string  `json:"admin_county"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// AutocompletePostcode resolves a partial postcode to matching postcodes with
// district, county and coordinates. A query with no matches returns an empty
// slice, not an error.
func (s *Service) AutocompletePostcode(ctx context.Context, query string) ([]AddressSuggestion, error) {
	if s == nil {
		return nil, fmt.Errorf("lookup service not configured")
	}
	normalized := normalizePostcode(query)
	if normalized == "" {
		return nil, fmt.Errorf("postcode query is required")
	}

	cacheKey := "lookup:autocomplete:" + normalized
	var cached []AddressSuggestion
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	postcodes, err := s.autocomplete(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(postcodes) == 0 {
		s.cachePut(ctx, cacheKey, []AddressSuggestion{})
		return []AddressSuggestion{}, nil
	}

	suggestions, err := s.bulkLookup(ctx, postcodes)
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, cacheKey, suggestions)
	return suggestions, nil
}

func (s *Service) autocomplete(ctx context.Context, query string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/postcodes/%s/autocomplete", s.GeocodeBaseURL, url.PathEscape(query))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create autocomplete request: %w", err)
	}

	resp, err := s.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read autocomplete response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &driver.ProviderError{
			Provider:    "postcodes_io",
			StatusCode:  resp.StatusCode,
			Message:     fmt.Sprintf("autocomplete returned status %d", resp.StatusCode),
			RawResponse: body,
		}
	}

	var parsed autocompleteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse autocomplete response: %w", err)
	}
	return parsed.Result, nil
}

func (s *Service) bulkLookup(ctx context.Context, postcodes []string) ([]AddressSuggestion, error) {
	payload, err := json.Marshal(bulkLookupRequest{Postcodes: postcodes})
	if err != nil {
		return nil, fmt.Errorf("marshal bulk lookup request: %w", err)
	}

	endpoint := s.GeocodeBaseURL + "/postcodes"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create bulk lookup request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bulk lookup request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bulk lookup response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &driver.ProviderError{
			Provider:    "postcodes_io",
			StatusCode:  resp.StatusCode,
			Message:     fmt.Sprintf("bulk lookup returned status %d", resp.StatusCode),
			RawResponse: body,
		}
	}

	var parsed bulkLookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse bulk lookup response: %w", err)
	}

	suggestions := make([]AddressSuggestion, 0, len(parsed.Result))
	for _, entry := range parsed.Result {
		if entry.Result == nil {
			continue
		}
		suggestions = append(suggestions, AddressSuggestion{
			Postcode:  entry.Result.Postcode,
			District:  entry.Result.AdminDistrict,
			County:    entry.Result.AdminCounty,
			Latitude:  entry.Result.Latitude,
			Longitude: entry.Result.Longitude,
		})
	}
	return suggestions, nil
}
