package handlers

import (
	"net/http"
	"strings"

	apperrors "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/lookup"
)

// Lookup serves the UK postcode and address lookup endpoints.
type Lookup struct {
	Service *lookup.Service
}

type postcodeRequest struct {
	Postcode string `json:"postcode"`
}

type autocompleteResponse struct {
	Addresses []lookup.AddressSuggestion `json:"addresses"`
}

// Autocomplete handles POST /postcode/autocomplete.
func (h *Lookup) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var req postcodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Postcode) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("postcode is required"))
		return
	}

	suggestions, err := h.Service.AutocompletePostcode(r.Context(), req.Postcode)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, autocompleteResponse{Addresses: suggestions})
}

type addressesResponse struct {
	Addresses []lookup.Address `json:"addresses"`
}

// Addresses handles POST /address/lookup. Unavailable without an Ideal
// Postcodes API key (503).
func (h *Lookup) Addresses(w http.ResponseWriter, r *http.Request) {
	var req postcodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Postcode) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("postcode is required"))
		return
	}

	addresses, err := h.Service.LookupAddresses(r.Context(), req.Postcode)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addressesResponse{Addresses: addresses})
}
